package synthesis

import (
	"math"
	"math/rand/v2"

	"github.com/tonefab/go-audio-synth/internal/filter"
	"github.com/tonefab/go-audio-synth/internal/osc"
	"github.com/tonefab/go-audio-synth/internal/seed"
)

// Excitation selects the initial content of the Karplus-Strong delay line.
type Excitation int

const (
	ExciteNoise Excitation = iota
	ExciteSawtooth
	ExciteTriangle
	ExciteImpulse
)

// KarplusStrong renders plucked-string synthesis: a circular delay line of
// length round(sampleRate/frequency) is read each sample, two-point-average
// lowpass filtered, scaled by Decay, and written back. A pick position other
// than zero comb-filters the excitation, attenuating harmonics with nodes
// near the pick point.
type KarplusStrong struct {
	FrequencyHz  float64
	Decay        float64 // feedback gain per loop pass, <1 for decaying output
	Blend        float64 // lowpass blend: 0 = full averaging, 1 = no filtering
	Excitation   Excitation
	PickPosition float64 // 0..1 along the string; 0 disables pick filtering
}

// Render generates n samples using rng for the noise excitation.
func (k KarplusStrong) Render(n int, sampleRate float64, rng *rand.Rand) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	period := int(math.Round(sampleRate / k.FrequencyHz))
	if period < 2 {
		period = 2
	}
	line := filter.NewDelayLine(period)
	k.excite(line, rng)

	pos := 0
	for i := range out {
		cur := line.Tap(pos)
		next := line.Tap(pos + 1)
		out[i] = cur
		// Two-point average blended against the unfiltered sample.
		filtered := (cur + next) / 2
		line.SetTap(pos, k.Decay*(filtered+k.Blend*(cur-filtered)))
		pos++
		if pos >= period {
			pos = 0
		}
	}
	Normalize(out)
	return out
}

func (k KarplusStrong) excite(line *filter.DelayLine, rng *rand.Rand) {
	period := line.Len()
	switch k.Excitation {
	case ExciteSawtooth:
		for i := 0; i < period; i++ {
			line.SetTap(i, osc.SawtoothAt(osc.TwoPi*float64(i)/float64(period)))
		}
	case ExciteTriangle:
		for i := 0; i < period; i++ {
			line.SetTap(i, osc.TriangleAt(osc.TwoPi*float64(i)/float64(period)))
		}
	case ExciteImpulse:
		line.SetTap(0, 1)
	default:
		for i := 0; i < period; i++ {
			line.SetTap(i, seed.Uniform(rng))
		}
	}
	if k.PickPosition > 0 {
		k.applyPick(line)
	}
}

// applyPick subtracts a copy of the excitation delayed by the pick offset,
// putting comb notches at the harmonics with nodes at the pick point.
func (k KarplusStrong) applyPick(line *filter.DelayLine) {
	period := line.Len()
	offset := int(math.Round(k.PickPosition * float64(period)))
	if offset <= 0 || offset >= period {
		return
	}
	orig := make([]float64, period)
	for i := range orig {
		orig[i] = line.Tap(i)
	}
	for i := range orig {
		line.SetTap(i, orig[i]-orig[(i+period-offset)%period])
	}
}
