package synthesis

import (
	"math"
	"math/rand/v2"

	"github.com/tonefab/go-audio-synth/internal/seed"
)

// Impact renders percussive pitched bodies: a stack of harmonics tracking a
// frequency sweep (exponential by default), each with its own decay,
// optionally layered with a short noise burst for the transient attack.
// Kick, snare, and punch presets are thin wrappers over these fields.
type Impact struct {
	StartHz       float64
	EndHz         float64
	Sweep         SweepKind // SweepNone selects the exponential default
	Harmonics     int
	HarmonicDecay float64 // 1/s decay of the fundamental; upper harmonics scale up
	NoiseAmount   float64 // transient burst level, [0, 1]
	NoiseDecay    float64 // 1/s decay of the noise burst
}

// Render generates n samples, using rng for the noise burst.
func (im Impact) Render(n int, sampleRate float64, rng *rand.Rand, freqScale []float64) []float64 {
	out := make([]float64, n)
	sweepKind := im.Sweep
	if sweepKind == SweepNone {
		sweepKind = SweepExponential
	}
	sweep := SweepCurve(sweepKind, im.StartHz, im.EndHz, n)
	harmonics := im.Harmonics
	if harmonics <= 0 {
		harmonics = 1
	}

	for h := 1; h <= harmonics; h++ {
		amp := 1 / float64(h)
		rate := im.HarmonicDecay * (1 + 0.5*float64(h-1))
		var phase float64
		for i := range out {
			f := freqAt(im.StartHz, sweep, freqScale, i) * float64(h)
			t := float64(i) / sampleRate
			out[i] += amp * math.Exp(-rate*t) * math.Sin(phase)
			phase += 2 * math.Pi * f / sampleRate
		}
	}

	if im.NoiseAmount > 0 {
		for i := range out {
			t := float64(i) / sampleRate
			out[i] += im.NoiseAmount * math.Exp(-im.NoiseDecay*t) * seed.Uniform(rng)
		}
	}
	Normalize(out)
	return out
}
