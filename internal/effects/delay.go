package effects

import (
	"math"
	"math/rand/v2"

	"github.com/tonefab/go-audio-synth/internal/filter"
	"github.com/tonefab/go-audio-synth/internal/lfo"
)

// Delay is a feedback delay with optional LFO modulation of the delay time.
type Delay struct {
	TimeMs   float64 // [1, 2000]
	Feedback float64 // [0, 0.99]
	Wet      float64 // [0, 1]
	TimeMod  *Mod    // optional LFO on TimeMs
}

// Apply processes the channels in place.
func (d Delay) Apply(channels [][]float64, sampleRate float64) {
	n := len(channels[0])
	timeCurve := d.TimeMod.curve(lfo.TargetDelayTime, d.TimeMs, sampleRate, n)
	maxSamples := int(msToSamples(lfo.MaxDelayTimeMs, sampleRate)) + 4

	for _, ch := range channels {
		line := filter.NewDelayLine(maxSamples)
		for i, x := range ch {
			timeMs := d.TimeMs
			if timeCurve != nil {
				timeMs = timeCurve[i]
			}
			delayed := line.ReadInterpolated(msToSamples(timeMs, sampleRate))
			line.Write(x + delayed*d.Feedback)
			ch[i] = x*(1-d.Wet) + delayed*d.Wet
		}
	}
}

// MultiTapDelay mixes several discrete echoes, each tap at an equal
// subdivision of TimeMs with geometrically decaying gain.
type MultiTapDelay struct {
	TimeMs float64 // [1, 2000]; the furthest tap
	Taps   int     // [2, 8]
	Decay  float64 // per-tap gain ratio, [0, 1]
	Wet    float64 // [0, 1]
}

// Apply processes the channels in place.
func (m MultiTapDelay) Apply(channels [][]float64, sampleRate float64) {
	maxSamples := int(msToSamples(m.TimeMs, sampleRate)) + 4
	for _, ch := range channels {
		line := filter.NewDelayLine(maxSamples)
		for i, x := range ch {
			line.Write(x)
			var wet float64
			gain := m.Decay
			for tap := 1; tap <= m.Taps; tap++ {
				tapMs := m.TimeMs * float64(tap) / float64(m.Taps)
				wet += gain * line.ReadInterpolated(msToSamples(tapMs, sampleRate))
				gain *= m.Decay
			}
			ch[i] = x*(1-m.Wet) + wet*m.Wet
		}
	}
}

// GranularDelay scatters short windowed grains read from a delay buffer.
// Grain start jitter comes from the render's seeded source; grain size and
// density accept optional LFO modulation.
type GranularDelay struct {
	TimeMs     float64 // buffer span the grains read from, [1, 2000]
	GrainMs    float64 // [10, 500]
	Density    float64 // grains per second, [1, 100]
	Jitter     float64 // random grain offset fraction, [0, 1]
	Wet        float64 // [0, 1]
	SizeMod    *Mod    // optional LFO on GrainMs
	DensityMod *Mod    // optional LFO on Density
}

// Apply processes the channels in place, consuming rng for grain jitter.
func (g GranularDelay) Apply(channels [][]float64, sampleRate float64, rng *rand.Rand) {
	n := len(channels[0])
	sizeCurve := g.SizeMod.curve(lfo.TargetGrainSize, g.GrainMs, sampleRate, n)
	densityCurve := g.DensityMod.curve(lfo.TargetGrainDensity, g.Density, sampleRate, n)
	span := msToSamples(g.TimeMs, sampleRate)

	for _, ch := range channels {
		dry := make([]float64, n)
		copy(dry, ch)
		wet := make([]float64, n)

		// Deterministic grain scheduling: the next grain onset is set by
		// the (possibly modulated) density at the previous onset.
		for start := 0; start < n; {
			grainMs := g.GrainMs
			if sizeCurve != nil {
				grainMs = sizeCurve[start]
			}
			density := g.Density
			if densityCurve != nil {
				density = densityCurve[start]
			}
			grainLen := int(msToSamples(grainMs, sampleRate))
			if grainLen < 1 {
				grainLen = 1
			}
			offset := int(rng.Float64() * g.Jitter * span)
			src := start - offset
			for i := 0; i < grainLen && start+i < n; i++ {
				j := src + i
				if j < 0 || j >= n {
					continue
				}
				// Hann-shaped grain window.
				w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(grainLen))
				wet[start+i] += dry[j] * w
			}
			hop := int(sampleRate / density)
			if hop < 1 {
				hop = 1
			}
			start += hop
		}
		for i := range ch {
			ch[i] = dry[i]*(1-g.Wet) + wet[i]*g.Wet
		}
	}
}
