// Package effects implements the post-processing chain. Every effect is
// stateless at its API boundary: each Apply call builds its own filter and
// delay state, processes the buffer, and discards the state, so repeated
// renders are bit-identical. Parameters arrive pre-validated; any internal
// randomness comes from an explicitly passed seeded source.
package effects

import (
	"math"

	"github.com/tonefab/go-audio-synth/internal/lfo"
	"github.com/tonefab/go-audio-synth/internal/osc"
)

// Mod describes optional LFO modulation of a single effect parameter
// (delay time, reverb size, grain size/density, or saturation drive).
type Mod struct {
	Waveform osc.Waveform
	RateHz   float64
	Depth    float64
	Amount   float64
}

// curve renders the modulated parameter values for n samples, or nil when
// the modulation is absent or inert.
func (m *Mod) curve(target lfo.Target, base, sampleRate float64, n int) []float64 {
	if m == nil || m.Depth == 0 || m.RateHz <= 0 {
		return nil
	}
	l := lfo.New(m.Waveform, m.RateHz, 0, sampleRate)
	out := make([]float64, n)
	for i := range out {
		out[i] = lfo.Apply(target, base, l.Next(), m.Depth, m.Amount)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// dbToLinear converts decibels to a linear gain factor.
func dbToLinear(db float64) float64 { return math.Pow(10, db/20) }

// msToSamples converts milliseconds to a (fractional) sample count.
func msToSamples(ms, sampleRate float64) float64 { return ms * sampleRate / 1000 }
