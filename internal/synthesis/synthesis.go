// Package synthesis implements the signal-generation algorithms. Every
// generator is a pure function of (sample count, sample rate, its config,
// and a seeded random source): the same inputs always produce bit-identical
// output, which is the renderer's core contract.
package synthesis

import (
	"math"
	"math/rand/v2"

	"github.com/tonefab/go-audio-synth/internal/seed"
)

// SweepKind selects how a frequency sweep interpolates between its
// endpoints over the buffer's time axis.
type SweepKind int

const (
	SweepNone SweepKind = iota
	SweepLinear
	SweepExponential
	SweepLogarithmic
)

// Normalize scales buf in place so its peak magnitude is 1, leaving silent
// buffers untouched.
func Normalize(buf []float64) {
	peak := Peak(buf)
	if peak == 0 {
		return
	}
	inv := 1 / peak
	for i := range buf {
		buf[i] *= inv
	}
}

// Peak returns the maximum absolute value in buf.
func Peak(buf []float64) float64 {
	var peak float64
	for _, v := range buf {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// SweepCurve returns the per-sample frequency for a sweep from startHz to
// endHz over n samples. A nil return means the frequency is constant.
func SweepCurve(kind SweepKind, startHz, endHz float64, n int) []float64 {
	if kind == SweepNone || n == 0 || startHz == endHz {
		return nil
	}
	out := make([]float64, n)
	denom := float64(n - 1)
	if denom == 0 {
		out[0] = startHz
		return out
	}
	for i := range out {
		t := float64(i) / denom
		switch kind {
		case SweepExponential:
			out[i] = startHz * math.Pow(endHz/startHz, t)
		case SweepLogarithmic:
			// Fast early movement, mirroring the exponential law.
			out[i] = startHz + (endHz-startHz)*math.Log1p(t*(math.E-1))
		default:
			out[i] = startHz + (endHz-startHz)*t
		}
	}
	return out
}

// freqAt resolves the instantaneous frequency at sample i: the sweep curve
// if present, scaled by the external pitch curve if present.
func freqAt(base float64, sweep, scale []float64, i int) float64 {
	f := base
	if sweep != nil {
		f = sweep[i]
	}
	if scale != nil {
		f *= scale[i]
	}
	return f
}

// detuneRatio converts a cents offset to a frequency ratio.
func detuneRatio(cents float64) float64 {
	if cents == 0 {
		return 1
	}
	return math.Exp2(cents / 1200)
}

// noiseBuffer fills a fresh buffer with uniform noise in [-1, 1).
func noiseBuffer(n int, rng *rand.Rand) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = seed.Uniform(rng)
	}
	return out
}
