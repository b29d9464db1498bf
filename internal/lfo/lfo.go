// Package lfo implements the low-frequency modulation engine: a unipolar
// oscillator scoped to one render pass plus the per-target application
// formulas that map its output onto synthesis and effect parameters.
package lfo

import (
	"math"

	"github.com/tonefab/go-audio-synth/internal/osc"
)

// Target identifies the parameter a modulation curve drives.
type Target int

const (
	TargetPitch Target = iota
	TargetVolume
	TargetFilterCutoff
	TargetPan
	TargetPulseWidth
	TargetFmIndex
	TargetGrainSize
	TargetGrainDensity
	TargetDelayTime
	TargetReverbSize
	TargetDistortionDrive
)

// Lfo produces a unipolar [0, 1] modulation curve. Its phase accumulator is
// scoped to one layer render and is never advanced by the layer's start
// delay: delay moves where the layer lands in the mix, not the LFO clock.
type Lfo struct {
	waveform osc.Waveform
	phase    *osc.PhaseAccumulator
	rateHz   float64
}

// New builds an LFO with the given waveform, rate, and initial phase
// (radians). A pulse request collapses to the 50%-duty square primitive.
func New(w osc.Waveform, rateHz, initialPhase, sampleRate float64) *Lfo {
	return &Lfo{
		waveform: w,
		phase:    osc.NewPhaseAccumulator(sampleRate, initialPhase),
		rateHz:   rateHz,
	}
}

// Next advances the LFO one sample and returns its unipolar value,
// remapping the bipolar oscillator output via (raw+1)/2.
func (l *Lfo) Next() float64 {
	raw := osc.Sample(l.waveform, l.phase.Advance(l.rateHz))
	return (raw + 1) / 2
}

// Curve renders n samples of the LFO into a fresh buffer.
func (l *Lfo) Curve(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = l.Next()
	}
	return out
}

// Physical clamp ranges for the modulated parameters.
const (
	MinCutoffHz     = 20.0
	MinDuty         = 0.01
	MaxDuty         = 0.99
	MinGrainSizeMs  = 10.0
	MaxGrainSizeMs  = 500.0
	MinGrainDensity = 1.0
	MaxGrainDensity = 100.0
	MinDelayTimeMs  = 1.0
	MaxDelayTimeMs  = 2000.0
	MinDrive        = 1.0
	MaxDrive        = 100.0
)

// bipolar converts a unipolar LFO sample to [-1, 1].
func bipolar(v float64) float64 { return (v - 0.5) * 2 }

// Apply maps one unipolar LFO sample onto a base parameter value for the
// given target. depth scales the excursion; amount carries target-specific
// units (semitones for pitch, Hz for cutoff, a [0,1] fraction otherwise).
func Apply(target Target, base, v, depth, amount float64) float64 {
	b := bipolar(v)
	switch target {
	case TargetPitch:
		return base * math.Exp2(b*amount*depth/12)
	case TargetVolume:
		s := amount * depth
		return base * ((1 - s) + v*s)
	case TargetFilterCutoff:
		return math.Max(MinCutoffHz, base+b*amount*depth)
	case TargetPan:
		return clamp(base+b*amount*depth, -1, 1)
	case TargetPulseWidth:
		return clamp(base+b*amount*depth, MinDuty, MaxDuty)
	case TargetFmIndex:
		return math.Max(0, base+b*amount*depth)
	case TargetGrainSize:
		return clamp(base+b*amount*depth, MinGrainSizeMs, MaxGrainSizeMs)
	case TargetGrainDensity:
		return clamp(base+b*amount*depth, MinGrainDensity, MaxGrainDensity)
	case TargetDelayTime:
		return clamp(base+b*amount*depth, MinDelayTimeMs, MaxDelayTimeMs)
	case TargetReverbSize:
		return clamp(base+b*amount*depth, 0, 1)
	case TargetDistortionDrive:
		return clamp(base+b*amount*depth, MinDrive, MaxDrive)
	default:
		return base
	}
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
