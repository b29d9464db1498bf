// Package osc provides the waveform primitives and phase accumulation used
// by every periodic signal source in the renderer. All functions are pure;
// the only state lives in PhaseAccumulator.
package osc

import "math"

// TwoPi is one full cycle in radians.
const TwoPi = 2 * math.Pi

// Waveform identifies one of the primitive oscillator shapes.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

// SineAt evaluates a sine wave at phase (radians).
func SineAt(phase float64) float64 {
	return math.Sin(phase)
}

// SquareAt evaluates a naive square wave at phase.
func SquareAt(phase float64) float64 {
	if wrap(phase) < math.Pi {
		return 1
	}
	return -1
}

// PulseAt evaluates a naive pulse wave with the given duty cycle in (0, 1).
func PulseAt(phase, duty float64) float64 {
	if wrap(phase) < TwoPi*duty {
		return 1
	}
	return -1
}

// SawtoothAt evaluates a naive sawtooth rising from -1 to 1 over one cycle.
func SawtoothAt(phase float64) float64 {
	return 2*(wrap(phase)/TwoPi) - 1
}

// TriangleAt evaluates a triangle wave at phase.
func TriangleAt(phase float64) float64 {
	p := wrap(phase) / TwoPi
	if p < 0.5 {
		return 4*p - 1
	}
	return 3 - 4*p
}

// Sample evaluates the given waveform at phase.
func Sample(w Waveform, phase float64) float64 {
	switch w {
	case Square:
		return SquareAt(phase)
	case Sawtooth:
		return SawtoothAt(phase)
	case Triangle:
		return TriangleAt(phase)
	default:
		return SineAt(phase)
	}
}

func wrap(phase float64) float64 {
	p := math.Mod(phase, TwoPi)
	if p < 0 {
		p += TwoPi
	}
	return p
}

// PhaseAccumulator integrates frequency into phase at a fixed sample rate,
// wrapping into [0, 2π) to avoid unbounded floating-point growth.
type PhaseAccumulator struct {
	phase      float64
	sampleRate float64
}

// NewPhaseAccumulator returns an accumulator starting at the given initial
// phase (radians).
func NewPhaseAccumulator(sampleRate, initialPhase float64) *PhaseAccumulator {
	return &PhaseAccumulator{phase: wrap(initialPhase), sampleRate: sampleRate}
}

// Advance returns the current phase, then steps it by 2π·freq/sampleRate.
func (p *PhaseAccumulator) Advance(freqHz float64) float64 {
	phase := p.phase
	p.phase += TwoPi * freqHz / p.sampleRate
	if p.phase >= TwoPi || p.phase < 0 {
		p.phase = wrap(p.phase)
	}
	return phase
}

// Phase returns the current phase without advancing.
func (p *PhaseAccumulator) Phase() float64 { return p.phase }

// Increment returns the per-sample phase step for freqHz, as a fraction of a
// full cycle. Used by the PolyBLEP correction, which needs the step width.
func (p *PhaseAccumulator) Increment(freqHz float64) float64 {
	return freqHz / p.sampleRate
}
