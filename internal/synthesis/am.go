package synthesis

import (
	"math"

	"github.com/tonefab/go-audio-synth/internal/osc"
)

// AM renders amplitude modulation of a sine carrier by a sine modulator:
// carrier·(1+depth·mod)/(1+depth). The modulator tracks the carrier
// proportionally when the carrier sweeps, keeping sideband spacing constant
// relative to the carrier.
type AM struct {
	CarrierHz   float64
	ModulatorHz float64
	Depth       float64
	Sweep       SweepKind
	SweepToHz   float64
}

// Render generates n samples.
func (a AM) Render(n int, sampleRate float64, freqScale []float64) []float64 {
	out := make([]float64, n)
	sweep := SweepCurve(a.Sweep, a.CarrierHz, a.SweepToHz, n)
	modRatio := 0.0
	if a.CarrierHz != 0 {
		modRatio = a.ModulatorHz / a.CarrierHz
	}
	carrier := osc.NewPhaseAccumulator(sampleRate, 0)
	modulator := osc.NewPhaseAccumulator(sampleRate, 0)
	norm := 1 / (1 + a.Depth)
	for i := range out {
		fc := freqAt(a.CarrierHz, sweep, freqScale, i)
		c := math.Sin(carrier.Advance(fc))
		m := math.Sin(modulator.Advance(fc * modRatio))
		out[i] = c * (1 + a.Depth*m) * norm
	}
	return out
}
