package synthesis

import (
	"math"

	"github.com/tonefab/go-audio-synth/internal/envelope"
	"github.com/tonefab/go-audio-synth/internal/osc"
)

// FM renders two-operator frequency modulation:
// sin(carrier_phase + index·sin(modulator_phase [+ feedback])).
// The modulation index either decays exponentially over time or follows its
// own ADSR envelope; self-feedback routes the modulator's previous output
// back into its own phase.
type FM struct {
	CarrierHz  float64
	ModRatio   float64 // modulator frequency = CarrierHz · ModRatio
	Index      float64
	IndexDecay float64 // 1/s exponential decay of the index; 0 disables
	IndexEnv   *envelope.ADSR
	Feedback   float64
	// IndexCurve, when non-nil, overrides the index per sample (FM-index LFO).
	IndexCurve []float64
}

// Render generates n samples.
func (f FM) Render(n int, sampleRate float64, freqScale []float64) []float64 {
	out := make([]float64, n)
	carrier := osc.NewPhaseAccumulator(sampleRate, 0)
	modulator := osc.NewPhaseAccumulator(sampleRate, 0)

	var envCurve []float64
	if f.IndexEnv != nil {
		envCurve = f.IndexEnv.Curve(n, sampleRate)
	}

	var prevMod float64
	for i := range out {
		fc := freqAt(f.CarrierHz, nil, freqScale, i)
		index := f.Index
		if f.IndexCurve != nil {
			index = f.IndexCurve[i]
		}
		switch {
		case envCurve != nil:
			index *= envCurve[i]
		case f.IndexDecay > 0:
			index *= math.Exp(-f.IndexDecay * float64(i) / sampleRate)
		}
		m := math.Sin(modulator.Advance(fc*f.ModRatio) + f.Feedback*prevMod)
		prevMod = m
		out[i] = math.Sin(carrier.Advance(fc) + index*m)
	}
	return out
}
