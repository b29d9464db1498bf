package synthesis

import (
	"github.com/tonefab/go-audio-synth/internal/osc"
)

// Tone renders one of the primitive waveforms with optional frequency sweep,
// duty cycle, and detune.
type Tone struct {
	Waveform    osc.Waveform
	FrequencyHz float64
	Duty        float64 // pulse duty for square shapes; 0 means 50%
	DetuneCents float64
	Sweep       SweepKind
	SweepToHz   float64
	BandLimited bool
	// DutyCurve, when non-nil, overrides Duty per sample (pulse-width LFO).
	DutyCurve []float64
}

// Render generates n samples. freqScale, when non-nil, multiplies the
// instantaneous frequency per sample (pitch envelope / pitch LFO).
func (t Tone) Render(n int, sampleRate float64, freqScale []float64) []float64 {
	out := make([]float64, n)
	sweep := SweepCurve(t.Sweep, t.FrequencyHz, t.SweepToHz, n)
	ratio := detuneRatio(t.DetuneCents)
	acc := osc.NewPhaseAccumulator(sampleRate, 0)
	for i := range out {
		f := freqAt(t.FrequencyHz, sweep, freqScale, i) * ratio
		phase := acc.Advance(f)
		duty := t.Duty
		if t.DutyCurve != nil {
			duty = t.DutyCurve[i]
		}
		switch {
		case duty > 0 && t.Waveform == osc.Square && t.BandLimited:
			out[i] = osc.PulseBLEP(phase, acc.Increment(f), duty)
		case duty > 0 && t.Waveform == osc.Square:
			out[i] = osc.PulseAt(phase, duty)
		case t.BandLimited:
			out[i] = osc.SampleBLEP(t.Waveform, phase, acc.Increment(f))
		default:
			out[i] = osc.Sample(t.Waveform, phase)
		}
	}
	return out
}
