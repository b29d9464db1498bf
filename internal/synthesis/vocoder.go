package synthesis

import (
	"math"
	"math/rand/v2"

	"github.com/tonefab/go-audio-synth/internal/filter"
	"github.com/tonefab/go-audio-synth/internal/osc"
	"github.com/tonefab/go-audio-synth/internal/seed"
)

// CarrierKind selects the vocoder's raw carrier signal.
type CarrierKind int

const (
	CarrierSawtooth CarrierKind = iota
	CarrierPulse
	CarrierNoise
)

// Vocoder renders robotic speech-like textures: a carrier is split through a
// bank of bandpass filters whose band amplitude envelopes follow synthetic
// speech-formant-shaped time patterns (no live modulator is involved), with
// periodic breath noise layered in for naturalness.
type Vocoder struct {
	Carrier      CarrierKind
	F0Hz         float64
	Bands        int
	SyllableRate float64 // Hz at which the synthetic formant pattern moves
	Breathiness  float64 // periodic noise layer level, [0, 1]
}

// Vocoder band layout.
const (
	vocoderLowHz  = 200.0
	vocoderHighHz = 5000.0
)

// Render generates n samples, using rng for the noise carrier and breath.
func (v Vocoder) Render(n int, sampleRate float64, rng *rand.Rand) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	bands := v.Bands
	if bands <= 0 {
		bands = 8
	}
	rate := v.SyllableRate
	if rate <= 0 {
		rate = 2
	}

	carrier := v.renderCarrier(n, sampleRate, rng)

	// Log-spaced band centers across the speech range.
	span := math.Log(vocoderHighHz / vocoderLowHz)
	for b := 0; b < bands; b++ {
		frac := float64(b) / float64(bands-1)
		if bands == 1 {
			frac = 0.5
		}
		center := vocoderLowHz * math.Exp(span*frac)
		bq := filter.NewBiquad()
		bq.SetCoefficients(filter.Bandpass(center, 4, sampleRate))

		// Each band's envelope is a raised slow sinusoid with a
		// band-specific phase offset, tracing formant-like motion
		// across the bank as syllables progress.
		phaseOffset := 2 * math.Pi * frac * 1.7
		for i := range out {
			t := float64(i) / sampleRate
			env := 0.5 + 0.5*math.Sin(2*math.Pi*rate*t+phaseOffset)
			env *= env // sharpen the pattern toward syllabic pulses
			out[i] += env * bq.Process(carrier[i])
		}
	}

	if v.Breathiness > 0 {
		for i := range out {
			t := float64(i) / sampleRate
			gate := 0.5 + 0.5*math.Sin(2*math.Pi*rate*t)
			out[i] += v.Breathiness * gate * seed.Uniform(rng) * 0.2
		}
	}
	Normalize(out)
	return out
}

func (v Vocoder) renderCarrier(n int, sampleRate float64, rng *rand.Rand) []float64 {
	if v.Carrier == CarrierNoise {
		return noiseBuffer(n, rng)
	}
	out := make([]float64, n)
	acc := osc.NewPhaseAccumulator(sampleRate, 0)
	for i := range out {
		phase := acc.Advance(v.F0Hz)
		if v.Carrier == CarrierPulse {
			out[i] = osc.PulseBLEP(phase, acc.Increment(v.F0Hz), 0.25)
		} else {
			out[i] = osc.SawtoothBLEP(phase, acc.Increment(v.F0Hz))
		}
	}
	return out
}
