package synthesis

import (
	"math"
	"math/rand/v2"

	"github.com/tonefab/go-audio-synth/internal/seed"
)

// Metallic renders inharmonic bell/cymbal-like spectra: partials at
// base·(n+1)^inharmonicity, each independently detuned and phase-randomized,
// with amplitude PartialDecay^n and a per-partial exponential decay whose
// rate scales with the partial's frequency ratio to the base (higher
// partials die faster, the 3·time-constant convention anchoring DecaySeconds
// at the fundamental).
type Metallic struct {
	BaseHz        float64
	PartialCount  int
	Inharmonicity float64
	PartialDecay  float64 // amplitude ratio between successive partials
	DetuneCents   float64 // maximum random detune applied per partial
	DecaySeconds  float64 // fundamental's 63% decay time
	RingModHz     float64 // optional ring-modulation carrier; 0 disables
	RingModMix    float64 // dry/ring-modulated cross-fade in [0, 1]
}

// Render generates n samples using rng for per-partial detune and phase.
func (m Metallic) Render(n int, sampleRate float64, rng *rand.Rand) []float64 {
	out := make([]float64, n)
	count := m.PartialCount
	if count <= 0 {
		count = 8
	}
	tau := m.DecaySeconds / 3
	if tau <= 0 {
		tau = math.Inf(1)
	}
	for p := 0; p < count; p++ {
		ratio := math.Pow(float64(p+1), m.Inharmonicity)
		detune := detuneRatio(seed.Uniform(rng) * m.DetuneCents)
		freq := m.BaseHz * ratio * detune
		amp := math.Pow(m.PartialDecay, float64(p))
		phase := rng.Float64() * 2 * math.Pi
		decayRate := ratio / tau
		step := 2 * math.Pi * freq / sampleRate
		for i := range out {
			t := float64(i) / sampleRate
			out[i] += amp * math.Exp(-decayRate*t) * math.Sin(phase)
			phase += step
		}
	}
	if m.RingModHz > 0 && m.RingModMix > 0 {
		RingModulate(out, m.RingModHz, m.RingModMix, sampleRate)
	}
	Normalize(out)
	return out
}

// RingModulate cross-fades buf with buf·sin(2π·carrierHz·t) in place.
func RingModulate(buf []float64, carrierHz, mix, sampleRate float64) {
	step := 2 * math.Pi * carrierHz / sampleRate
	var phase float64
	for i := range buf {
		ringed := buf[i] * math.Sin(phase)
		buf[i] = buf[i]*(1-mix) + ringed*mix
		phase += step
	}
}
