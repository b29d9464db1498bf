package synthesis

import (
	"math"
	"math/rand/v2"

	"github.com/tonefab/go-audio-synth/internal/filter"
	"github.com/tonefab/go-audio-synth/internal/seed"
)

// Vowel identifies a formant preset.
type Vowel int

const (
	VowelA Vowel = iota
	VowelE
	VowelI
	VowelO
	VowelU
)

// FormantBand is one resonance of the vocal tract model.
type FormantBand struct {
	FrequencyHz float64
	BandwidthHz float64
	Amplitude   float64
}

// Classic three-formant vowel tables (male averages).
var vowelTable = map[Vowel][3]FormantBand{
	VowelA: {{730, 90, 1.0}, {1090, 110, 0.5}, {2440, 170, 0.25}},
	VowelE: {{530, 80, 1.0}, {1840, 120, 0.45}, {2480, 180, 0.3}},
	VowelI: {{270, 60, 1.0}, {2290, 150, 0.35}, {3010, 200, 0.25}},
	VowelO: {{570, 80, 1.0}, {840, 100, 0.5}, {2410, 170, 0.2}},
	VowelU: {{300, 60, 1.0}, {870, 100, 0.45}, {2240, 170, 0.15}},
}

// Formant renders vowel-like tones: a Rosenberg-style glottal pulse mixed
// with breath noise drives a bank of parallel peaking-EQ biquads tuned to
// the vowel's formants. Morph linearly interpolates formant frequencies,
// bandwidths, and amplitudes toward MorphTo.
type Formant struct {
	F0Hz        float64
	Vowel       Vowel
	MorphTo     Vowel
	Morph       float64       // 0 = Vowel, 1 = MorphTo
	Breathiness float64       // noise mixed into the excitation, [0, 1]
	Bands       []FormantBand // explicit formants; overrides vowel presets
}

// glottal pulse shape fractions of one period.
const (
	glottalOpenFraction  = 0.6
	glottalCloseFraction = 0.3
)

// Render generates n samples, using rng for the breath noise.
func (f Formant) Render(n int, sampleRate float64, rng *rand.Rand, freqScale []float64) []float64 {
	excitation := f.glottalSource(n, sampleRate, rng, freqScale)

	bands := f.Bands
	if bands == nil {
		bands = f.morphedBands()
	}
	out := make([]float64, n)
	for _, band := range bands {
		q := band.FrequencyHz / math.Max(band.BandwidthHz, 1)
		bq := filter.NewBiquad()
		bq.SetCoefficients(filter.Bandpass(band.FrequencyHz, q, sampleRate))
		for i, x := range excitation {
			out[i] += band.Amplitude * bq.Process(x)
		}
	}
	Normalize(out)
	return out
}

func (f Formant) morphedBands() []FormantBand {
	from := vowelTable[f.Vowel]
	to := vowelTable[f.MorphTo]
	m := math.Min(math.Max(f.Morph, 0), 1)
	bands := make([]FormantBand, len(from))
	for i := range from {
		bands[i] = FormantBand{
			FrequencyHz: from[i].FrequencyHz + m*(to[i].FrequencyHz-from[i].FrequencyHz),
			BandwidthHz: from[i].BandwidthHz + m*(to[i].BandwidthHz-from[i].BandwidthHz),
			Amplitude:   from[i].Amplitude + m*(to[i].Amplitude-from[i].Amplitude),
		}
	}
	return bands
}

// glottalSource produces the Rosenberg pulse train: a cubic rise over the
// open phase, a quadratic fall over the closing phase, silence until the
// next period, plus uniform breath noise.
func (f Formant) glottalSource(n int, sampleRate float64, rng *rand.Rand, freqScale []float64) []float64 {
	out := make([]float64, n)
	var cycle float64 // position within the current period, [0, 1)
	for i := range out {
		freq := f.F0Hz
		if freqScale != nil {
			freq *= freqScale[i]
		}
		var pulse float64
		switch {
		case cycle < glottalOpenFraction:
			t := cycle / glottalOpenFraction
			pulse = 3*t*t - 2*t*t*t
		case cycle < glottalOpenFraction+glottalCloseFraction:
			t := (cycle - glottalOpenFraction) / glottalCloseFraction
			pulse = 1 - t*t
		}
		noise := seed.Uniform(rng) * f.Breathiness
		out[i] = pulse*(1-f.Breathiness) + noise
		cycle += freq / sampleRate
		if cycle >= 1 {
			cycle -= math.Floor(cycle)
		}
	}
	return out
}
