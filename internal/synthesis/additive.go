package synthesis

import (
	"math"
)

// Partial is one component of an additive sum: a frequency (absolute, or a
// ratio of the fundamental when Ratio is set), an amplitude, and an initial
// phase in radians.
type Partial struct {
	FrequencyHz float64
	Ratio       float64
	Amplitude   float64
	Phase       float64
}

// HarmonicPreset derives additive amplitude recipes for familiar timbres.
type HarmonicPreset int

const (
	PresetNone HarmonicPreset = iota
	PresetSawtooth
	PresetSquare
	PresetTriangle
	PresetOrgan
	PresetBell
)

// Additive renders a sum of sinusoidal partials, then peak-normalizes.
// When Preset is set, Partials is derived from the preset recipe with
// HarmonicCount terms; otherwise the explicit Partials list is used.
type Additive struct {
	FundamentalHz float64
	Preset        HarmonicPreset
	HarmonicCount int
	Partials      []Partial
}

// Render generates n samples.
func (a Additive) Render(n int, sampleRate float64, freqScale []float64) []float64 {
	out := make([]float64, n)
	partials := a.Partials
	if a.Preset != PresetNone {
		partials = presetPartials(a.Preset, a.HarmonicCount)
	}
	if len(partials) == 0 {
		return out
	}
	for _, p := range partials {
		f0 := p.FrequencyHz
		if p.Ratio != 0 {
			f0 = a.FundamentalHz * p.Ratio
		}
		phase := p.Phase
		for i := range out {
			f := f0
			if freqScale != nil {
				f *= freqScale[i]
			}
			out[i] += p.Amplitude * math.Sin(phase)
			phase += 2 * math.Pi * f / sampleRate
		}
	}
	Normalize(out)
	return out
}

// presetPartials builds the amplitude recipe for a timbre preset over count
// harmonics (a sensible default is used for count <= 0).
func presetPartials(preset HarmonicPreset, count int) []Partial {
	if count <= 0 {
		count = 16
	}
	partials := make([]Partial, 0, count)
	for h := 1; h <= count; h++ {
		p := Partial{Ratio: float64(h)}
		switch preset {
		case PresetSawtooth:
			p.Amplitude = 1 / float64(h)
		case PresetSquare:
			if h%2 == 0 {
				continue
			}
			p.Amplitude = 1 / float64(h)
		case PresetTriangle:
			if h%2 == 0 {
				continue
			}
			p.Amplitude = 1 / float64(h*h)
			if (h/2)%2 == 1 {
				p.Amplitude = -p.Amplitude
			}
		case PresetOrgan:
			// Drawbar-style: strong fundamental, octaves, and a fifth.
			switch h {
			case 1, 2, 4, 8:
				p.Amplitude = 1 / float64(1+h/2)
			case 3, 6:
				p.Amplitude = 0.4 / float64(h/3)
			default:
				continue
			}
		case PresetBell:
			// Slightly stretched, sparse upper partials.
			p.Ratio = float64(h) * (1 + 0.003*float64(h))
			p.Amplitude = math.Pow(0.72, float64(h-1))
		default:
			p.Amplitude = 1 / float64(h)
		}
		partials = append(partials, p)
	}
	return partials
}
