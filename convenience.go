package synth

// Preset layer constructors for common material. Each returns a complete
// Layer that can be used as-is or tweaked before rendering.

// PluckedString builds a Karplus-Strong string layer at the given pitch.
func PluckedString(frequencyHz float64) Layer {
	return Layer{
		Synthesis: KarplusStrongSynth{
			FrequencyHz: frequencyHz,
			Decay:       0.996,
			Blend:       0.1,
			Excitation:  ExciteNoise,
		},
		Envelope: Envelope{AttackSec: 0.002, DecaySec: 0.1, SustainLevel: 0.8, ReleaseSec: 0.5},
		Volume:   0.9,
	}
}

// Kick builds a swept-sine kick drum layer.
func Kick() Layer {
	return Layer{
		Synthesis: ImpactSynth{
			StartHz:       120,
			EndHz:         40,
			Harmonics:     2,
			HarmonicDecay: 9,
			NoiseAmount:   0.15,
			NoiseDecay:    60,
		},
		Envelope: Envelope{AttackSec: 0.001, DecaySec: 0.25, SustainLevel: 0, ReleaseSec: 0.05},
		Volume:   1,
	}
}

// Snare builds a noisy snare layer with a short tonal body.
func Snare() Layer {
	return Layer{
		Synthesis: ImpactSynth{
			StartHz:       190,
			EndHz:         120,
			Harmonics:     3,
			HarmonicDecay: 25,
			NoiseAmount:   0.8,
			NoiseDecay:    18,
		},
		Envelope: Envelope{AttackSec: 0.001, DecaySec: 0.18, SustainLevel: 0, ReleaseSec: 0.05},
		Volume:   0.9,
	}
}

// VowelPad builds a slowly morphing formant pad.
func VowelPad(f0Hz float64) Layer {
	return Layer{
		Synthesis: FormantSynth{
			F0Hz:        f0Hz,
			Vowel:       VowelA,
			MorphTo:     VowelO,
			Morph:       0.5,
			Breathiness: 0.12,
		},
		Envelope: Envelope{AttackSec: 0.4, DecaySec: 0.2, SustainLevel: 0.8, ReleaseSec: 0.8},
		Volume:   0.8,
	}
}

// FrozenPad builds a spectral-freeze drone seeded from a tone.
func FrozenPad(sourceHz float64) Layer {
	return Layer{
		Synthesis: SpectralFreezeSynth{SourceHz: sourceHz},
		Envelope:  Envelope{AttackSec: 0.6, DecaySec: 0.3, SustainLevel: 0.9, ReleaseSec: 1.2},
		Volume:    0.8,
	}
}

// BellTone builds an inharmonic metallic bell layer.
func BellTone(baseHz float64) Layer {
	return Layer{
		Synthesis: MetallicSynth{
			BaseHz:        baseHz,
			PartialCount:  9,
			Inharmonicity: 1.47,
			PartialDecay:  0.75,
			DetuneCents:   6,
			DecaySeconds:  3,
		},
		Envelope: Envelope{AttackSec: 0.001, DecaySec: 1.5, SustainLevel: 0.2, ReleaseSec: 1},
		Volume:   0.85,
	}
}

// RenderMono is a one-shot helper rendering params and returning the mono
// (or left) channel directly.
func RenderMono(params *RenderParams, seed uint32) ([]float64, error) {
	result, err := Render(params, seed)
	if err != nil {
		return nil, err
	}
	return result.Output.Mono(), nil
}
