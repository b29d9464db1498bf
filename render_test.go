package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonefab/go-audio-synth/internal/testutil"
)

// toneParams builds a minimal single-layer sine render.
func toneParams() *RenderParams {
	return &RenderParams{
		SampleRate:      RateCD,
		DurationSeconds: 0.5,
		Layers: []Layer{{
			Synthesis: ToneSynth{Waveform: WaveSine, FrequencyHz: 440},
			Envelope:  Envelope{AttackSec: 0.01, DecaySec: 0.05, SustainLevel: 0.7, ReleaseSec: 0.1},
			Volume:    0.9,
		}},
	}
}

// noisyParams builds a render whose content depends on the seed.
func noisyParams() *RenderParams {
	return &RenderParams{
		SampleRate:      RateCD,
		DurationSeconds: 0.5,
		Layers: []Layer{{
			Synthesis: KarplusStrongSynth{FrequencyHz: 220, Decay: 0.995, Blend: 0.1},
			Envelope:  Envelope{AttackSec: 0.005, DecaySec: 0.1, SustainLevel: 0.8, ReleaseSec: 0.2},
			Volume:    0.9,
		}},
	}
}

// TestRender_Deterministic verifies the same params and seed reproduce the
// output bit for bit.
func TestRender_Deterministic(t *testing.T) {
	a, err := Render(noisyParams(), 12345)
	require.NoError(t, err)
	b, err := Render(noisyParams(), 12345)
	require.NoError(t, err)

	require.Equal(t, a.Output.Len(), b.Output.Len())
	for c := range a.Output.Channels() {
		testutil.AssertIdentical(t, a.Output.Channels()[c], b.Output.Channels()[c], "channel %d", c)
	}
	assert.Equal(t, a.PeakBeforeNormalize, b.PeakBeforeNormalize)
}

// TestRender_SeedSensitivity verifies stochastic content changes with the
// seed.
func TestRender_SeedSensitivity(t *testing.T) {
	a, err := Render(noisyParams(), 1)
	require.NoError(t, err)
	b, err := Render(noisyParams(), 2)
	require.NoError(t, err)
	assert.NotEqual(t, a.Output.Mono(), b.Output.Mono())
}

// TestRender_SampleCount verifies the output length is the ceiling of
// duration times rate.
func TestRender_SampleCount(t *testing.T) {
	p := toneParams()
	p.DurationSeconds = 0.25
	result, err := Render(p, 1)
	require.NoError(t, err)
	assert.Equal(t, int(math.Ceil(0.25*float64(RateCD))), result.Output.Len())
}

// TestRender_MonoWithoutPanInfo verifies a centered render stays single
// channel.
func TestRender_MonoWithoutPanInfo(t *testing.T) {
	result, err := Render(toneParams(), 1)
	require.NoError(t, err)
	assert.False(t, result.Output.IsStereo())
	assert.Len(t, result.Output.Channels(), 1)
}

// TestRender_StereoWithPan verifies any nonzero pan switches to two
// channels.
func TestRender_StereoWithPan(t *testing.T) {
	p := toneParams()
	p.Layers[0].Pan = 0.5
	result, err := Render(p, 1)
	require.NoError(t, err)
	assert.True(t, result.Output.IsStereo())
}

// TestRender_StereoWithPanLfo verifies a pan-target LFO forces stereo even
// at center pan.
func TestRender_StereoWithPanLfo(t *testing.T) {
	p := toneParams()
	p.Layers[0].Lfo = &LfoModulation{Waveform: WaveSine, RateHz: 2, Depth: 1, Target: LfoTargetPan, Amount: 1}
	result, err := Render(p, 1)
	require.NoError(t, err)
	assert.True(t, result.Output.IsStereo())
}

// TestRender_HardPanIsolatesChannel verifies a hard-left layer leaves the
// right channel silent.
func TestRender_HardPanIsolatesChannel(t *testing.T) {
	p := toneParams()
	p.Layers[0].Pan = -1
	result, err := Render(p, 1)
	require.NoError(t, err)

	right := result.Output.Right()
	assert.Less(t, testutil.Peak(right), 1e-12)
	assert.Greater(t, testutil.Peak(result.Output.Left()), 0.5)
}

// TestRender_NormalizesToTarget verifies the final peak sits at -3 dBFS.
func TestRender_NormalizesToTarget(t *testing.T) {
	result, err := Render(toneParams(), 1)
	require.NoError(t, err)
	want := math.Pow(10, DefaultNormalizationDBFS/20)
	assert.InDelta(t, want, testutil.Peak(result.Output.Mono()), 1e-9)
	assert.Greater(t, result.PeakBeforeNormalize, 0.0)
}

// TestRender_NoLayersIsSilence verifies an empty layer list renders valid
// silence rather than failing.
func TestRender_NoLayersIsSilence(t *testing.T) {
	p := &RenderParams{SampleRate: RateCD, DurationSeconds: 0.25}
	result, err := Render(p, 1)
	require.NoError(t, err)
	assert.Equal(t, 11025, result.Output.Len())
	assert.Equal(t, 0.0, testutil.Peak(result.Output.Mono()))
	assert.Equal(t, 0.0, result.PeakBeforeNormalize)
	assert.Equal(t, -1, result.LoopStart)
	assert.Equal(t, 0.0, result.BaseFrequencyHz)
}

// TestRender_StartDelayShiftsLayer verifies a delayed layer contributes
// nothing before its start.
func TestRender_StartDelayShiftsLayer(t *testing.T) {
	p := toneParams()
	p.Layers[0].StartDelaySec = 0.25
	p.Layers[0].Envelope.AttackSec = 0
	result, err := Render(p, 1)
	require.NoError(t, err)

	mono := result.Output.Mono()
	before := int(0.25*float64(RateCD)) - 1
	assert.Equal(t, 0.0, testutil.Peak(mono[:before]))
	assert.Greater(t, testutil.Peak(mono[before+2:]), 0.1)
}

// TestRender_LayersSum verifies two layers at different pitches both appear
// in the mix: removing one changes the output.
func TestRender_LayersSum(t *testing.T) {
	p := toneParams()
	p.Layers = append(p.Layers, Layer{
		Synthesis: ToneSynth{Waveform: WaveSine, FrequencyHz: 660},
		Envelope:  p.Layers[0].Envelope,
		Volume:    0.9,
	})
	both, err := Render(p, 1)
	require.NoError(t, err)
	one, err := Render(toneParams(), 1)
	require.NoError(t, err)
	assert.NotEqual(t, one.Output.Mono(), both.Output.Mono())
}

// TestRender_BaseFrequencyMetadata verifies the first tonal layer's
// fundamental is reported.
func TestRender_BaseFrequencyMetadata(t *testing.T) {
	result, err := Render(toneParams(), 1)
	require.NoError(t, err)
	assert.Equal(t, 440.0, result.BaseFrequencyHz)
}

// TestRender_LoopPoint verifies the loop start index is the first layer's
// sustain onset when requested, and -1 otherwise.
func TestRender_LoopPoint(t *testing.T) {
	p := toneParams()
	p.WantLoopPoint = true
	result, err := Render(p, 1)
	require.NoError(t, err)
	// Attack 10 ms + decay 50 ms at 44.1 kHz.
	want := int(math.Round(0.01*RateCD)) + int(math.Round(0.05*RateCD))
	assert.Equal(t, want, result.LoopStart)

	noLoop, err := Render(toneParams(), 1)
	require.NoError(t, err)
	assert.Equal(t, -1, noLoop.LoopStart)
}

// TestRender_MasterFilterSweep verifies a swept master lowpass changes the
// output and keeps it finite.
func TestRender_MasterFilterSweep(t *testing.T) {
	p := toneParams()
	plain, err := Render(p, 1)
	require.NoError(t, err)

	p.MasterFilter = &FilterSpec{Type: FilterLowpass, CutoffHz: 8000, Q: 0.707, SweepToHz: 200}
	swept, err := Render(p, 1)
	require.NoError(t, err)

	assert.NotEqual(t, plain.Output.Mono(), swept.Output.Mono())
	testutil.AssertNoNaNOrInf(t, swept.Output.Mono())
}

// TestRender_PitchEnvelopeBends verifies a pitch envelope changes the
// rendered content of a re-synthesized layer.
func TestRender_PitchEnvelopeBends(t *testing.T) {
	p := toneParams()
	straight, err := Render(p, 1)
	require.NoError(t, err)

	p.PitchEnvelope = &PitchEnvelope{
		Envelope:  Envelope{AttackSec: 0.05, DecaySec: 0.2, SustainLevel: 0.3, ReleaseSec: 0.1},
		Semitones: 12,
	}
	bent, err := Render(p, 1)
	require.NoError(t, err)
	assert.NotEqual(t, straight.Output.Mono(), bent.Output.Mono())
}

// TestRender_VolumeLfoTremolo verifies a volume LFO amplitude-modulates the
// layer.
func TestRender_VolumeLfoTremolo(t *testing.T) {
	p := toneParams()
	p.Layers[0].Lfo = &LfoModulation{Waveform: WaveSine, RateHz: 4, Depth: 1, Target: LfoTargetVolume, Amount: 1}
	mod, err := Render(p, 1)
	require.NoError(t, err)
	plain, err := Render(toneParams(), 1)
	require.NoError(t, err)
	assert.NotEqual(t, plain.Output.Mono(), mod.Output.Mono())
	testutil.AssertNoNaNOrInf(t, mod.Output.Mono())
}

// TestRender_EffectChainOrderMatters verifies effects apply in declaration
// order.
func TestRender_EffectChainOrderMatters(t *testing.T) {
	base := toneParams()
	ab := toneParams()
	ab.Effects = []Effect{
		BitcrushEffect{Bits: 4, DownsampleRate: 8000},
		DelayEffect{TimeMs: 50, Feedback: 0.4, Wet: 0.5},
	}
	ba := toneParams()
	ba.Effects = []Effect{
		DelayEffect{TimeMs: 50, Feedback: 0.4, Wet: 0.5},
		BitcrushEffect{Bits: 4, DownsampleRate: 8000},
	}

	plain, err := Render(base, 1)
	require.NoError(t, err)
	first, err := Render(ab, 1)
	require.NoError(t, err)
	second, err := Render(ba, 1)
	require.NoError(t, err)

	assert.NotEqual(t, plain.Output.Mono(), first.Output.Mono())
	assert.NotEqual(t, first.Output.Mono(), second.Output.Mono())
}

// TestRender_SeededEffectDeterministic verifies effects that consume
// randomness (tape hiss) reproduce under the same seed and differ across
// seeds.
func TestRender_SeededEffectDeterministic(t *testing.T) {
	mk := func() *RenderParams {
		p := toneParams()
		p.Effects = []Effect{TapeSaturationEffect{Drive: 3, HissLevel: 0.5}}
		return p
	}
	a, err := Render(mk(), 7)
	require.NoError(t, err)
	b, err := Render(mk(), 7)
	require.NoError(t, err)
	testutil.AssertIdentical(t, a.Output.Mono(), b.Output.Mono())

	c, err := Render(mk(), 8)
	require.NoError(t, err)
	assert.NotEqual(t, a.Output.Mono(), c.Output.Mono())
}

// TestRender_AllSynthesisVariants runs a short render of every generator and
// checks the output is finite and non-silent.
func TestRender_AllSynthesisVariants(t *testing.T) {
	variants := map[string]Synthesis{
		"tone":     ToneSynth{Waveform: WaveSawtooth, FrequencyHz: 220, BandLimited: true},
		"am":       AMSynth{CarrierHz: 440, ModulatorHz: 110, Depth: 0.8},
		"fm":       FMSynth{CarrierHz: 220, ModRatio: 2, Index: 5, IndexDecay: 4},
		"karplus":  KarplusStrongSynth{FrequencyHz: 220, Decay: 0.99, Blend: 0.1},
		"additive": AdditiveSynth{FundamentalHz: 220, Preset: PresetOrgan, HarmonicCount: 8},
		"metallic": MetallicSynth{BaseHz: 440, PartialCount: 8, Inharmonicity: 1.5, PartialDecay: 0.8, DecaySeconds: 1},
		"formant":  FormantSynth{F0Hz: 120, Vowel: VowelA, Breathiness: 0.1},
		"impact":   ImpactSynth{StartHz: 150, EndHz: 50, Harmonics: 3, HarmonicDecay: 15, NoiseAmount: 0.4, NoiseDecay: 30},
		"freeze":   SpectralFreezeSynth{SourceHz: 440},
		"vocoder":  VocoderSynth{Carrier: CarrierSawtooth, F0Hz: 110, Bands: 8, SyllableRate: 4},
	}
	for name, syn := range variants {
		t.Run(name, func(t *testing.T) {
			p := &RenderParams{
				SampleRate:      RateCD,
				DurationSeconds: 0.25,
				Layers: []Layer{{
					Synthesis: syn,
					Envelope:  Envelope{AttackSec: 0.01, DecaySec: 0.05, SustainLevel: 0.7, ReleaseSec: 0.05},
					Volume:    0.9,
				}},
			}
			result, err := Render(p, 42)
			require.NoError(t, err)
			mono := result.Output.Mono()
			testutil.AssertNoNaNOrInf(t, mono)
			assert.Greater(t, testutil.Peak(mono), 0.0, "generator must produce signal")
		})
	}
}

// TestRender_PresetsRender verifies every preset constructor renders
// successfully through the full pipeline.
func TestRender_PresetsRender(t *testing.T) {
	presets := map[string]Layer{
		"pluck":  PluckedString(220),
		"kick":   Kick(),
		"snare":  Snare(),
		"vowel":  VowelPad(110),
		"frozen": FrozenPad(330),
		"bell":   BellTone(660),
	}
	for name, layer := range presets {
		t.Run(name, func(t *testing.T) {
			samples, err := RenderMono(&RenderParams{
				SampleRate:      RateCD,
				DurationSeconds: 0.5,
				Layers:          []Layer{layer},
			}, 42)
			require.NoError(t, err)
			testutil.AssertNoNaNOrInf(t, samples)
			assert.Greater(t, testutil.Peak(samples), 0.0)
		})
	}
}

// TestRender_TrackerRelease verifies the tracker-release envelope silences
// the last quarter of the buffer's tail.
func TestRender_TrackerRelease(t *testing.T) {
	p := toneParams()
	p.Layers[0].Envelope = Envelope{AttackSec: 0.01, SustainLevel: 1, ReleaseSec: 0.05, TrackerRelease: true}
	result, err := Render(p, 1)
	require.NoError(t, err)

	mono := result.Output.Mono()
	n := len(mono)
	// Release runs from 75% of the buffer to the end.
	assert.Less(t, testutil.Peak(mono[n-100:]), 0.05)
	assert.Greater(t, testutil.Peak(mono[n/2:n/2+1000]), 0.3)
}
