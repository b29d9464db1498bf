package synth

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validParams returns a record that passes validation, for tests to break
// one field at a time.
func validParams() *RenderParams {
	return &RenderParams{
		SampleRate:      RateCD,
		DurationSeconds: 1,
		Layers: []Layer{{
			Synthesis: ToneSynth{Waveform: WaveSine, FrequencyHz: 440},
			Envelope:  Envelope{AttackSec: 0.01, SustainLevel: 1, ReleaseSec: 0.1},
			Volume:    0.8,
		}},
	}
}

// requireRangeErr asserts err is a RangeError naming the given field, and
// that it classifies as ErrInvalidParameter.
func requireRangeErr(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidParameter)
	var re *RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, field, re.Field)
}

// TestValidate_NilParams verifies a nil record fails with ErrInvalidParams.
func TestValidate_NilParams(t *testing.T) {
	var p *RenderParams
	assert.ErrorIs(t, p.Validate(), ErrInvalidParams)

	_, err := Render(nil, 1)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

// TestValidate_SampleRateWhitelist verifies only the three supported rates
// pass.
func TestValidate_SampleRateWhitelist(t *testing.T) {
	for _, rate := range []int{RateSpeech, RateCD, RateDAT} {
		p := validParams()
		p.SampleRate = rate
		assert.NoError(t, p.Validate(), "rate %d must be accepted", rate)
	}
	for _, rate := range []int{0, -44100, 8000, 44101, 96000} {
		p := validParams()
		p.SampleRate = rate
		assert.ErrorIs(t, p.Validate(), ErrInvalidSampleRate, "rate %d must be rejected", rate)
	}
}

// TestValidate_DurationBounds verifies the (0, 30] duration window and that
// non-finite values are rejected.
func TestValidate_DurationBounds(t *testing.T) {
	for _, dur := range []float64{0.001, 1, 30} {
		p := validParams()
		p.DurationSeconds = dur
		assert.NoError(t, p.Validate(), "duration %v must be accepted", dur)
	}
	for _, dur := range []float64{0, -1, 30.001, math.NaN(), math.Inf(1)} {
		p := validParams()
		p.DurationSeconds = dur
		assert.ErrorIs(t, p.Validate(), ErrInvalidDuration, "duration %v must be rejected", dur)
	}
}

// TestValidate_LayerCap verifies the 32-layer ceiling.
func TestValidate_LayerCap(t *testing.T) {
	p := validParams()
	layer := p.Layers[0]
	p.Layers = nil
	for i := 0; i < MaxLayers; i++ {
		p.Layers = append(p.Layers, layer)
	}
	assert.NoError(t, p.Validate())

	p.Layers = append(p.Layers, layer)
	requireRangeErr(t, p.Validate(), "layers")
}

// TestValidate_MissingSynthesis verifies a layer without a generator fails
// with the dedicated sentinel.
func TestValidate_MissingSynthesis(t *testing.T) {
	p := validParams()
	p.Layers[0].Synthesis = nil
	assert.ErrorIs(t, p.Validate(), ErrMissingSynthesis)
}

// TestValidate_LayerFields verifies volume, pan, and start delay ranges with
// their reported field paths.
func TestValidate_LayerFields(t *testing.T) {
	p := validParams()
	p.Layers[0].Volume = 1.5
	requireRangeErr(t, p.Validate(), "layers[0].volume")

	p = validParams()
	p.Layers[0].Pan = -1.01
	requireRangeErr(t, p.Validate(), "layers[0].pan")

	// Start delay is bounded by the render duration, not a fixed cap.
	p = validParams()
	p.Layers[0].StartDelaySec = 1.5
	requireRangeErr(t, p.Validate(), "layers[0].startDelaySec")

	p = validParams()
	p.Layers[0].StartDelaySec = 0.9
	assert.NoError(t, p.Validate())
}

// TestValidate_EnvelopeFields verifies ADSR segment ranges.
func TestValidate_EnvelopeFields(t *testing.T) {
	p := validParams()
	p.Layers[0].Envelope.AttackSec = -0.1
	requireRangeErr(t, p.Validate(), "layers[0].envelope.attackSec")

	p = validParams()
	p.Layers[0].Envelope.SustainLevel = 1.2
	requireRangeErr(t, p.Validate(), "layers[0].envelope.sustainLevel")

	p = validParams()
	p.Layers[0].Envelope.ReleaseSec = math.NaN()
	requireRangeErr(t, p.Validate(), "layers[0].envelope.releaseSec")
}

// TestValidate_SynthesisFields verifies per-variant numeric checks surface
// the offending dotted path.
func TestValidate_SynthesisFields(t *testing.T) {
	cases := []struct {
		name  string
		syn   Synthesis
		field string
	}{
		{"tone frequency low", ToneSynth{FrequencyHz: 10}, "layers[0].synthesis.frequencyHz"},
		{"tone duty", ToneSynth{FrequencyHz: 440, Duty: 0.995}, "layers[0].synthesis.duty"},
		{"tone detune", ToneSynth{FrequencyHz: 440, DetuneCents: 2000}, "layers[0].synthesis.detuneCents"},
		{"tone sweep target missing", ToneSynth{FrequencyHz: 440, Sweep: SweepExponential}, "layers[0].synthesis.sweepToHz"},
		{"am modulator", AMSynth{CarrierHz: 440, ModulatorHz: 0.01, Depth: 0.5}, "layers[0].synthesis.modulatorHz"},
		{"fm ratio zero", FMSynth{CarrierHz: 440, ModRatio: 0}, "layers[0].synthesis.modRatio"},
		{"fm index", FMSynth{CarrierHz: 440, ModRatio: 2, Index: 150}, "layers[0].synthesis.index"},
		{"fm feedback", FMSynth{CarrierHz: 440, ModRatio: 2, Feedback: 1.5}, "layers[0].synthesis.feedback"},
		{"karplus frequency high", KarplusStrongSynth{FrequencyHz: 15000, Decay: 0.9}, "layers[0].synthesis.frequencyHz"},
		{"karplus decay zero", KarplusStrongSynth{FrequencyHz: 220, Decay: 0}, "layers[0].synthesis.decay"},
		{"karplus pick", KarplusStrongSynth{FrequencyHz: 220, Decay: 0.9, PickPosition: 0.99}, "layers[0].synthesis.pickPosition"},
		{"additive harmonic count", AdditiveSynth{FundamentalHz: 220, Preset: PresetSawtooth, HarmonicCount: 200}, "layers[0].synthesis.harmonicCount"},
		{"additive partial ratio", AdditiveSynth{FundamentalHz: 220, Partials: []Partial{{Ratio: 100, Amplitude: 1}}}, "layers[0].synthesis.partials[0].ratio"},
		{"additive partial amplitude", AdditiveSynth{FundamentalHz: 220, Partials: []Partial{{Ratio: 1, Amplitude: 2}}}, "layers[0].synthesis.partials[0].amplitude"},
		{"metallic inharmonicity", MetallicSynth{BaseHz: 440, PartialCount: 4, Inharmonicity: 5, PartialDecay: 0.5}, "layers[0].synthesis.inharmonicity"},
		{"formant f0", FormantSynth{F0Hz: 20}, "layers[0].synthesis.f0Hz"},
		{"formant morph", FormantSynth{F0Hz: 120, Morph: 1.5}, "layers[0].synthesis.morph"},
		{"impact start", ImpactSynth{StartHz: 5000, EndHz: 50}, "layers[0].synthesis.startHz"},
		{"impact noise decay", ImpactSynth{StartHz: 150, EndHz: 50, NoiseDecay: 500}, "layers[0].synthesis.noiseDecay"},
		{"freeze frame not power of two", SpectralFreezeSynth{SourceHz: 440, FrameSize: 1000}, "layers[0].synthesis.frameSize"},
		{"vocoder f0", VocoderSynth{F0Hz: 2000, Bands: 8}, "layers[0].synthesis.f0Hz"},
		{"vocoder syllable rate", VocoderSynth{F0Hz: 110, Bands: 8, SyllableRate: 25}, "layers[0].synthesis.syllableRate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			p.Layers[0].Synthesis = tc.syn
			requireRangeErr(t, p.Validate(), tc.field)
		})
	}
}

// TestValidate_AdditiveNeedsContent verifies an additive generator with
// neither preset nor partials is rejected as missing synthesis.
func TestValidate_AdditiveNeedsContent(t *testing.T) {
	p := validParams()
	p.Layers[0].Synthesis = AdditiveSynth{FundamentalHz: 220}
	assert.ErrorIs(t, p.Validate(), ErrMissingSynthesis)
}

// TestValidate_FilterFields verifies layer and master filter specs share the
// same checks under their own path prefixes.
func TestValidate_FilterFields(t *testing.T) {
	p := validParams()
	p.Layers[0].Filter = &FilterSpec{Type: FilterLowpass, CutoffHz: 5, Q: 0.707}
	requireRangeErr(t, p.Validate(), "layers[0].filter.cutoffHz")

	p = validParams()
	p.MasterFilter = &FilterSpec{Type: FilterLowpass, CutoffHz: 1000, Q: 25}
	requireRangeErr(t, p.Validate(), "masterFilter.q")

	p = validParams()
	p.MasterFilter = &FilterSpec{Type: FilterLowpass, CutoffHz: 1000, Q: 1, SweepToHz: 21000}
	requireRangeErr(t, p.Validate(), "masterFilter.sweepToHz")

	// SweepToHz of zero means no sweep and is always legal.
	p = validParams()
	p.MasterFilter = &FilterSpec{Type: FilterBandpass, CutoffHz: 1000, Q: 1}
	assert.NoError(t, p.Validate())
}

// TestValidate_LfoFields verifies LFO rate, depth, and target checks.
func TestValidate_LfoFields(t *testing.T) {
	p := validParams()
	p.Layers[0].Lfo = &LfoModulation{Waveform: WaveSine, RateHz: 0, Depth: 0.5, Target: LfoTargetPitch}
	requireRangeErr(t, p.Validate(), "layers[0].lfo.rateHz")

	p = validParams()
	p.Layers[0].Lfo = &LfoModulation{Waveform: WaveSine, RateHz: 5, Depth: 1.5, Target: LfoTargetPitch}
	requireRangeErr(t, p.Validate(), "layers[0].lfo.depth")

	p = validParams()
	p.Layers[0].Lfo = &LfoModulation{Waveform: WaveSine, RateHz: 5, Depth: 0.5, Target: LfoTarget(99)}
	requireRangeErr(t, p.Validate(), "layers[0].lfo.target")

	p = validParams()
	p.Layers[0].Lfo = &LfoModulation{Waveform: WaveSine, RateHz: 5, Depth: 0.5, Target: LfoTargetPitch, Amount: math.Inf(1)}
	requireRangeErr(t, p.Validate(), "layers[0].lfo.amount")
}

// TestValidate_PitchEnvelope verifies semitone bounds on the global pitch
// envelope.
func TestValidate_PitchEnvelope(t *testing.T) {
	p := validParams()
	p.PitchEnvelope = &PitchEnvelope{Envelope: Envelope{AttackSec: 0.1, SustainLevel: 1}, Semitones: 60}
	requireRangeErr(t, p.Validate(), "pitchEnvelope.semitones")

	p = validParams()
	p.PitchEnvelope = &PitchEnvelope{Envelope: Envelope{AttackSec: 0.1, SustainLevel: 1}, Semitones: -12}
	assert.NoError(t, p.Validate())
}

// TestValidate_EffectFields verifies effect checks report indexed paths.
func TestValidate_EffectFields(t *testing.T) {
	cases := []struct {
		name   string
		effect Effect
		field  string
	}{
		{"reverb damping", ReverbEffect{RoomSize: 0.5, Damping: -0.1}, "effects[0].damping"},
		{"delay feedback", DelayEffect{TimeMs: 100, Feedback: 1.0}, "effects[0].feedback"},
		{"chorus rate", ChorusEffect{RateHz: 20, DepthMs: 2, BaseMs: 10}, "effects[0].rateHz"},
		{"phaser stages", PhaserEffect{RateHz: 1, Stages: 1, CenterHz: 1000}, "effects[0].stages"},
		{"bitcrush bits", BitcrushEffect{Bits: 0.5, DownsampleRate: 8000}, "effects[0].bits"},
		{"compressor attack", CompressorEffect{ThresholdDB: -20, Ratio: 4, AttackSec: 0, ReleaseSec: 0.1}, "effects[0].attackSec"},
		{"limiter ceiling", LimiterEffect{CeilingDB: 3, ReleaseSec: 0.1}, "effects[0].ceilingDB"},
		{"gate threshold", GateExpanderEffect{ThresholdDB: -100, Ratio: 4, AttackSec: 0.01, ReleaseSec: 0.1}, "effects[0].thresholdDB"},
		{"widener width", StereoWidenerEffect{Width: 2.5}, "effects[0].width"},
		{"multitap taps", MultiTapDelayEffect{TimeMs: 100, Taps: 10, Decay: 0.5}, "effects[0].taps"},
		{"autofilter sensitivity", AutoFilterEffect{BaseCutoffHz: 200, Sensitivity: 1.5, Depth: 0.5, AttackSec: 0.01, ReleaseSec: 0.1}, "effects[0].sensitivity"},
		{"cabinet low cut", CabinetSimEffect{LowCutHz: 500, HighCutHz: 5000}, "effects[0].lowCutHz"},
		{"rotary rate", RotarySpeakerEffect{RateHz: 0, Depth: 0.5, Wet: 0.5}, "effects[0].rateHz"},
		{"ringmod carrier", RingModulatorEffect{CarrierHz: 0.5, Mix: 0.5}, "effects[0].carrierHz"},
		{"granular density", GranularDelayEffect{TimeMs: 200, GrainMs: 60, Density: 0.5, Wet: 0.5}, "effects[0].density"},
		{"true peak release", TruePeakLimiterEffect{CeilingDB: -1, ReleaseSec: 5}, "effects[0].releaseSec"},
		{"eq band gain", ParametricEqEffect{Bands: []EqBand{{FrequencyHz: 1000, Q: 1, GainDB: 30}}}, "effects[0].bands[0].gainDB"},
		{"eq low shelf hz", ParametricEqEffect{LowShelfDB: 6, LowShelfHz: 2000}, "effects[0].lowShelfHz"},
		{"transient attack", TransientShaperEffect{Attack: 1.5}, "effects[0].attack"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			p.Effects = []Effect{tc.effect}
			requireRangeErr(t, p.Validate(), tc.field)
		})
	}
}

// TestValidate_EffectIndexInPath verifies the failing effect's position is
// reported, not just the first slot.
func TestValidate_EffectIndexInPath(t *testing.T) {
	p := validParams()
	p.Effects = []Effect{
		DelayEffect{TimeMs: 100, Feedback: 0.5, Wet: 0.5},
		ReverbEffect{RoomSize: 0.5, Damping: 2},
	}
	requireRangeErr(t, p.Validate(), "effects[1].damping")
}

// TestValidate_TapeClampPolicy verifies tape tunables accept any finite
// value (they clamp at apply time) but reject non-finite input.
func TestValidate_TapeClampPolicy(t *testing.T) {
	p := validParams()
	p.Effects = []Effect{TapeSaturationEffect{Drive: 1e6, Bias: -50, WowHz: 1000, HissLevel: 99}}
	assert.NoError(t, p.Validate())

	p = validParams()
	p.Effects = []Effect{TapeSaturationEffect{Drive: math.NaN()}}
	requireRangeErr(t, p.Validate(), "effects[0].drive")

	p = validParams()
	p.Effects = []Effect{TapeSaturationEffect{FlutterDepth: math.Inf(-1)}}
	requireRangeErr(t, p.Validate(), "effects[0].flutterDepth")
}

// TestValidate_EffectModFields verifies nested per-effect LFO checks.
func TestValidate_EffectModFields(t *testing.T) {
	p := validParams()
	p.Effects = []Effect{DelayEffect{
		TimeMs: 100, Feedback: 0.3, Wet: 0.5,
		TimeMod: &EffectMod{Waveform: WaveSine, RateHz: 500, Depth: 0.5, Amount: 10},
	}}
	requireRangeErr(t, p.Validate(), "effects[0].timeMod.rateHz")

	p = validParams()
	p.Effects = []Effect{ReverbEffect{
		RoomSize: 0.5, Wet: 0.3, Dry: 0.7,
		SizeMod: &EffectMod{Waveform: WaveSine, RateHz: 1, Depth: 2, Amount: 0.2},
	}}
	requireRangeErr(t, p.Validate(), "effects[0].sizeMod.depth")
}

// TestValidate_NonFiniteFieldsRejected spot-checks that NaN and Inf never
// pass a range check.
func TestValidate_NonFiniteFieldsRejected(t *testing.T) {
	p := validParams()
	p.Layers[0].Volume = math.NaN()
	requireRangeErr(t, p.Validate(), "layers[0].volume")

	p = validParams()
	p.Layers[0].Synthesis = ToneSynth{FrequencyHz: math.Inf(1)}
	requireRangeErr(t, p.Validate(), "layers[0].synthesis.frequencyHz")
}

// TestValidate_ErrorMessageNamesField verifies the formatted message carries
// the path, value, and range.
func TestValidate_ErrorMessageNamesField(t *testing.T) {
	p := validParams()
	p.Layers[0].Volume = 2
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layers[0].volume")
	assert.Contains(t, err.Error(), "2")

	var re *RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 2.0, re.Value)
	assert.Equal(t, 0.0, re.Min)
	assert.Equal(t, 1.0, re.Max)
	assert.True(t, errors.Is(re, ErrInvalidParameter))
}
