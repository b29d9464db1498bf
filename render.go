package synth

import (
	"math"
	"math/rand/v2"

	"github.com/tonefab/go-audio-synth/internal/effects"
	"github.com/tonefab/go-audio-synth/internal/envelope"
	"github.com/tonefab/go-audio-synth/internal/filter"
	"github.com/tonefab/go-audio-synth/internal/lfo"
	"github.com/tonefab/go-audio-synth/internal/mixer"
	"github.com/tonefab/go-audio-synth/internal/osc"
	"github.com/tonefab/go-audio-synth/internal/seed"
	"github.com/tonefab/go-audio-synth/internal/synthesis"
)

// Render produces the full sample buffer for the given parameters and seed.
// The render is synchronous and single-threaded; for the same params and
// seed the output is bit-identical on every run and platform. Validation is
// eager: a render either fully succeeds or fails before the first sample.
func Render(params *RenderParams, baseSeed uint32) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	n := int(math.Ceil(params.DurationSeconds * float64(params.SampleRate)))
	sr := float64(params.SampleRate)

	numChannels := 1
	if hasPanInfo(params) {
		numChannels = stereoChannels
	}
	mix := mixer.New(numChannels, n, sr)

	for i := range params.Layers {
		layer := &params.Layers[i]
		buf, panCurve := renderLayer(layer, i, n, sr, params.PitchEnvelope, baseSeed)
		delaySamples := int(math.Round(layer.StartDelaySec * sr))
		mix.Add(buf, layer.Volume, layer.Pan, delaySamples, panCurve)
	}

	peak := mix.Normalize(DefaultNormalizationDBFS)
	channels := mix.Channels()

	if params.MasterFilter != nil {
		applyFilterSweep(channels, params.MasterFilter, sr, nil)
	}

	for idx, e := range params.Effects {
		applyEffect(e, channels, sr, seed.DeriveIndexed(baseSeed, "effect", idx))
	}

	result := &Result{
		Output:              newMixerOutput(channels),
		PeakBeforeNormalize: peak,
		LoopStart:           -1,
	}
	if len(params.Layers) > 0 {
		result.BaseFrequencyHz = baseFrequency(params.Layers[0].Synthesis)
		if params.WantLoopPoint {
			env := adaptEnvelope(params.Layers[0].Envelope)
			result.LoopStart = env.SustainStart(n, sr)
		}
	}
	return result, nil
}

// hasPanInfo reports whether any layer carries panning information; without
// it the mix stays mono.
func hasPanInfo(params *RenderParams) bool {
	for i := range params.Layers {
		l := &params.Layers[i]
		if l.Pan != 0 {
			return true
		}
		if l.Lfo != nil && l.Lfo.Target == LfoTargetPan {
			return true
		}
	}
	return false
}

// renderLayer produces one layer's mono buffer and, when a pan LFO is
// declared, its per-sample pan curve. The layer's sub-seed is derived from
// its declaration index, so reordering unrelated layers never changes this
// layer's stochastic content.
func renderLayer(l *Layer, index, n int, sr float64, pitchEnv *PitchEnvelope, baseSeed uint32) (buf, panCurve []float64) {
	rng := seed.NewRand(seed.DeriveIndexed(baseSeed, "layer", index))

	// The layer's single LFO produces one unipolar curve, applied to
	// whichever target it declares. The curve starts at the layer's own
	// time zero: start delay shifts the layer in the mix, not the LFO.
	var lfoCurve []float64
	if l.Lfo != nil {
		gen := lfo.New(adaptWaveform(l.Lfo.Waveform), l.Lfo.RateHz, l.Lfo.InitialPhase, sr)
		lfoCurve = gen.Curve(n)
	}

	freqScale := pitchScaleCurve(l, n, sr, pitchEnv, lfoCurve)
	buf = synthesize(l, n, sr, rng, freqScale, lfoCurve)

	env := adaptEnvelope(l.Envelope)
	var gain []float64
	if l.Envelope.TrackerRelease {
		gain = env.TrackerCurve(n, sr)
	} else {
		gain = env.Curve(n, sr)
	}
	for i := range buf {
		buf[i] *= gain[i]
	}

	if l.Lfo != nil && l.Lfo.Target == LfoTargetVolume {
		for i := range buf {
			buf[i] *= lfo.Apply(lfo.TargetVolume, 1, lfoCurve[i], l.Lfo.Depth, l.Lfo.Amount)
		}
	}

	if l.Filter != nil {
		var cutoffLfo []float64
		if l.Lfo != nil && l.Lfo.Target == LfoTargetFilterCutoff {
			cutoffLfo = make([]float64, n)
			for i := range cutoffLfo {
				cutoffLfo[i] = lfo.Apply(lfo.TargetFilterCutoff, l.Filter.CutoffHz, lfoCurve[i], l.Lfo.Depth, l.Lfo.Amount)
			}
		}
		applyFilterSweep([][]float64{buf}, l.Filter, sr, cutoffLfo)
	}

	if l.Lfo != nil && l.Lfo.Target == LfoTargetPan {
		panCurve = make([]float64, n)
		for i := range panCurve {
			panCurve[i] = lfo.Apply(lfo.TargetPan, l.Pan, lfoCurve[i], l.Lfo.Depth, l.Lfo.Amount)
		}
	}
	return buf, panCurve
}

// pitchScaleCurve combines the global pitch envelope and a pitch-target LFO
// into one per-sample frequency multiplier, or nil when neither applies.
func pitchScaleCurve(l *Layer, n int, sr float64, pitchEnv *PitchEnvelope, lfoCurve []float64) []float64 {
	pitchLfo := l.Lfo != nil && l.Lfo.Target == LfoTargetPitch
	if pitchEnv == nil && !pitchLfo {
		return nil
	}
	scale := make([]float64, n)
	for i := range scale {
		scale[i] = 1
	}
	if pitchEnv != nil {
		env := adaptEnvelope(pitchEnv.Envelope)
		curve := env.Curve(n, sr)
		for i := range scale {
			scale[i] *= math.Exp2(curve[i] * pitchEnv.Semitones / 12)
		}
	}
	if pitchLfo {
		for i := range scale {
			scale[i] *= lfo.Apply(lfo.TargetPitch, 1, lfoCurve[i], l.Lfo.Depth, l.Lfo.Amount)
		}
	}
	return scale
}

// synthesize dispatches the layer's synthesis variant to its generator.
// Validation has already rejected unknown variants.
func synthesize(l *Layer, n int, sr float64, rng *rand.Rand, freqScale, lfoCurve []float64) []float64 {
	switch v := l.Synthesis.(type) {
	case ToneSynth:
		gen := synthesis.Tone{
			Waveform:    adaptWaveform(v.Waveform),
			FrequencyHz: v.FrequencyHz,
			Duty:        v.Duty,
			DetuneCents: v.DetuneCents,
			Sweep:       synthesis.SweepKind(v.Sweep),
			SweepToHz:   v.SweepToHz,
			BandLimited: v.BandLimited,
		}
		if l.Lfo != nil && l.Lfo.Target == LfoTargetPulseWidth {
			duty := v.Duty
			if duty == 0 {
				duty = 0.5
			}
			gen.DutyCurve = make([]float64, n)
			for i := range gen.DutyCurve {
				gen.DutyCurve[i] = lfo.Apply(lfo.TargetPulseWidth, duty, lfoCurve[i], l.Lfo.Depth, l.Lfo.Amount)
			}
		}
		return gen.Render(n, sr, freqScale)
	case AMSynth:
		gen := synthesis.AM{
			CarrierHz:   v.CarrierHz,
			ModulatorHz: v.ModulatorHz,
			Depth:       v.Depth,
			Sweep:       synthesis.SweepKind(v.Sweep),
			SweepToHz:   v.SweepToHz,
		}
		return gen.Render(n, sr, freqScale)
	case FMSynth:
		gen := synthesis.FM{
			CarrierHz:  v.CarrierHz,
			ModRatio:   v.ModRatio,
			Index:      v.Index,
			IndexDecay: v.IndexDecay,
			Feedback:   v.Feedback,
		}
		if v.IndexEnvelope != nil {
			env := adaptEnvelope(*v.IndexEnvelope)
			gen.IndexEnv = &env
		}
		if l.Lfo != nil && l.Lfo.Target == LfoTargetFmIndex {
			gen.IndexCurve = make([]float64, n)
			for i := range gen.IndexCurve {
				gen.IndexCurve[i] = lfo.Apply(lfo.TargetFmIndex, v.Index, lfoCurve[i], l.Lfo.Depth, l.Lfo.Amount)
			}
		}
		return gen.Render(n, sr, freqScale)
	case KarplusStrongSynth:
		gen := synthesis.KarplusStrong{
			FrequencyHz:  scaledStartFrequency(v.FrequencyHz, freqScale),
			Decay:        v.Decay,
			Blend:        v.Blend,
			Excitation:   synthesis.Excitation(v.Excitation),
			PickPosition: v.PickPosition,
		}
		return gen.Render(n, sr, rng)
	case AdditiveSynth:
		gen := synthesis.Additive{
			FundamentalHz: v.FundamentalHz,
			Preset:        synthesis.HarmonicPreset(v.Preset),
			HarmonicCount: v.HarmonicCount,
		}
		for _, p := range v.Partials {
			gen.Partials = append(gen.Partials, synthesis.Partial{
				FrequencyHz: p.FrequencyHz,
				Ratio:       p.Ratio,
				Amplitude:   p.Amplitude,
				Phase:       p.Phase,
			})
		}
		return gen.Render(n, sr, freqScale)
	case MetallicSynth:
		gen := synthesis.Metallic{
			BaseHz:        scaledStartFrequency(v.BaseHz, freqScale),
			PartialCount:  v.PartialCount,
			Inharmonicity: v.Inharmonicity,
			PartialDecay:  v.PartialDecay,
			DetuneCents:   v.DetuneCents,
			DecaySeconds:  v.DecaySeconds,
			RingModHz:     v.RingModHz,
			RingModMix:    v.RingModMix,
		}
		return gen.Render(n, sr, rng)
	case FormantSynth:
		gen := synthesis.Formant{
			F0Hz:        v.F0Hz,
			Vowel:       synthesis.Vowel(v.Vowel),
			MorphTo:     synthesis.Vowel(v.MorphTo),
			Morph:       v.Morph,
			Breathiness: v.Breathiness,
		}
		return gen.Render(n, sr, rng, freqScale)
	case ImpactSynth:
		gen := synthesis.Impact{
			StartHz:       v.StartHz,
			EndHz:         v.EndHz,
			Sweep:         synthesis.SweepKind(v.Sweep),
			Harmonics:     v.Harmonics,
			HarmonicDecay: v.HarmonicDecay,
			NoiseAmount:   v.NoiseAmount,
			NoiseDecay:    v.NoiseDecay,
		}
		return gen.Render(n, sr, rng, freqScale)
	case SpectralFreezeSynth:
		gen := synthesis.SpectralFreeze{
			SourceHz:  scaledStartFrequency(v.SourceHz, freqScale),
			FrameSize: v.FrameSize,
		}
		return gen.Render(n, sr, rng)
	case VocoderSynth:
		gen := synthesis.Vocoder{
			Carrier:      synthesis.CarrierKind(v.Carrier),
			F0Hz:         scaledStartFrequency(v.F0Hz, freqScale),
			Bands:        v.Bands,
			SyllableRate: v.SyllableRate,
			Breathiness:  v.Breathiness,
		}
		return gen.Render(n, sr, rng)
	default:
		return make([]float64, n)
	}
}

// scaledStartFrequency resolves the effective base frequency for generators
// whose pitch is fixed by internal geometry (delay-line length, frame
// capture): they take the pitch curve's starting value rather than a
// per-sample curve.
func scaledStartFrequency(base float64, freqScale []float64) float64 {
	if len(freqScale) == 0 {
		return base
	}
	return base * freqScale[0]
}

// applyFilterSweep runs the FilterSpec's biquad over each channel
// independently. Swept cutoffs interpolate exponentially (perceptually
// linear) across the buffer; cutoffLfo overrides the cutoff per sample.
// Coefficients are replaced mid-stream without resetting delay registers.
func applyFilterSweep(channels [][]float64, spec *FilterSpec, sr float64, cutoffLfo []float64) {
	design := func(cutoff float64) filter.Coefficients {
		switch spec.Type {
		case FilterHighpass:
			return filter.Highpass(cutoff, spec.Q, sr)
		case FilterBandpass:
			return filter.Bandpass(cutoff, spec.Q, sr)
		default:
			return filter.Lowpass(cutoff, spec.Q, sr)
		}
	}

	swept := spec.SweepToHz != 0 && spec.SweepToHz != spec.CutoffHz
	for _, ch := range channels {
		bq := filter.NewBiquad()
		n := len(ch)
		switch {
		case cutoffLfo != nil:
			for i, x := range ch {
				bq.SetCoefficients(design(cutoffLfo[i]))
				ch[i] = bq.Process(x)
			}
		case swept:
			ratio := spec.SweepToHz / spec.CutoffHz
			denom := math.Max(float64(n-1), 1)
			for i, x := range ch {
				cutoff := spec.CutoffHz * math.Pow(ratio, float64(i)/denom)
				bq.SetCoefficients(design(cutoff))
				ch[i] = bq.Process(x)
			}
		default:
			bq.SetCoefficients(design(spec.CutoffHz))
			bq.ProcessBuffer(ch)
		}
	}
}

// applyEffect dispatches one effect over the channels in place. Effects
// needing randomness get a source derived from their chain position.
func applyEffect(e Effect, channels [][]float64, sr float64, effectSeed uint32) {
	switch v := e.(type) {
	case ReverbEffect:
		effects.Reverb{
			RoomSize: v.RoomSize, Damping: v.Damping,
			Wet: v.Wet, Dry: v.Dry, Width: v.Width,
			SizeMod: adaptMod(v.SizeMod),
		}.Apply(channels, sr)
	case DelayEffect:
		effects.Delay{
			TimeMs: v.TimeMs, Feedback: v.Feedback, Wet: v.Wet,
			TimeMod: adaptMod(v.TimeMod),
		}.Apply(channels, sr)
	case ChorusEffect:
		effects.Chorus{RateHz: v.RateHz, DepthMs: v.DepthMs, BaseMs: v.BaseMs, Wet: v.Wet}.Apply(channels, sr)
	case PhaserEffect:
		effects.Phaser{
			RateHz: v.RateHz, Stages: v.Stages, CenterHz: v.CenterHz,
			Depth: v.Depth, Feedback: v.Feedback, Wet: v.Wet,
		}.Apply(channels, sr)
	case BitcrushEffect:
		effects.Bitcrush{Bits: v.Bits, DownsampleRate: v.DownsampleRate}.Apply(channels, sr)
	case CompressorEffect:
		effects.Compressor{
			ThresholdDB: v.ThresholdDB, Ratio: v.Ratio,
			AttackSec: v.AttackSec, ReleaseSec: v.ReleaseSec, MakeupDB: v.MakeupDB,
		}.Apply(channels, sr)
	case FlangerEffect:
		effects.Flanger{RateHz: v.RateHz, DepthMs: v.DepthMs, Feedback: v.Feedback, Wet: v.Wet}.Apply(channels, sr)
	case LimiterEffect:
		effects.Limiter{CeilingDB: v.CeilingDB, ReleaseSec: v.ReleaseSec}.Apply(channels, sr)
	case GateExpanderEffect:
		effects.GateExpander{
			ThresholdDB: v.ThresholdDB, Ratio: v.Ratio,
			AttackSec: v.AttackSec, ReleaseSec: v.ReleaseSec,
		}.Apply(channels, sr)
	case StereoWidenerEffect:
		effects.StereoWidener{Width: v.Width}.Apply(channels)
	case MultiTapDelayEffect:
		effects.MultiTapDelay{TimeMs: v.TimeMs, Taps: v.Taps, Decay: v.Decay, Wet: v.Wet}.Apply(channels, sr)
	case TapeSaturationEffect:
		effects.TapeSaturation{
			Drive: v.Drive, Bias: v.Bias,
			WowHz: v.WowHz, WowDepth: v.WowDepth,
			FlutterHz: v.FlutterHz, FlutterDepth: v.FlutterDepth,
			HissLevel: v.HissLevel, DriveMod: adaptMod(v.DriveMod),
		}.Apply(channels, sr, seed.NewRand(effectSeed))
	case TransientShaperEffect:
		effects.TransientShaper{Attack: v.Attack, Sustain: v.Sustain}.Apply(channels, sr)
	case AutoFilterEffect:
		effects.AutoFilter{
			BaseCutoffHz: v.BaseCutoffHz, Sensitivity: v.Sensitivity,
			Depth: v.Depth, AttackSec: v.AttackSec, ReleaseSec: v.ReleaseSec,
		}.Apply(channels, sr)
	case CabinetSimEffect:
		effects.CabinetSim{LowCutHz: v.LowCutHz, HighCutHz: v.HighCutHz, PresenceDB: v.PresenceDB}.Apply(channels, sr)
	case RotarySpeakerEffect:
		effects.RotarySpeaker{RateHz: v.RateHz, Depth: v.Depth, Wet: v.Wet}.Apply(channels, sr)
	case RingModulatorEffect:
		effects.RingModulator{CarrierHz: v.CarrierHz, Mix: v.Mix}.Apply(channels, sr)
	case GranularDelayEffect:
		effects.GranularDelay{
			TimeMs: v.TimeMs, GrainMs: v.GrainMs, Density: v.Density,
			Jitter: v.Jitter, Wet: v.Wet,
			SizeMod: adaptMod(v.SizeMod), DensityMod: adaptMod(v.DensityMod),
		}.Apply(channels, sr, seed.NewRand(effectSeed))
	case TruePeakLimiterEffect:
		effects.TruePeakLimiter{CeilingDB: v.CeilingDB, ReleaseSec: v.ReleaseSec}.Apply(channels, sr)
	case ParametricEqEffect:
		eq := effects.ParametricEq{
			LowShelfDB: v.LowShelfDB, LowShelfHz: v.LowShelfHz,
			HighShelfDB: v.HighShelfDB, HighShelfHz: v.HighShelfHz,
		}
		for _, band := range v.Bands {
			eq.Bands = append(eq.Bands, effects.EqBand{FrequencyHz: band.FrequencyHz, Q: band.Q, GainDB: band.GainDB})
		}
		eq.Apply(channels, sr)
	}
}

// baseFrequency extracts an instrument-style fundamental from a synthesis
// variant, or 0 for untuned material.
func baseFrequency(s Synthesis) float64 {
	switch v := s.(type) {
	case ToneSynth:
		return v.FrequencyHz
	case AMSynth:
		return v.CarrierHz
	case FMSynth:
		return v.CarrierHz
	case KarplusStrongSynth:
		return v.FrequencyHz
	case AdditiveSynth:
		return v.FundamentalHz
	case MetallicSynth:
		return v.BaseHz
	case FormantSynth:
		return v.F0Hz
	case VocoderSynth:
		return v.F0Hz
	default:
		return 0
	}
}

// adaptWaveform maps the public waveform tags onto the oscillator package's
// (the enumerations share ordering).
func adaptWaveform(w Waveform) osc.Waveform { return osc.Waveform(w) }

func adaptEnvelope(e Envelope) envelope.ADSR {
	return envelope.ADSR{
		Attack:  e.AttackSec,
		Decay:   e.DecaySec,
		Sustain: e.SustainLevel,
		Release: e.ReleaseSec,
	}
}

func adaptMod(m *EffectMod) *effects.Mod {
	if m == nil {
		return nil
	}
	return &effects.Mod{
		Waveform: adaptWaveform(m.Waveform),
		RateHz:   m.RateHz,
		Depth:    m.Depth,
		Amount:   m.Amount,
	}
}
