package synth

import (
	"fmt"
	"math"
)

// Validate checks every numeric field of the parameter record against its
// documented range. It runs eagerly before any sample is rendered, so a
// render either fully succeeds or fails with no partial output. Render calls
// it defensively even when an external front-end has validated already.
func (p *RenderParams) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: params are nil", ErrInvalidParams)
	}
	switch p.SampleRate {
	case RateSpeech, RateCD, RateDAT:
	default:
		return fmt.Errorf("%w: %d (must be 22050, 44100, or 48000)", ErrInvalidSampleRate, p.SampleRate)
	}
	if !isFinite(p.DurationSeconds) || p.DurationSeconds <= 0 || p.DurationSeconds > MaxDurationSeconds {
		return fmt.Errorf("%w: %v (must be in (0, %v])", ErrInvalidDuration, p.DurationSeconds, MaxDurationSeconds)
	}
	if len(p.Layers) > MaxLayers {
		return rangeErr("layers", float64(len(p.Layers)), 0, MaxLayers)
	}
	for i := range p.Layers {
		if err := validateLayer(&p.Layers[i], i, p.DurationSeconds); err != nil {
			return err
		}
	}
	if p.MasterFilter != nil {
		if err := validateFilter(p.MasterFilter, "masterFilter"); err != nil {
			return err
		}
	}
	if p.PitchEnvelope != nil {
		if err := validateEnvelope(&p.PitchEnvelope.Envelope, "pitchEnvelope"); err != nil {
			return err
		}
		if err := checkRange("pitchEnvelope.semitones", p.PitchEnvelope.Semitones, -48, 48); err != nil {
			return err
		}
	}
	for i, e := range p.Effects {
		if err := validateEffect(e, fmt.Sprintf("effects[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checkRange rejects non-finite values and values outside [minVal, maxVal].
func checkRange(field string, v, minVal, maxVal float64) error {
	if !isFinite(v) || v < minVal || v > maxVal {
		return rangeErr(field, v, minVal, maxVal)
	}
	return nil
}

// checkAbove requires v to be finite and strictly greater than lo.
func checkAbove(field string, v, lo, maxVal float64) error {
	if !isFinite(v) || v <= lo || v > maxVal {
		return rangeErr(field, v, lo, maxVal)
	}
	return nil
}

func validateLayer(l *Layer, index int, duration float64) error {
	path := fmt.Sprintf("layers[%d]", index)
	if l.Synthesis == nil {
		return fmt.Errorf("%w: %s", ErrMissingSynthesis, path)
	}
	if err := validateSynthesis(l.Synthesis, path+".synthesis"); err != nil {
		return err
	}
	if err := validateEnvelope(&l.Envelope, path+".envelope"); err != nil {
		return err
	}
	if err := checkRange(path+".volume", l.Volume, 0, 1); err != nil {
		return err
	}
	if err := checkRange(path+".pan", l.Pan, -1, 1); err != nil {
		return err
	}
	if err := checkRange(path+".startDelaySec", l.StartDelaySec, 0, duration); err != nil {
		return err
	}
	if l.Filter != nil {
		if err := validateFilter(l.Filter, path+".filter"); err != nil {
			return err
		}
	}
	if l.Lfo != nil {
		if err := validateLfo(l.Lfo, path+".lfo"); err != nil {
			return err
		}
	}
	return nil
}

func validateEnvelope(e *Envelope, path string) error {
	if err := checkRange(path+".attackSec", e.AttackSec, 0, MaxDurationSeconds); err != nil {
		return err
	}
	if err := checkRange(path+".decaySec", e.DecaySec, 0, MaxDurationSeconds); err != nil {
		return err
	}
	if err := checkRange(path+".sustainLevel", e.SustainLevel, 0, 1); err != nil {
		return err
	}
	return checkRange(path+".releaseSec", e.ReleaseSec, 0, MaxDurationSeconds)
}

func validateFilter(f *FilterSpec, path string) error {
	if f.Type < FilterLowpass || f.Type > FilterBandpass {
		return rangeErr(path+".type", float64(f.Type), float64(FilterLowpass), float64(FilterBandpass))
	}
	if err := checkRange(path+".cutoffHz", f.CutoffHz, minAudibleHz, maxAudibleHz); err != nil {
		return err
	}
	if err := checkRange(path+".q", f.Q, 0.1, 18); err != nil {
		return err
	}
	if f.SweepToHz != 0 {
		return checkRange(path+".sweepToHz", f.SweepToHz, minAudibleHz, maxAudibleHz)
	}
	return nil
}

func validateLfo(l *LfoModulation, path string) error {
	if err := checkAbove(path+".rateHz", l.RateHz, 0, 100); err != nil {
		return err
	}
	if err := checkRange(path+".depth", l.Depth, 0, 1); err != nil {
		return err
	}
	if !isFinite(l.InitialPhase) {
		return rangeErr(path+".initialPhase", l.InitialPhase, 0, 2*math.Pi)
	}
	if l.Target < LfoTargetPitch || l.Target > LfoTargetFmIndex {
		return rangeErr(path+".target", float64(l.Target), float64(LfoTargetPitch), float64(LfoTargetFmIndex))
	}
	if !isFinite(l.Amount) {
		return rangeErr(path+".amount", l.Amount, math.Inf(-1), math.Inf(1))
	}
	return nil
}

func validateSynthesis(s Synthesis, path string) error {
	switch v := s.(type) {
	case ToneSynth:
		if err := checkRange(path+".frequencyHz", v.FrequencyHz, minAudibleHz, maxAudibleHz); err != nil {
			return err
		}
		if v.Duty != 0 {
			if err := checkRange(path+".duty", v.Duty, 0.01, 0.99); err != nil {
				return err
			}
		}
		if err := checkRange(path+".detuneCents", v.DetuneCents, -1200, 1200); err != nil {
			return err
		}
		if v.Sweep != SweepNone {
			return checkRange(path+".sweepToHz", v.SweepToHz, minAudibleHz, maxAudibleHz)
		}
		return nil
	case AMSynth:
		if err := checkRange(path+".carrierHz", v.CarrierHz, minAudibleHz, maxAudibleHz); err != nil {
			return err
		}
		if err := checkRange(path+".modulatorHz", v.ModulatorHz, 0.1, maxAudibleHz); err != nil {
			return err
		}
		if err := checkRange(path+".depth", v.Depth, 0, 1); err != nil {
			return err
		}
		if v.Sweep != SweepNone {
			return checkRange(path+".sweepToHz", v.SweepToHz, minAudibleHz, maxAudibleHz)
		}
		return nil
	case FMSynth:
		if err := checkRange(path+".carrierHz", v.CarrierHz, minAudibleHz, maxAudibleHz); err != nil {
			return err
		}
		if err := checkAbove(path+".modRatio", v.ModRatio, 0, 32); err != nil {
			return err
		}
		if err := checkRange(path+".index", v.Index, 0, 100); err != nil {
			return err
		}
		if err := checkRange(path+".indexDecay", v.IndexDecay, 0, 100); err != nil {
			return err
		}
		if v.IndexEnvelope != nil {
			if err := validateEnvelope(v.IndexEnvelope, path+".indexEnvelope"); err != nil {
				return err
			}
		}
		return checkRange(path+".feedback", v.Feedback, 0, 1)
	case KarplusStrongSynth:
		if err := checkRange(path+".frequencyHz", v.FrequencyHz, minAudibleHz, 10000); err != nil {
			return err
		}
		if err := checkAbove(path+".decay", v.Decay, 0, 1); err != nil {
			return err
		}
		if err := checkRange(path+".blend", v.Blend, 0, 1); err != nil {
			return err
		}
		if v.Excitation < ExciteNoise || v.Excitation > ExciteImpulse {
			return rangeErr(path+".excitation", float64(v.Excitation), float64(ExciteNoise), float64(ExciteImpulse))
		}
		return checkRange(path+".pickPosition", v.PickPosition, 0, 0.95)
	case AdditiveSynth:
		if err := checkRange(path+".fundamentalHz", v.FundamentalHz, minAudibleHz, maxAudibleHz); err != nil {
			return err
		}
		if v.Preset != PresetNone {
			return checkRange(path+".harmonicCount", float64(v.HarmonicCount), 0, 128)
		}
		if len(v.Partials) == 0 {
			return fmt.Errorf("%w: %s has neither preset nor partials", ErrMissingSynthesis, path)
		}
		if len(v.Partials) > 128 {
			return rangeErr(path+".partials", float64(len(v.Partials)), 1, 128)
		}
		for i, part := range v.Partials {
			fp := fmt.Sprintf("%s.partials[%d]", path, i)
			if part.Ratio == 0 {
				if err := checkRange(fp+".frequencyHz", part.FrequencyHz, minAudibleHz, maxAudibleHz); err != nil {
					return err
				}
			} else if err := checkAbove(fp+".ratio", part.Ratio, 0, 64); err != nil {
				return err
			}
			if err := checkRange(fp+".amplitude", part.Amplitude, -1, 1); err != nil {
				return err
			}
			if !isFinite(part.Phase) {
				return rangeErr(fp+".phase", part.Phase, 0, 2*math.Pi)
			}
		}
		return nil
	case MetallicSynth:
		if err := checkRange(path+".baseHz", v.BaseHz, minAudibleHz, maxAudibleHz); err != nil {
			return err
		}
		if err := checkRange(path+".partialCount", float64(v.PartialCount), 0, 64); err != nil {
			return err
		}
		if err := checkRange(path+".inharmonicity", v.Inharmonicity, 0.5, 3); err != nil {
			return err
		}
		if err := checkAbove(path+".partialDecay", v.PartialDecay, 0, 1); err != nil {
			return err
		}
		if err := checkRange(path+".detuneCents", v.DetuneCents, 0, 100); err != nil {
			return err
		}
		if err := checkRange(path+".decaySeconds", v.DecaySeconds, 0, MaxDurationSeconds); err != nil {
			return err
		}
		if v.RingModHz != 0 {
			if err := checkRange(path+".ringModHz", v.RingModHz, 1, 10000); err != nil {
				return err
			}
		}
		return checkRange(path+".ringModMix", v.RingModMix, 0, 1)
	case FormantSynth:
		if err := checkRange(path+".f0Hz", v.F0Hz, 50, 1000); err != nil {
			return err
		}
		if v.Vowel < VowelA || v.Vowel > VowelU {
			return rangeErr(path+".vowel", float64(v.Vowel), float64(VowelA), float64(VowelU))
		}
		if v.MorphTo < VowelA || v.MorphTo > VowelU {
			return rangeErr(path+".morphTo", float64(v.MorphTo), float64(VowelA), float64(VowelU))
		}
		if err := checkRange(path+".morph", v.Morph, 0, 1); err != nil {
			return err
		}
		return checkRange(path+".breathiness", v.Breathiness, 0, 1)
	case ImpactSynth:
		if err := checkRange(path+".startHz", v.StartHz, minAudibleHz, 2000); err != nil {
			return err
		}
		if err := checkRange(path+".endHz", v.EndHz, minAudibleHz, 2000); err != nil {
			return err
		}
		if err := checkRange(path+".harmonics", float64(v.Harmonics), 0, 32); err != nil {
			return err
		}
		if err := checkRange(path+".harmonicDecay", v.HarmonicDecay, 0, 200); err != nil {
			return err
		}
		if err := checkRange(path+".noiseAmount", v.NoiseAmount, 0, 1); err != nil {
			return err
		}
		return checkRange(path+".noiseDecay", v.NoiseDecay, 0, 200)
	case SpectralFreezeSynth:
		if v.SourceHz != 0 {
			if err := checkRange(path+".sourceHz", v.SourceHz, minAudibleHz, maxAudibleHz); err != nil {
				return err
			}
		}
		if v.FrameSize != 0 {
			if v.FrameSize < 256 || v.FrameSize > 8192 || v.FrameSize&(v.FrameSize-1) != 0 {
				return rangeErr(path+".frameSize", float64(v.FrameSize), 256, 8192)
			}
		}
		return nil
	case VocoderSynth:
		if v.Carrier < CarrierSawtooth || v.Carrier > CarrierNoise {
			return rangeErr(path+".carrier", float64(v.Carrier), float64(CarrierSawtooth), float64(CarrierNoise))
		}
		if err := checkRange(path+".f0Hz", v.F0Hz, 30, 1000); err != nil {
			return err
		}
		if err := checkRange(path+".bands", float64(v.Bands), 0, 32); err != nil {
			return err
		}
		if v.SyllableRate != 0 {
			if err := checkAbove(path+".syllableRate", v.SyllableRate, 0, 20); err != nil {
				return err
			}
		}
		return checkRange(path+".breathiness", v.Breathiness, 0, 1)
	default:
		return fmt.Errorf("%w: %s has unknown synthesis type %T", ErrInvalidParams, path, s)
	}
}

func validateEffectMod(m *EffectMod, path string) error {
	if m == nil {
		return nil
	}
	if err := checkAbove(path+".rateHz", m.RateHz, 0, 100); err != nil {
		return err
	}
	if err := checkRange(path+".depth", m.Depth, 0, 1); err != nil {
		return err
	}
	if !isFinite(m.Amount) {
		return rangeErr(path+".amount", m.Amount, math.Inf(-1), math.Inf(1))
	}
	return nil
}

func validateEffect(e Effect, path string) error {
	switch v := e.(type) {
	case ReverbEffect:
		if err := checkRange(path+".roomSize", v.RoomSize, 0, 1); err != nil {
			return err
		}
		if err := checkRange(path+".damping", v.Damping, 0, 1); err != nil {
			return err
		}
		if err := checkRange(path+".wet", v.Wet, 0, 1); err != nil {
			return err
		}
		if err := checkRange(path+".dry", v.Dry, 0, 1); err != nil {
			return err
		}
		if err := checkRange(path+".width", v.Width, 0, 1); err != nil {
			return err
		}
		return validateEffectMod(v.SizeMod, path+".sizeMod")
	case DelayEffect:
		if err := checkRange(path+".timeMs", v.TimeMs, 1, 2000); err != nil {
			return err
		}
		if err := checkRange(path+".feedback", v.Feedback, 0, 0.99); err != nil {
			return err
		}
		if err := checkRange(path+".wet", v.Wet, 0, 1); err != nil {
			return err
		}
		return validateEffectMod(v.TimeMod, path+".timeMod")
	case ChorusEffect:
		if err := checkRange(path+".rateHz", v.RateHz, 0.05, 10); err != nil {
			return err
		}
		if err := checkRange(path+".depthMs", v.DepthMs, 0.5, 10); err != nil {
			return err
		}
		if err := checkRange(path+".baseMs", v.BaseMs, 5, 40); err != nil {
			return err
		}
		return checkRange(path+".wet", v.Wet, 0, 1)
	case PhaserEffect:
		if err := checkRange(path+".rateHz", v.RateHz, 0.05, 10); err != nil {
			return err
		}
		if err := checkRange(path+".stages", float64(v.Stages), 2, 12); err != nil {
			return err
		}
		if err := checkRange(path+".centerHz", v.CenterHz, 100, 8000); err != nil {
			return err
		}
		if err := checkRange(path+".depth", v.Depth, 0, 1); err != nil {
			return err
		}
		if err := checkRange(path+".feedback", v.Feedback, 0, 0.9); err != nil {
			return err
		}
		return checkRange(path+".wet", v.Wet, 0, 1)
	case BitcrushEffect:
		if err := checkRange(path+".bits", v.Bits, 1, 16); err != nil {
			return err
		}
		return checkRange(path+".downsampleRate", v.DownsampleRate, 100, 48000)
	case CompressorEffect:
		if err := checkRange(path+".thresholdDB", v.ThresholdDB, -60, 0); err != nil {
			return err
		}
		if err := checkRange(path+".ratio", v.Ratio, 1, 20); err != nil {
			return err
		}
		if err := checkAbove(path+".attackSec", v.AttackSec, 0, 1); err != nil {
			return err
		}
		if err := checkAbove(path+".releaseSec", v.ReleaseSec, 0, 4); err != nil {
			return err
		}
		return checkRange(path+".makeupDB", v.MakeupDB, 0, 24)
	case FlangerEffect:
		if err := checkRange(path+".rateHz", v.RateHz, 0.05, 10); err != nil {
			return err
		}
		if err := checkRange(path+".depthMs", v.DepthMs, 0.1, 5); err != nil {
			return err
		}
		if err := checkRange(path+".feedback", v.Feedback, 0, 0.95); err != nil {
			return err
		}
		return checkRange(path+".wet", v.Wet, 0, 1)
	case LimiterEffect:
		if err := checkRange(path+".ceilingDB", v.CeilingDB, -20, 0); err != nil {
			return err
		}
		return checkAbove(path+".releaseSec", v.ReleaseSec, 0, 4)
	case GateExpanderEffect:
		if err := checkRange(path+".thresholdDB", v.ThresholdDB, -80, 0); err != nil {
			return err
		}
		if err := checkRange(path+".ratio", v.Ratio, 1, 20); err != nil {
			return err
		}
		if err := checkAbove(path+".attackSec", v.AttackSec, 0, 1); err != nil {
			return err
		}
		return checkAbove(path+".releaseSec", v.ReleaseSec, 0, 4)
	case StereoWidenerEffect:
		return checkRange(path+".width", v.Width, 0, 2)
	case MultiTapDelayEffect:
		if err := checkRange(path+".timeMs", v.TimeMs, 1, 2000); err != nil {
			return err
		}
		if err := checkRange(path+".taps", float64(v.Taps), 2, 8); err != nil {
			return err
		}
		if err := checkRange(path+".decay", v.Decay, 0, 1); err != nil {
			return err
		}
		return checkRange(path+".wet", v.Wet, 0, 1)
	case TapeSaturationEffect:
		// Tape tunables follow the documented clamp-on-out-of-range
		// policy; only non-finite values and the mod are rejected here.
		for _, f := range []struct {
			name string
			val  float64
		}{
			{"drive", v.Drive}, {"bias", v.Bias},
			{"wowHz", v.WowHz}, {"wowDepth", v.WowDepth},
			{"flutterHz", v.FlutterHz}, {"flutterDepth", v.FlutterDepth},
			{"hissLevel", v.HissLevel},
		} {
			if !isFinite(f.val) {
				return rangeErr(path+"."+f.name, f.val, math.Inf(-1), math.Inf(1))
			}
		}
		return validateEffectMod(v.DriveMod, path+".driveMod")
	case TransientShaperEffect:
		if err := checkRange(path+".attack", v.Attack, -1, 1); err != nil {
			return err
		}
		return checkRange(path+".sustain", v.Sustain, -1, 1)
	case AutoFilterEffect:
		if err := checkRange(path+".baseCutoffHz", v.BaseCutoffHz, minAudibleHz, maxAudibleHz); err != nil {
			return err
		}
		if err := checkRange(path+".sensitivity", v.Sensitivity, 0, 1); err != nil {
			return err
		}
		if err := checkRange(path+".depth", v.Depth, 0, 1); err != nil {
			return err
		}
		if err := checkAbove(path+".attackSec", v.AttackSec, 0, 1); err != nil {
			return err
		}
		return checkAbove(path+".releaseSec", v.ReleaseSec, 0, 4)
	case CabinetSimEffect:
		if err := checkRange(path+".lowCutHz", v.LowCutHz, 20, 400); err != nil {
			return err
		}
		if err := checkRange(path+".highCutHz", v.HighCutHz, 2000, 12000); err != nil {
			return err
		}
		return checkRange(path+".presenceDB", v.PresenceDB, -12, 12)
	case RotarySpeakerEffect:
		if err := checkAbove(path+".rateHz", v.RateHz, 0, 20); err != nil {
			return err
		}
		if err := checkRange(path+".depth", v.Depth, 0, 1); err != nil {
			return err
		}
		return checkRange(path+".wet", v.Wet, 0, 1)
	case RingModulatorEffect:
		if err := checkRange(path+".carrierHz", v.CarrierHz, 1, 10000); err != nil {
			return err
		}
		return checkRange(path+".mix", v.Mix, 0, 1)
	case GranularDelayEffect:
		if err := checkRange(path+".timeMs", v.TimeMs, 1, 2000); err != nil {
			return err
		}
		if err := checkRange(path+".grainMs", v.GrainMs, 10, 500); err != nil {
			return err
		}
		if err := checkRange(path+".density", v.Density, 1, 100); err != nil {
			return err
		}
		if err := checkRange(path+".jitter", v.Jitter, 0, 1); err != nil {
			return err
		}
		if err := checkRange(path+".wet", v.Wet, 0, 1); err != nil {
			return err
		}
		if err := validateEffectMod(v.SizeMod, path+".sizeMod"); err != nil {
			return err
		}
		return validateEffectMod(v.DensityMod, path+".densityMod")
	case TruePeakLimiterEffect:
		if err := checkRange(path+".ceilingDB", v.CeilingDB, -20, 0); err != nil {
			return err
		}
		return checkAbove(path+".releaseSec", v.ReleaseSec, 0, 4)
	case ParametricEqEffect:
		if len(v.Bands) > 8 {
			return rangeErr(path+".bands", float64(len(v.Bands)), 0, 8)
		}
		for i, band := range v.Bands {
			bp := fmt.Sprintf("%s.bands[%d]", path, i)
			if err := checkRange(bp+".frequencyHz", band.FrequencyHz, minAudibleHz, maxAudibleHz); err != nil {
				return err
			}
			if err := checkRange(bp+".q", band.Q, 0.1, 18); err != nil {
				return err
			}
			if err := checkRange(bp+".gainDB", band.GainDB, -24, 24); err != nil {
				return err
			}
		}
		if v.LowShelfDB != 0 {
			if err := checkRange(path+".lowShelfDB", v.LowShelfDB, -24, 24); err != nil {
				return err
			}
			if err := checkRange(path+".lowShelfHz", v.LowShelfHz, 20, 1000); err != nil {
				return err
			}
		}
		if v.HighShelfDB != 0 {
			if err := checkRange(path+".highShelfDB", v.HighShelfDB, -24, 24); err != nil {
				return err
			}
			if err := checkRange(path+".highShelfHz", v.HighShelfHz, 1000, maxAudibleHz); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %s has unknown effect type %T", ErrInvalidParams, path, e)
	}
}
