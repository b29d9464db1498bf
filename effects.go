package synth

// Effect is the closed set of post-processing stages. Each variant carries
// its own validated numeric fields; effects are stateless at this boundary,
// with every apply constructing and discarding its internal filter and delay
// state.
type Effect interface{ isEffect() }

// EffectMod optionally modulates a single effect parameter with its own LFO
// (delay time, reverb size, grain size/density, or saturation drive).
type EffectMod struct {
	Waveform Waveform
	RateHz   float64 // (0, 100]
	Depth    float64 // [0, 1]
	Amount   float64 // target units: ms, [0,1] size, grains/s, or drive
}

// ReverbEffect is the Freeverb-style comb/allpass network.
type ReverbEffect struct {
	RoomSize float64 // [0, 1]
	Damping  float64 // [0, 1]
	Wet      float64 // [0, 1]
	Dry      float64 // [0, 1]
	Width    float64 // [0, 1]
	SizeMod  *EffectMod
}

// DelayEffect is a feedback delay, optionally time-modulated.
type DelayEffect struct {
	TimeMs   float64 // [1, 2000]
	Feedback float64 // [0, 0.99]
	Wet      float64 // [0, 1]
	TimeMod  *EffectMod
}

// ChorusEffect thickens with a slow modulated delay copy.
type ChorusEffect struct {
	RateHz  float64 // [0.05, 10]
	DepthMs float64 // [0.5, 10]
	BaseMs  float64 // [5, 40]
	Wet     float64 // [0, 1]
}

// PhaserEffect sweeps a cascade of allpass notches.
type PhaserEffect struct {
	RateHz   float64 // [0.05, 10]
	Stages   int     // [2, 12]
	CenterHz float64 // [100, 8000]
	Depth    float64 // [0, 1]
	Feedback float64 // [0, 0.9]
	Wet      float64 // [0, 1]
}

// BitcrushEffect quantizes bit depth and decimates the sample rate.
type BitcrushEffect struct {
	Bits           float64 // [1, 16]
	DownsampleRate float64 // [100, 48000] Hz
}

// CompressorEffect reduces gain above a threshold.
type CompressorEffect struct {
	ThresholdDB float64 // [-60, 0]
	Ratio       float64 // [1, 20]
	AttackSec   float64 // (0, 1]
	ReleaseSec  float64 // (0, 4]
	MakeupDB    float64 // [0, 24]
}

// FlangerEffect is a short modulated delay with feedback.
type FlangerEffect struct {
	RateHz   float64 // [0.05, 10]
	DepthMs  float64 // [0.1, 5]
	Feedback float64 // [0, 0.95]
	Wet      float64 // [0, 1]
}

// LimiterEffect is a hard-knee peak limiter.
type LimiterEffect struct {
	CeilingDB  float64 // [-20, 0]
	ReleaseSec float64 // (0, 4]
}

// GateExpanderEffect attenuates below a threshold.
type GateExpanderEffect struct {
	ThresholdDB float64 // [-80, 0]
	Ratio       float64 // [1, 20]
	AttackSec   float64 // (0, 1]
	ReleaseSec  float64 // (0, 4]
}

// StereoWidenerEffect rebalances the mid/side image.
type StereoWidenerEffect struct {
	Width float64 // [0, 2]; 1 is unity
}

// MultiTapDelayEffect mixes several discrete echoes.
type MultiTapDelayEffect struct {
	TimeMs float64 // [1, 2000]
	Taps   int     // [2, 8]
	Decay  float64 // [0, 1]
	Wet    float64 // [0, 1]
}

// TapeSaturationEffect emulates magnetic tape. Its tunables clamp rather
// than reject when out of range, per the parameter table.
type TapeSaturationEffect struct {
	Drive        float64 // clamps to [1, 100]
	Bias         float64 // clamps to [0, 1]
	WowHz        float64 // clamps to [0, 3]
	WowDepth     float64 // clamps to [0, 1]
	FlutterHz    float64 // clamps to [0, 20]
	FlutterDepth float64 // clamps to [0, 1]
	HissLevel    float64 // clamps to [0, 1]
	DriveMod     *EffectMod
}

// TransientShaperEffect rebalances attack and sustain.
type TransientShaperEffect struct {
	Attack  float64 // [-1, 1]
	Sustain float64 // [-1, 1]
}

// AutoFilterEffect is an envelope-followed lowpass.
type AutoFilterEffect struct {
	BaseCutoffHz float64 // [20, 20000]
	Sensitivity  float64 // [0, 1]
	Depth        float64 // [0, 1]
	AttackSec    float64 // (0, 1]
	ReleaseSec   float64 // (0, 4]
}

// CabinetSimEffect approximates a speaker cabinet response.
type CabinetSimEffect struct {
	LowCutHz   float64 // [20, 400]
	HighCutHz  float64 // [2000, 12000]
	PresenceDB float64 // [-12, 12]
}

// RotarySpeakerEffect simulates a Leslie cabinet.
type RotarySpeakerEffect struct {
	RateHz float64 // (0, 20]
	Depth  float64 // [0, 1]
	Wet    float64 // [0, 1]
}

// RingModulatorEffect multiplies by a sine carrier.
type RingModulatorEffect struct {
	CarrierHz float64 // [1, 10000]
	Mix       float64 // [0, 1]
}

// GranularDelayEffect scatters windowed grains from a delay buffer.
type GranularDelayEffect struct {
	TimeMs     float64 // [1, 2000]
	GrainMs    float64 // [10, 500]
	Density    float64 // [1, 100] grains/s
	Jitter     float64 // [0, 1]
	Wet        float64 // [0, 1]
	SizeMod    *EffectMod
	DensityMod *EffectMod
}

// TruePeakLimiterEffect limits against oversampled inter-sample peaks.
type TruePeakLimiterEffect struct {
	CeilingDB  float64 // [-20, 0]
	ReleaseSec float64 // (0, 4]
}

// EqBand is one parametric EQ band.
type EqBand struct {
	FrequencyHz float64 // [20, 20000]
	Q           float64 // [0.1, 18]
	GainDB      float64 // [-24, 24]
}

// ParametricEqEffect applies peaking bands plus optional shelves.
type ParametricEqEffect struct {
	Bands       []EqBand // at most 8
	LowShelfDB  float64  // [-24, 24]; 0 disables
	LowShelfHz  float64  // [20, 1000] when the shelf is active
	HighShelfDB float64  // [-24, 24]; 0 disables
	HighShelfHz float64  // [1000, 20000] when the shelf is active
}

func (ReverbEffect) isEffect()          {}
func (DelayEffect) isEffect()           {}
func (ChorusEffect) isEffect()          {}
func (PhaserEffect) isEffect()          {}
func (BitcrushEffect) isEffect()        {}
func (CompressorEffect) isEffect()      {}
func (FlangerEffect) isEffect()         {}
func (LimiterEffect) isEffect()         {}
func (GateExpanderEffect) isEffect()    {}
func (StereoWidenerEffect) isEffect()   {}
func (MultiTapDelayEffect) isEffect()   {}
func (TapeSaturationEffect) isEffect()  {}
func (TransientShaperEffect) isEffect() {}
func (AutoFilterEffect) isEffect()      {}
func (CabinetSimEffect) isEffect()      {}
func (RotarySpeakerEffect) isEffect()   {}
func (RingModulatorEffect) isEffect()   {}
func (GranularDelayEffect) isEffect()   {}
func (TruePeakLimiterEffect) isEffect() {}
func (ParametricEqEffect) isEffect()    {}
