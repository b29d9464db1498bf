package synth

// Waveform identifies a primitive oscillator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveSawtooth
	WaveTriangle
)

// SweepKind selects the interpolation law of a frequency sweep.
type SweepKind int

const (
	SweepNone SweepKind = iota
	SweepLinear
	SweepExponential
	SweepLogarithmic
)

// RenderParams is the immutable input record describing one render. It is
// produced by an external compiler/validation front-end; Render re-validates
// every numeric field defensively before any sample is generated.
type RenderParams struct {
	// SampleRate must be one of 22050, 44100, or 48000.
	SampleRate int

	// DurationSeconds is the render length, in (0, 30].
	DurationSeconds float64

	// Layers are summed in declaration order; at most 32.
	Layers []Layer

	// MasterFilter, when non-nil, runs a swept biquad over the mixed
	// output, independently per channel.
	MasterFilter *FilterSpec

	// Effects are applied to the mixed buffer in order.
	Effects []Effect

	// PitchEnvelope, when non-nil, re-synthesizes every layer with a
	// per-sample frequency curve derived from the envelope.
	PitchEnvelope *PitchEnvelope

	// WantLoopPoint requests a loop start index in the result, derived
	// from the first layer's envelope timing.
	WantLoopPoint bool
}

// Layer describes one synthesis voice. It yields exactly one mono sample
// sequence of the render's total sample count.
type Layer struct {
	Synthesis     Synthesis
	Envelope      Envelope
	Volume        float64 // [0, 1]
	Pan           float64 // [-1, 1]
	StartDelaySec float64 // [0, duration]; shifts where the layer lands in the mix
	Filter        *FilterSpec
	Lfo           *LfoModulation
}

// Envelope is a classic ADSR gain curve. Times are seconds, sustain is a
// level in [0, 1]. TrackerRelease anchors the release at a fixed fraction of
// the buffer instead of the tail, for material with no note-off.
type Envelope struct {
	AttackSec      float64
	DecaySec       float64
	SustainLevel   float64
	ReleaseSec     float64
	TrackerRelease bool
}

// PitchEnvelope bends every layer's pitch over time: the ADSR curve is
// mapped to a frequency multiplier of ±Semitones at full deflection.
type PitchEnvelope struct {
	Envelope  Envelope
	Semitones float64 // [-48, 48]
}

// FilterType selects the response of a FilterSpec.
type FilterType int

const (
	FilterLowpass FilterType = iota
	FilterHighpass
	FilterBandpass
)

// FilterSpec describes a biquad, optionally swept. When SweepToHz is
// non-zero the cutoff glides from CutoffHz to SweepToHz over the buffer,
// interpolated exponentially, with coefficients replaced per sample without
// resetting the delay registers.
type FilterSpec struct {
	Type      FilterType
	CutoffHz  float64 // [20, 20000]
	Q         float64 // [0.1, 18]
	SweepToHz float64 // 0 = no sweep, else [20, 20000]
}

// LfoTarget names the parameter a layer LFO drives.
type LfoTarget int

const (
	LfoTargetPitch LfoTarget = iota
	LfoTargetVolume
	LfoTargetFilterCutoff
	LfoTargetPan
	LfoTargetPulseWidth
	LfoTargetFmIndex
)

// LfoModulation modulates one layer parameter with a low-frequency
// oscillator. The LFO's phase accumulator is scoped to the layer's render
// and is never advanced by the layer's start delay. Amount carries
// target-specific units: semitones for pitch, Hz for filter cutoff, and a
// [0, 1] fraction for the rest.
type LfoModulation struct {
	Waveform     Waveform
	RateHz       float64 // (0, 100]
	InitialPhase float64 // radians
	Depth        float64 // [0, 1]
	Target       LfoTarget
	Amount       float64
}

// Synthesis is the closed set of per-layer signal generators. Exactly one
// variant type implements it per algorithm.
type Synthesis interface{ isSynthesis() }

// ToneSynth is a primitive oscillator with optional sweep, duty cycle, and
// detune.
type ToneSynth struct {
	Waveform    Waveform
	FrequencyHz float64 // [20, 20000]
	Duty        float64 // 0 (= 50%) or [0.01, 0.99]; square shapes only
	DetuneCents float64 // [-1200, 1200]
	Sweep       SweepKind
	SweepToHz   float64 // required when Sweep != SweepNone
	BandLimited bool    // PolyBLEP-corrected square/saw edges
}

// AMSynth is sine-on-sine amplitude modulation.
type AMSynth struct {
	CarrierHz   float64 // [20, 20000]
	ModulatorHz float64 // [0.1, 20000]
	Depth       float64 // [0, 1]
	Sweep       SweepKind
	SweepToHz   float64
}

// FMSynth is two-operator frequency modulation. The index decays
// exponentially when IndexDecay is set, or follows IndexEnvelope when
// non-nil; Feedback routes the modulator into its own phase.
type FMSynth struct {
	CarrierHz     float64 // [20, 20000]
	ModRatio      float64 // (0, 32]
	Index         float64 // [0, 100]
	IndexDecay    float64 // [0, 100] 1/s
	IndexEnvelope *Envelope
	Feedback      float64 // [0, 1]
}

// Excitation selects the Karplus-Strong delay line's initial contents.
type Excitation int

const (
	ExciteNoise Excitation = iota
	ExciteSawtooth
	ExciteTriangle
	ExciteImpulse
)

// KarplusStrongSynth is plucked-string synthesis with a filtered decaying
// delay loop.
type KarplusStrongSynth struct {
	FrequencyHz  float64 // [20, 10000]
	Decay        float64 // (0, 1]
	Blend        float64 // [0, 1]; 0 = full lowpass averaging
	Excitation   Excitation
	PickPosition float64 // [0, 0.95]; 0 disables pick filtering
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

// Partial is one component of an additive sum.
type Partial struct {
	FrequencyHz float64 // absolute frequency; ignored when Ratio is set
	Ratio       float64 // multiple of the fundamental
	Amplitude   float64
	Phase       float64 // radians
}

// AdditiveSynth sums sinusoidal partials from a preset recipe or an explicit
// partial list, then peak-normalizes.
type AdditiveSynth struct {
	FundamentalHz float64 // [20, 20000]
	Preset        HarmonicPreset
	HarmonicCount int // [1, 128] when Preset is set
	Partials      []Partial
}

// MetallicSynth renders inharmonic bell and cymbal spectra.
type MetallicSynth struct {
	BaseHz        float64 // [20, 20000]
	PartialCount  int     // [1, 64]
	Inharmonicity float64 // [0.5, 3]
	PartialDecay  float64 // (0, 1]
	DetuneCents   float64 // [0, 100]
	DecaySeconds  float64 // [0, 30]
	RingModHz     float64 // 0 disables; else [1, 10000]
	RingModMix    float64 // [0, 1]
}

// VowelKind identifies a formant preset.
type VowelKind int

const (
	VowelA VowelKind = iota
	VowelE
	VowelI
	VowelO
	VowelU
)

// FormantSynth renders vowel-like tones from a glottal pulse through a
// formant filter bank, with optional linear morphing between vowels.
type FormantSynth struct {
	F0Hz        float64 // [50, 1000]
	Vowel       VowelKind
	MorphTo     VowelKind
	Morph       float64 // [0, 1]
	Breathiness float64 // [0, 1]
}

// ImpactSynth renders percussive pitched bodies (kick/snare/punch style):
// swept harmonics with per-harmonic decay plus an optional noise burst.
type ImpactSynth struct {
	StartHz       float64   // [20, 2000]
	EndHz         float64   // [20, 2000]
	Sweep         SweepKind // SweepNone selects the exponential default
	Harmonics     int       // [1, 32]
	HarmonicDecay float64   // [0, 200] 1/s
	NoiseAmount   float64   // [0, 1]
	NoiseDecay    float64   // [0, 200] 1/s
}

// SpectralFreezeSynth sustains one captured spectral frame indefinitely via
// windowed overlap-add resynthesis.
type SpectralFreezeSynth struct {
	SourceHz  float64 // 0 = noise source, else [20, 20000]
	FrameSize int     // 0 = default (2048), else a power of two in [256, 8192]
}

// VocoderCarrier selects the vocoder's raw carrier.
type VocoderCarrier int

const (
	CarrierSawtooth VocoderCarrier = iota
	CarrierPulse
	CarrierNoise
)

// VocoderSynth renders speech-like textures from synthetic formant-shaped
// band envelopes over a filter bank.
type VocoderSynth struct {
	Carrier      VocoderCarrier
	F0Hz         float64 // [30, 1000]
	Bands        int     // [1, 32]
	SyllableRate float64 // (0, 20]
	Breathiness  float64 // [0, 1]
}

func (ToneSynth) isSynthesis()           {}
func (AMSynth) isSynthesis()             {}
func (FMSynth) isSynthesis()             {}
func (KarplusStrongSynth) isSynthesis()  {}
func (AdditiveSynth) isSynthesis()       {}
func (MetallicSynth) isSynthesis()       {}
func (FormantSynth) isSynthesis()        {}
func (ImpactSynth) isSynthesis()         {}
func (SpectralFreezeSynth) isSynthesis() {}
func (VocoderSynth) isSynthesis()        {}
