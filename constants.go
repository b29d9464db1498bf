package synth

// Supported sample rates.
const (
	RateSpeech = 22050
	RateCD     = 44100
	RateDAT    = 48000
)

// Input caps enforced by validation. Bounding render cost is the
// responsibility of these caps; the pipeline itself has no timeouts.
const (
	MaxDurationSeconds = 30.0
	MaxLayers          = 32
)

// DefaultNormalizationDBFS is the peak level the mixer normalizes to.
const DefaultNormalizationDBFS = -3.0

// Audible frequency bounds used by the parameter range tables.
const (
	minAudibleHz = 20.0
	maxAudibleHz = 20000.0
)

// Stereo channel count, matching the mixer's maximum.
const stereoChannels = 2
