package effects

import (
	"math"
	"math/rand/v2"

	"github.com/tonefab/go-audio-synth/internal/filter"
	"github.com/tonefab/go-audio-synth/internal/lfo"
	"github.com/tonefab/go-audio-synth/internal/seed"
)

// Tape transport constants: the wow/flutter delay line wobbles around a
// fixed base delay, and each modulator's excursion is a fraction of it.
const (
	tapeBaseDelayMs     = 2.0
	tapeWowFraction     = 0.4
	tapeFlutterFraction = 0.1
	maxWowHz            = 3.0
	maxFlutterHz        = 20.0
	tapeBiasShape       = 0.3
)

// TapeSaturation emulates magnetic tape: an asymmetric soft clipper with
// drive-compensating makeup gain, sinusoidal wow and flutter speed
// instability via a fractional delay line, and seeded uniform hiss. Its
// tunables follow the documented clamp-on-out-of-range policy rather than
// rejecting.
type TapeSaturation struct {
	Drive        float64 // clamped to [1, 100]
	Bias         float64 // positive-side asymmetry, clamped to [0, 1]
	WowHz        float64 // clamped to [0, 3]
	WowDepth     float64 // clamped to [0, 1]
	FlutterHz    float64 // clamped to [0, 20]
	FlutterDepth float64 // clamped to [0, 1]
	HissLevel    float64 // clamped to [0, 1]
	DriveMod     *Mod    // optional LFO on Drive
}

// clamped returns a copy with every tunable forced into its documented range.
func (t TapeSaturation) clamped() TapeSaturation {
	t.Drive = clamp(t.Drive, lfo.MinDrive, lfo.MaxDrive)
	t.Bias = clamp(t.Bias, 0, 1)
	t.WowHz = clamp(t.WowHz, 0, maxWowHz)
	t.WowDepth = clamp(t.WowDepth, 0, 1)
	t.FlutterHz = clamp(t.FlutterHz, 0, maxFlutterHz)
	t.FlutterDepth = clamp(t.FlutterDepth, 0, 1)
	t.HissLevel = clamp(t.HissLevel, 0, 1)
	return t
}

// saturate applies the asymmetric soft clip: x/(1+|x|) on the positive side,
// x/(1+1.2|x|) on the negative, with a small bias term pushing the transfer
// curve off center.
func saturate(x, bias float64) float64 {
	x += bias * tapeBiasShape
	if x >= 0 {
		return x / (1 + x)
	}
	return x / (1 - 1.2*x)
}

// Apply processes the channels in place using rng for the hiss.
func (t TapeSaturation) Apply(channels [][]float64, sampleRate float64, rng *rand.Rand) {
	t = t.clamped()
	n := len(channels[0])
	baseDelay := msToSamples(tapeBaseDelayMs, sampleRate)
	makeup := 1 / math.Sqrt(t.Drive)
	driveCurve := t.DriveMod.curve(lfo.TargetDistortionDrive, t.Drive, sampleRate, n)

	for _, ch := range channels {
		line := filter.NewDelayLine(int(baseDelay*2) + 4)
		var wowPhase, flutterPhase float64
		wowStep := 2 * math.Pi * t.WowHz / sampleRate
		flutterStep := 2 * math.Pi * t.FlutterHz / sampleRate

		for i, x := range ch {
			drive := t.Drive
			if driveCurve != nil {
				drive = driveCurve[i]
				makeup = 1 / math.Sqrt(drive)
			}
			y := saturate(x*drive, t.Bias) * makeup

			// Speed instability: the read point wanders around the
			// base delay under the wow and flutter sinusoids.
			line.Write(y)
			mod := t.WowDepth*tapeWowFraction*math.Sin(wowPhase) +
				t.FlutterDepth*tapeFlutterFraction*math.Sin(flutterPhase)
			delay := baseDelay * (1 + mod)
			y = line.ReadInterpolated(delay)
			wowPhase += wowStep
			flutterPhase += flutterStep

			if t.HissLevel > 0 {
				y += t.HissLevel * 0.002 * seed.Uniform(rng)
			}
			ch[i] = y
		}
	}
}
