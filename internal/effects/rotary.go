package effects

import (
	"math"

	"github.com/tonefab/go-audio-synth/internal/filter"
)

// Rotary speaker constants: tremolo excursion fraction and the Doppler
// delay line geometry.
const (
	rotaryTremoloScale = 0.3
	rotaryBaseDelayMs  = 1.5
	rotaryMaxModMs     = 1.0
)

// RotarySpeaker simulates a Leslie cabinet: amplitude tremolo via
// 1+depth·0.3·lfo and Doppler pitch wobble via a fractional delay line whose
// delay swings ±(depth·maxMod) around a fixed base. The right channel's LFO
// runs 90° ahead for stereo spread; channels are otherwise independent.
type RotarySpeaker struct {
	RateHz float64 // rotor speed, (0, 20]
	Depth  float64 // [0, 1]
	Wet    float64 // [0, 1]; 0 reproduces the dry input exactly
}

// Apply processes the channels in place.
func (r RotarySpeaker) Apply(channels [][]float64, sampleRate float64) {
	baseDelay := msToSamples(rotaryBaseDelayMs, sampleRate)
	maxMod := msToSamples(rotaryMaxModMs, sampleRate)
	step := 2 * math.Pi * r.RateHz / sampleRate

	for c, ch := range channels {
		line := filter.NewDelayLine(int(baseDelay+maxMod) + 4)
		phase := 0.0
		if c == 1 {
			phase = math.Pi / 2
		}
		for i, x := range ch {
			lfoVal := math.Sin(phase)
			phase += step

			line.Write(x)
			delayed := line.ReadInterpolated(baseDelay + r.Depth*maxMod*lfoVal)
			tremolo := 1 + r.Depth*rotaryTremoloScale*lfoVal
			wetSample := delayed * tremolo

			ch[i] = x*(1-r.Wet) + wetSample*r.Wet
		}
	}
}
