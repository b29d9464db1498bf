package effects

import (
	"math"

	"github.com/tonefab/go-audio-synth/internal/filter"
)

// Chorus thickens the signal with a slowly modulated delayed copy.
type Chorus struct {
	RateHz  float64 // [0.05, 10]
	DepthMs float64 // [0.5, 10]
	BaseMs  float64 // [5, 40]
	Wet     float64 // [0, 1]
}

// Apply processes the channels in place. The right channel's LFO is offset a
// quarter cycle so the stereo image widens.
func (c Chorus) Apply(channels [][]float64, sampleRate float64) {
	maxSamples := int(msToSamples(c.BaseMs+c.DepthMs, sampleRate)) + 4
	step := 2 * math.Pi * c.RateHz / sampleRate
	for idx, ch := range channels {
		line := filter.NewDelayLine(maxSamples)
		phase := float64(idx) * math.Pi / 2
		for i, x := range ch {
			line.Write(x)
			delayMs := c.BaseMs + c.DepthMs*(0.5+0.5*math.Sin(phase))
			phase += step
			wet := line.ReadInterpolated(msToSamples(delayMs, sampleRate))
			ch[i] = x*(1-c.Wet) + wet*c.Wet
		}
	}
}

// Flanger is a short modulated delay with feedback, producing the swept comb.
type Flanger struct {
	RateHz   float64 // [0.05, 10]
	DepthMs  float64 // [0.1, 5]
	Feedback float64 // [0, 0.95]
	Wet      float64 // [0, 1]
}

// Apply processes the channels in place.
func (f Flanger) Apply(channels [][]float64, sampleRate float64) {
	maxSamples := int(msToSamples(f.DepthMs, sampleRate)) + 8
	step := 2 * math.Pi * f.RateHz / sampleRate
	for idx, ch := range channels {
		line := filter.NewDelayLine(maxSamples)
		phase := float64(idx) * math.Pi / 2
		for i, x := range ch {
			delayMs := f.DepthMs * (0.5 + 0.5*math.Sin(phase))
			phase += step
			delayed := line.ReadInterpolated(1 + msToSamples(delayMs, sampleRate))
			line.Write(x + delayed*f.Feedback)
			ch[i] = x*(1-f.Wet) + delayed*f.Wet
		}
	}
}

// Phaser sweeps a cascade of allpass notches across the spectrum.
type Phaser struct {
	RateHz   float64 // [0.05, 10]
	Stages   int     // [2, 12], even
	CenterHz float64 // [100, 8000]
	Depth    float64 // [0, 1]
	Feedback float64 // [0, 0.9]
	Wet      float64 // [0, 1]
}

// Apply processes the channels in place.
func (p Phaser) Apply(channels [][]float64, sampleRate float64) {
	step := 2 * math.Pi * p.RateHz / sampleRate
	for idx, ch := range channels {
		stages := make([]*filter.Biquad, p.Stages)
		for s := range stages {
			stages[s] = filter.NewBiquad()
		}
		phase := float64(idx) * math.Pi / 2
		var fbSample float64
		for i, x := range ch {
			// Sweep the allpass center exponentially around CenterHz.
			sweep := p.CenterHz * math.Exp2(p.Depth*2*math.Sin(phase))
			phase += step
			coeffs := filter.Allpass(sweep, 0.7, sampleRate)
			y := x + fbSample*p.Feedback
			for _, s := range stages {
				s.SetCoefficients(coeffs)
				y = s.Process(y)
			}
			fbSample = y
			ch[i] = x*(1-p.Wet) + y*p.Wet
		}
	}
}

// RingModulator multiplies the signal by a sine carrier, cross-faded by Mix.
type RingModulator struct {
	CarrierHz float64 // [1, 10000]
	Mix       float64 // [0, 1]
}

// Apply processes the channels in place. Both channels share the carrier
// phase so the image stays centered.
func (r RingModulator) Apply(channels [][]float64, sampleRate float64) {
	step := 2 * math.Pi * r.CarrierHz / sampleRate
	for _, ch := range channels {
		phase := 0.0
		for i, x := range ch {
			ringed := x * math.Sin(phase)
			phase += step
			ch[i] = x*(1-r.Mix) + ringed*r.Mix
		}
	}
}
