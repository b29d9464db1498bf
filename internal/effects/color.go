package effects

import (
	"math"

	"github.com/tonefab/go-audio-synth/internal/filter"
)

// Bitcrush degrades the signal by bit-depth quantization and sample-rate
// decimation (zero-order hold).
type Bitcrush struct {
	Bits           float64 // [1, 16]
	DownsampleRate float64 // effective sample rate in Hz, [100, 48000]
}

// Apply processes the channels in place.
func (b Bitcrush) Apply(channels [][]float64, sampleRate float64) {
	levels := math.Exp2(b.Bits) / 2
	step := b.DownsampleRate / sampleRate
	for _, ch := range channels {
		var acc float64 = 1 // trigger a fresh hold on the first sample
		var held float64
		for i, x := range ch {
			if acc >= 1 {
				acc -= 1
				held = math.Round(x*levels) / levels
			}
			acc += step
			ch[i] = held
		}
	}
}

// StereoWidener adjusts the stereo image via mid/side rebalancing. Width 1
// is unity; 0 collapses to mono; 2 doubles the side level. Mono input is
// returned unchanged.
type StereoWidener struct {
	Width float64 // [0, 2]
}

// Apply processes the channels in place.
func (s StereoWidener) Apply(channels [][]float64) {
	if len(channels) < 2 {
		return
	}
	left, right := channels[0], channels[1]
	for i := range left {
		mid := (left[i] + right[i]) / 2
		side := (left[i] - right[i]) / 2 * s.Width
		left[i] = mid + side
		right[i] = mid - side
	}
}

// CabinetSim approximates a speaker cabinet with a fixed bandpass stack:
// a low cut, a presence peak, and a steep top-end rolloff.
type CabinetSim struct {
	LowCutHz   float64 // [20, 400]
	HighCutHz  float64 // [2000, 12000]
	PresenceDB float64 // [-12, 12] peak around 3 kHz
}

// Apply processes the channels in place.
func (c CabinetSim) Apply(channels [][]float64, sampleRate float64) {
	for _, ch := range channels {
		low := filter.NewBiquad()
		low.SetCoefficients(filter.Highpass(c.LowCutHz, 0.7, sampleRate))
		presence := filter.NewBiquad()
		presence.SetCoefficients(filter.Peaking(3000, 1.2, c.PresenceDB, sampleRate))
		high1 := filter.NewBiquad()
		high1.SetCoefficients(filter.Lowpass(c.HighCutHz, 0.7, sampleRate))
		high2 := filter.NewBiquad()
		high2.SetCoefficients(filter.Lowpass(c.HighCutHz, 0.7, sampleRate))
		for i, x := range ch {
			y := low.Process(x)
			y = presence.Process(y)
			y = high1.Process(y)
			ch[i] = high2.Process(y)
		}
	}
}

// EqBand is one parametric EQ band.
type EqBand struct {
	FrequencyHz float64 // [20, 20000]
	Q           float64 // [0.1, 18]
	GainDB      float64 // [-24, 24]
}

// ParametricEq applies up to four peaking bands plus optional shelves.
type ParametricEq struct {
	Bands       []EqBand
	LowShelfDB  float64 // [-24, 24]; 0 disables
	LowShelfHz  float64
	HighShelfDB float64 // [-24, 24]; 0 disables
	HighShelfHz float64
}

// Apply processes the channels in place.
func (p ParametricEq) Apply(channels [][]float64, sampleRate float64) {
	for _, ch := range channels {
		var sections []*filter.Biquad
		if p.LowShelfDB != 0 {
			s := filter.NewBiquad()
			s.SetCoefficients(filter.LowShelf(p.LowShelfHz, p.LowShelfDB, sampleRate))
			sections = append(sections, s)
		}
		for _, band := range p.Bands {
			s := filter.NewBiquad()
			s.SetCoefficients(filter.Peaking(band.FrequencyHz, band.Q, band.GainDB, sampleRate))
			sections = append(sections, s)
		}
		if p.HighShelfDB != 0 {
			s := filter.NewBiquad()
			s.SetCoefficients(filter.HighShelf(p.HighShelfHz, p.HighShelfDB, sampleRate))
			sections = append(sections, s)
		}
		for i, x := range ch {
			y := x
			for _, s := range sections {
				y = s.Process(y)
			}
			ch[i] = y
		}
	}
}
