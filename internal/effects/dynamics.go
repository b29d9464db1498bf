package effects

import (
	"math"

	"github.com/tonefab/go-audio-synth/internal/filter"
)

// Compressor reduces gain above a threshold with smoothed attack/release.
// Channels are linked through a shared detector so the image does not shift.
type Compressor struct {
	ThresholdDB float64 // [-60, 0]
	Ratio       float64 // [1, 20]
	AttackSec   float64 // (0, 1]
	ReleaseSec  float64 // (0, 4]
	MakeupDB    float64 // [0, 24]
}

// Apply processes the channels in place.
func (c Compressor) Apply(channels [][]float64, sampleRate float64) {
	n := len(channels[0])
	det := filter.NewFollower(c.AttackSec, c.ReleaseSec, sampleRate)
	threshold := dbToLinear(c.ThresholdDB)
	makeup := dbToLinear(c.MakeupDB)
	for i := 0; i < n; i++ {
		peak := linkedPeak(channels, i)
		env := det.Process(peak)
		gain := 1.0
		if env > threshold {
			// Gain so the over-threshold excess is divided by Ratio.
			compressed := threshold * math.Pow(env/threshold, 1/c.Ratio)
			gain = compressed / env
		}
		for _, ch := range channels {
			ch[i] *= gain * makeup
		}
	}
}

// Limiter is a hard-knee peak limiter with instant attack and smoothed
// release.
type Limiter struct {
	CeilingDB  float64 // [-20, 0]
	ReleaseSec float64 // (0, 4]
}

// Apply processes the channels in place.
func (l Limiter) Apply(channels [][]float64, sampleRate float64) {
	n := len(channels[0])
	ceiling := dbToLinear(l.CeilingDB)
	releaseCoeff := math.Exp(-1 / (l.ReleaseSec * sampleRate))
	gain := 1.0
	for i := 0; i < n; i++ {
		peak := linkedPeak(channels, i)
		target := 1.0
		if peak*gain > ceiling && peak > 0 {
			target = ceiling / peak
		}
		if target < gain {
			gain = target // instant attack
		} else {
			gain = target + releaseCoeff*(gain-target)
		}
		for _, ch := range channels {
			ch[i] *= gain
		}
	}
}

// TruePeakLimiter limits against inter-sample peaks estimated by 4x linear
// oversampling of neighboring samples, then applies the same gain law as the
// plain limiter.
type TruePeakLimiter struct {
	CeilingDB  float64 // [-20, 0]
	ReleaseSec float64 // (0, 4]
}

// Apply processes the channels in place.
func (t TruePeakLimiter) Apply(channels [][]float64, sampleRate float64) {
	n := len(channels[0])
	ceiling := dbToLinear(t.CeilingDB)
	releaseCoeff := math.Exp(-1 / (t.ReleaseSec * sampleRate))
	gain := 1.0
	for i := 0; i < n; i++ {
		var peak float64
		for _, ch := range channels {
			cur := ch[i]
			next := cur
			if i+1 < n {
				next = ch[i+1]
			}
			for k := 0; k < 4; k++ {
				v := math.Abs(cur + (next-cur)*float64(k)/4)
				if v > peak {
					peak = v
				}
			}
		}
		target := 1.0
		if peak*gain > ceiling && peak > 0 {
			target = ceiling / peak
		}
		if target < gain {
			gain = target
		} else {
			gain = target + releaseCoeff*(gain-target)
		}
		for _, ch := range channels {
			ch[i] *= gain
		}
	}
}

// GateExpander attenuates signal below a threshold: a gate at high ratios,
// a downward expander at gentle ones.
type GateExpander struct {
	ThresholdDB float64 // [-80, 0]
	Ratio       float64 // [1, 20]; applied below threshold
	AttackSec   float64 // (0, 1]
	ReleaseSec  float64 // (0, 4]
}

// Apply processes the channels in place.
func (g GateExpander) Apply(channels [][]float64, sampleRate float64) {
	n := len(channels[0])
	det := filter.NewFollower(g.AttackSec, g.ReleaseSec, sampleRate)
	threshold := dbToLinear(g.ThresholdDB)
	for i := 0; i < n; i++ {
		env := det.Process(linkedPeak(channels, i))
		gain := 1.0
		if env < threshold && env > 0 {
			// Expand the below-threshold shortfall by Ratio.
			expanded := threshold * math.Pow(env/threshold, g.Ratio)
			gain = expanded / env
		}
		for _, ch := range channels {
			ch[i] *= gain
		}
	}
}

// TransientShaper rebalances attack and sustain by comparing a fast and a
// slow envelope follower on the linked peak.
type TransientShaper struct {
	Attack  float64 // attack emphasis, [-1, 1]
	Sustain float64 // sustain emphasis, [-1, 1]
}

// Transient detector time constants.
const (
	transientFastSec = 0.001
	transientSlowSec = 0.05
)

// Apply processes the channels in place.
func (t TransientShaper) Apply(channels [][]float64, sampleRate float64) {
	n := len(channels[0])
	fast := filter.NewFollower(transientFastSec, transientSlowSec, sampleRate)
	slow := filter.NewFollower(transientSlowSec, transientSlowSec*4, sampleRate)
	for i := 0; i < n; i++ {
		peak := linkedPeak(channels, i)
		fe := fast.Process(peak)
		se := slow.Process(peak)
		// fe > se during attacks, fe < se in the sustain tail.
		diff := fe - se
		gain := 1.0
		if diff > 0 {
			gain += t.Attack * diff
		} else {
			gain -= t.Sustain * diff
		}
		if gain < 0 {
			gain = 0
		}
		for _, ch := range channels {
			ch[i] *= gain
		}
	}
}

// linkedPeak returns max(|ch[i]|) across channels.
func linkedPeak(channels [][]float64, i int) float64 {
	var peak float64
	for _, ch := range channels {
		if a := math.Abs(ch[i]); a > peak {
			peak = a
		}
	}
	return peak
}
