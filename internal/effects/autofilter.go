package effects

import (
	"github.com/tonefab/go-audio-synth/internal/filter"
)

// Auto-filter constants.
const (
	autoFilterQ     = 1.5
	autoFilterMaxHz = 20000.0
)

// AutoFilter is an envelope-followed lowpass: an asymmetric exponential
// follower tracks the per-sample peak max(|L|,|R|) and drives the cutoff
// from BaseCutoffHz toward the top of the audio band. Each channel runs its
// own fixed-Q lowpass whose coefficients are recomputed every sample.
type AutoFilter struct {
	BaseCutoffHz float64 // [20, 20000]
	Sensitivity  float64 // [0, 1]
	Depth        float64 // [0, 1]
	AttackSec    float64 // (0, 1]
	ReleaseSec   float64 // (0, 4]
}

// Apply processes the channels in place.
func (a AutoFilter) Apply(channels [][]float64, sampleRate float64) {
	n := len(channels[0])
	follower := filter.NewFollower(a.AttackSec, a.ReleaseSec, sampleRate)
	filters := make([]*filter.Biquad, len(channels))
	for c := range filters {
		filters[c] = filter.NewBiquad()
	}

	span := autoFilterMaxHz - a.BaseCutoffHz
	for i := 0; i < n; i++ {
		peak := 0.0
		for _, ch := range channels {
			if v := ch[i]; v >= 0 && v > peak {
				peak = v
			} else if v < 0 && -v > peak {
				peak = -v
			}
		}
		env := follower.Process(peak)
		cutoff := a.BaseCutoffHz + env*a.Sensitivity*a.Depth*span
		coeffs := filter.Lowpass(cutoff, autoFilterQ, sampleRate)
		for c, ch := range channels {
			filters[c].SetCoefficients(coeffs)
			ch[i] = filters[c].Process(ch[i])
		}
	}
}
