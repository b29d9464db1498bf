// Package mixer combines per-layer sample buffers into the final mono or
// stereo output and normalizes the result to a target peak level.
// Accumulation order is fixed (layers in declaration order, sample index
// ascending) so floating-point summation is reproducible.
package mixer

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// Mixer accumulates layers into one or two channels of fixed length.
type Mixer struct {
	channels   [][]float64
	sampleRate float64
}

// New returns a mixer producing numChannels (1 or 2) channels of n samples.
func New(numChannels, n int, sampleRate float64) *Mixer {
	m := &Mixer{sampleRate: sampleRate}
	m.channels = make([][]float64, numChannels)
	for c := range m.channels {
		m.channels[c] = make([]float64, n)
	}
	return m
}

// Stereo reports whether the mixer has two channels.
func (m *Mixer) Stereo() bool { return len(m.channels) == 2 }

// PanGains returns the constant-power gains for a pan position in [-1, 1]:
// cos/sin over the quarter cycle, so -1/0/+1 route fully-left, equal, and
// fully-right.
func PanGains(pan float64) (left, right float64) {
	angle := (pan + 1) * math.Pi / 4
	return math.Cos(angle), math.Sin(angle)
}

// Add accumulates one layer. delaySamples offsets where the layer starts in
// the mix (clamped to the buffer length). panCurve, when non-nil, supplies a
// per-sample pan position overriding pan.
func (m *Mixer) Add(layer []float64, volume, pan float64, delaySamples int, panCurve []float64) {
	n := len(m.channels[0])
	if delaySamples < 0 {
		delaySamples = 0
	}
	if delaySamples > n {
		delaySamples = n
	}

	if !m.Stereo() {
		out := m.channels[0]
		for i, v := range layer {
			idx := i + delaySamples
			if idx >= n {
				break
			}
			out[idx] += v * volume
		}
		return
	}

	left, right := m.channels[0], m.channels[1]
	gl, gr := PanGains(pan)
	for i, v := range layer {
		idx := i + delaySamples
		if idx >= n {
			break
		}
		if panCurve != nil {
			gl, gr = PanGains(panCurve[i])
		}
		left[idx] += v * volume * gl
		right[idx] += v * volume * gr
	}
}

// Channels returns the accumulated channel buffers.
func (m *Mixer) Channels() [][]float64 { return m.channels }

// Normalize scales all channels together so the overall peak magnitude sits
// at targetDBFS. Silent output is left untouched. It returns the peak level
// observed before scaling.
func (m *Mixer) Normalize(targetDBFS float64) float64 {
	var peak float64
	for _, ch := range m.channels {
		for _, v := range ch {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
	}
	if peak == 0 {
		return 0
	}
	target := math.Pow(10, targetDBFS/20)
	scale := target / peak
	for _, ch := range m.channels {
		f64.Scale(ch, ch, scale)
	}
	return peak
}
