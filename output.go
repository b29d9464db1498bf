package synth

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// MixerOutput is the rendered sample sequence: one channel for mono, two for
// stereo. Buffers are owned by the output; callers may mutate them freely
// after Render returns.
type MixerOutput struct {
	channels [][]float64
}

func newMixerOutput(channels [][]float64) *MixerOutput {
	return &MixerOutput{channels: channels}
}

// IsStereo reports whether the output carries two channels.
func (o *MixerOutput) IsStereo() bool { return len(o.channels) == stereoChannels }

// Len returns the per-channel sample count.
func (o *MixerOutput) Len() int {
	if len(o.channels) == 0 {
		return 0
	}
	return len(o.channels[0])
}

// Channels returns the underlying channel buffers (1 or 2).
func (o *MixerOutput) Channels() [][]float64 { return o.channels }

// Mono returns the single channel for mono output, or the left channel.
func (o *MixerOutput) Mono() []float64 {
	if len(o.channels) == 0 {
		return nil
	}
	return o.channels[0]
}

// Left returns the left channel.
func (o *MixerOutput) Left() []float64 { return o.Mono() }

// Right returns the right channel, or the mono channel for mono output.
func (o *MixerOutput) Right() []float64 {
	if o.IsStereo() {
		return o.channels[1]
	}
	return o.Mono()
}

// Interleaved returns the samples in interleaved LRLR order (or the mono
// channel copied as-is).
func (o *MixerOutput) Interleaved() []float64 {
	if !o.IsStereo() {
		out := make([]float64, o.Len())
		copy(out, o.Mono())
		return out
	}
	out := make([]float64, o.Len()*stereoChannels)
	f64.Interleave2(out, o.channels[0], o.channels[1])
	return out
}

// InterleavedFloat32 returns the interleaved samples converted to float32,
// for callers feeding 32-bit float pipelines.
func (o *MixerOutput) InterleavedFloat32() []float32 {
	interleaved := o.Interleaved()
	out := make([]float32, len(interleaved))
	for i, v := range interleaved {
		out[i] = float32(v)
	}
	return out
}

// PCMInt returns interleaved samples quantized to signed integers of the
// given bit depth (16 or 24), clipped to full scale. Used by container
// writers.
func (o *MixerOutput) PCMInt(bitDepth int) []int {
	scale := float64(int(1)<<(bitDepth-1)) - 1
	interleaved := o.Interleaved()
	out := make([]int, len(interleaved))
	for i, v := range interleaved {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		out[i] = int(math.Round(v * scale))
	}
	return out
}

// Result is a completed render: the output buffer plus optional metadata.
type Result struct {
	Output *MixerOutput

	// BaseFrequencyHz is the first tonal layer's fundamental, for
	// instrument-style consumers. Zero when no layer is tonal.
	BaseFrequencyHz float64

	// LoopStart is the requested loop point sample index, derived from
	// the first layer's envelope timing. -1 when not requested.
	LoopStart int

	// PeakBeforeNormalize is the mix bus peak observed before
	// normalization, for diagnostics.
	PeakBeforeNormalize float64
}
