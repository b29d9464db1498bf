package synthesis

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/tonefab/go-audio-synth/internal/seed"
)

// Spectral freeze frame geometry. The hop is a quarter frame so the Hann
// synthesis windows overlap-add to a near-constant gain.
const (
	defaultFreezeFrame = 2048
	freezeHopDivisor   = 4
)

// SpectralFreeze captures one analysis frame from a tone or noise source,
// transforms it once, and sustains the captured timbre by repeatedly
// inverse-transforming the same spectrum and overlap-adding windowed frames
// at a fixed hop. Output length is independent of the frame size, including
// outputs shorter than one frame.
type SpectralFreeze struct {
	SourceHz  float64 // tone source frequency; 0 selects a noise source
	FrameSize int     // power-of-two analysis frame; 0 selects the default
}

// Render generates n samples, using rng when the source is noise.
func (s SpectralFreeze) Render(n int, sampleRate float64, rng *rand.Rand) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	frameSize := s.FrameSize
	if frameSize <= 0 {
		frameSize = defaultFreezeFrame
	}

	// One analysis frame, Hann windowed, transformed once.
	frame := s.captureFrame(frameSize, sampleRate, rng)
	window.Hann(frame)
	fft := fourier.NewFFT(frameSize)
	spectrum := fft.Coefficients(nil, frame)

	// The same spectrum resynthesized for every hop. gonum's inverse
	// transform is unnormalized, so scale by 1/frameSize.
	grain := fft.Sequence(nil, spectrum)
	scale := 1 / float64(frameSize)
	for i := range grain {
		grain[i] *= scale
	}
	window.Hann(grain)

	hop := frameSize / freezeHopDivisor
	for start := 0; start < n; start += hop {
		for i, v := range grain {
			idx := start + i
			if idx >= n {
				break
			}
			out[idx] += v
		}
	}
	Normalize(out)
	return out
}

func (s SpectralFreeze) captureFrame(frameSize int, sampleRate float64, rng *rand.Rand) []float64 {
	frame := make([]float64, frameSize)
	if s.SourceHz <= 0 {
		for i := range frame {
			frame[i] = seed.Uniform(rng)
		}
		return frame
	}
	step := 2 * math.Pi * s.SourceHz / sampleRate
	for i := range frame {
		frame[i] = math.Sin(step * float64(i))
	}
	return frame
}
