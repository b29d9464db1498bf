// Package filter provides the stateful building blocks shared by the
// synthesizers and the effect chain: a second-order IIR section with
// swappable coefficients, standard coefficient design equations, fractional
// delay lines, and an asymmetric envelope follower.
package filter

import "math"

// Coefficients holds one normalized biquad section (a0 divided out).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Biquad is a Direct Form I second-order IIR filter. Coefficients may be
// replaced between samples without clearing the delay registers, which keeps
// time-varying sweeps click-free.
type Biquad struct {
	c      Coefficients
	x1, x2 float64
	y1, y2 float64
}

// NewBiquad returns a unity-gain passthrough section.
func NewBiquad() *Biquad {
	return &Biquad{c: Coefficients{B0: 1}}
}

// SetCoefficients replaces the active coefficients, preserving delay state.
func (b *Biquad) SetCoefficients(c Coefficients) { b.c = c }

// Reset clears the delay registers.
func (b *Biquad) Reset() {
	b.x1, b.x2, b.y1, b.y2 = 0, 0, 0, 0
}

// Process filters one sample in place through the section.
func (b *Biquad) Process(x float64) float64 {
	y := b.c.B0*x + b.c.B1*b.x1 + b.c.B2*b.x2 - b.c.A1*b.y1 - b.c.A2*b.y2
	b.x2, b.x1 = b.x1, x
	b.y2, b.y1 = b.y1, y
	return y
}

// ProcessBuffer filters a whole buffer in place.
func (b *Biquad) ProcessBuffer(buf []float64) {
	for i, x := range buf {
		buf[i] = b.Process(x)
	}
}

// minCutoffHz keeps filter design away from the ω=0 singularity.
const minCutoffHz = 1.0

func designPrelude(cutoffHz, q, sampleRate float64) (sinw, cosw, alpha float64) {
	if cutoffHz < minCutoffHz {
		cutoffHz = minCutoffHz
	}
	nyquist := sampleRate / 2
	if cutoffHz > nyquist*0.99 {
		cutoffHz = nyquist * 0.99
	}
	w := 2 * math.Pi * cutoffHz / sampleRate
	sinw = math.Sin(w)
	cosw = math.Cos(w)
	alpha = sinw / (2 * q)
	return sinw, cosw, alpha
}

// Lowpass designs a lowpass section (RBJ cookbook form).
func Lowpass(cutoffHz, q, sampleRate float64) Coefficients {
	_, cosw, alpha := designPrelude(cutoffHz, q, sampleRate)
	a0 := 1 + alpha
	return Coefficients{
		B0: (1 - cosw) / 2 / a0,
		B1: (1 - cosw) / a0,
		B2: (1 - cosw) / 2 / a0,
		A1: -2 * cosw / a0,
		A2: (1 - alpha) / a0,
	}
}

// Highpass designs a highpass section.
func Highpass(cutoffHz, q, sampleRate float64) Coefficients {
	_, cosw, alpha := designPrelude(cutoffHz, q, sampleRate)
	a0 := 1 + alpha
	return Coefficients{
		B0: (1 + cosw) / 2 / a0,
		B1: -(1 + cosw) / a0,
		B2: (1 + cosw) / 2 / a0,
		A1: -2 * cosw / a0,
		A2: (1 - alpha) / a0,
	}
}

// Bandpass designs a constant-skirt bandpass section (peak gain = Q).
func Bandpass(centerHz, q, sampleRate float64) Coefficients {
	sinw, cosw, alpha := designPrelude(centerHz, q, sampleRate)
	a0 := 1 + alpha
	return Coefficients{
		B0: sinw / 2 / a0,
		B2: -sinw / 2 / a0,
		A1: -2 * cosw / a0,
		A2: (1 - alpha) / a0,
	}
}

// Peaking designs a peaking-EQ section with gain in dB at the center
// frequency. Used by the formant bank and the parametric EQ.
func Peaking(centerHz, q, gainDB, sampleRate float64) Coefficients {
	_, cosw, alpha := designPrelude(centerHz, q, sampleRate)
	a := math.Pow(10, gainDB/40)
	a0 := 1 + alpha/a
	return Coefficients{
		B0: (1 + alpha*a) / a0,
		B1: -2 * cosw / a0,
		B2: (1 - alpha*a) / a0,
		A1: -2 * cosw / a0,
		A2: (1 - alpha/a) / a0,
	}
}

// Allpass designs a first-order-style biquad allpass used by phaser stages.
func Allpass(centerHz, q, sampleRate float64) Coefficients {
	_, cosw, alpha := designPrelude(centerHz, q, sampleRate)
	a0 := 1 + alpha
	return Coefficients{
		B0: (1 - alpha) / a0,
		B1: -2 * cosw / a0,
		B2: (1 + alpha) / a0,
		A1: -2 * cosw / a0,
		A2: (1 - alpha) / a0,
	}
}

// LowShelf designs a low-shelf section for the parametric EQ.
func LowShelf(cutoffHz, gainDB, sampleRate float64) Coefficients {
	a := math.Pow(10, gainDB/40)
	sinw, cosw, _ := designPrelude(cutoffHz, math.Sqrt2/2, sampleRate)
	beta := 2 * math.Sqrt(a) * sinw / 2
	a0 := (a + 1) + (a-1)*cosw + beta
	return Coefficients{
		B0: a * ((a + 1) - (a-1)*cosw + beta) / a0,
		B1: 2 * a * ((a - 1) - (a+1)*cosw) / a0,
		B2: a * ((a + 1) - (a-1)*cosw - beta) / a0,
		A1: -2 * ((a - 1) + (a+1)*cosw) / a0,
		A2: ((a + 1) + (a-1)*cosw - beta) / a0,
	}
}

// HighShelf designs a high-shelf section for the parametric EQ.
func HighShelf(cutoffHz, gainDB, sampleRate float64) Coefficients {
	a := math.Pow(10, gainDB/40)
	sinw, cosw, _ := designPrelude(cutoffHz, math.Sqrt2/2, sampleRate)
	beta := 2 * math.Sqrt(a) * sinw / 2
	a0 := (a + 1) - (a-1)*cosw + beta
	return Coefficients{
		B0: a * ((a + 1) + (a-1)*cosw + beta) / a0,
		B1: -2 * a * ((a - 1) + (a+1)*cosw) / a0,
		B2: a * ((a + 1) + (a-1)*cosw - beta) / a0,
		A1: 2 * ((a - 1) - (a+1)*cosw) / a0,
		A2: ((a + 1) - (a-1)*cosw - beta) / a0,
	}
}
