package filter

// DelayLine is a circular buffer with an interpolated fractional read,
// used by the Karplus-Strong loop, modulated delays, and the rotary
// speaker's Doppler path.
type DelayLine struct {
	buf      []float64
	writePos int
}

// NewDelayLine returns a delay line holding maxSamples samples of history.
func NewDelayLine(maxSamples int) *DelayLine {
	if maxSamples < 1 {
		maxSamples = 1
	}
	return &DelayLine{buf: make([]float64, maxSamples)}
}

// Len returns the line's capacity in samples.
func (d *DelayLine) Len() int { return len(d.buf) }

// Write pushes a sample and advances the write head.
func (d *DelayLine) Write(x float64) {
	d.buf[d.writePos] = x
	d.writePos++
	if d.writePos >= len(d.buf) {
		d.writePos = 0
	}
}

// Read returns the sample written delaySamples writes ago. The delay is
// clamped to the buffer capacity.
func (d *DelayLine) Read(delaySamples int) float64 {
	n := len(d.buf)
	if delaySamples < 0 {
		delaySamples = 0
	} else if delaySamples >= n {
		delaySamples = n - 1
	}
	pos := d.writePos - 1 - delaySamples
	if pos < 0 {
		pos += n
	}
	return d.buf[pos]
}

// ReadInterpolated returns the linearly interpolated sample at a fractional
// delay, clamped to the buffer capacity.
func (d *DelayLine) ReadInterpolated(delaySamples float64) float64 {
	n := len(d.buf)
	if delaySamples < 0 {
		delaySamples = 0
	}
	max := float64(n - 1)
	if delaySamples > max {
		delaySamples = max
	}
	whole := int(delaySamples)
	frac := delaySamples - float64(whole)
	s0 := d.Read(whole)
	if frac == 0 {
		return s0
	}
	s1 := d.Read(whole + 1)
	return s0 + frac*(s1-s0)
}

// Tap reads the absolute buffer slot i, for algorithms that manage their own
// positions (the Karplus-Strong loop scans the line in place).
func (d *DelayLine) Tap(i int) float64 { return d.buf[i%len(d.buf)] }

// SetTap overwrites the absolute buffer slot i.
func (d *DelayLine) SetTap(i int, x float64) { d.buf[i%len(d.buf)] = x }
