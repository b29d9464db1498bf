package osc

// polyBLEP computes the two-sample polynomial band-limited step correction
// for a discontinuity at phase t (cycles, [0,1)) with per-sample increment dt.
func polyBLEP(t, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	switch {
	case t < dt:
		x := t / dt
		return x + x - x*x - 1
	case t > 1-dt:
		x := (t - 1) / dt
		return x*x + x + x + 1
	default:
		return 0
	}
}

// SawtoothBLEP evaluates a band-limited sawtooth at phase (radians) given the
// per-sample phase increment in cycles.
func SawtoothBLEP(phase, incr float64) float64 {
	t := wrap(phase) / TwoPi
	return 2*t - 1 - polyBLEP(t, incr)
}

// SquareBLEP evaluates a band-limited square at phase, correcting both the
// rising edge at 0 and the falling edge at the half cycle.
func SquareBLEP(phase, incr float64) float64 {
	return PulseBLEP(phase, incr, 0.5)
}

// PulseBLEP evaluates a band-limited pulse wave with the given duty cycle.
func PulseBLEP(phase, incr, duty float64) float64 {
	t := wrap(phase) / TwoPi
	var v float64 = -1
	if t < duty {
		v = 1
	}
	v += polyBLEP(t, incr)
	// Falling edge sits at the duty point; shift it to the cycle origin.
	td := t - duty
	if td < 0 {
		td += 1
	}
	v -= polyBLEP(td, incr)
	return v
}

// SampleBLEP evaluates the band-limited variant of w where one exists and
// falls back to the naive shape otherwise (sine and triangle have no hard
// discontinuities worth correcting at audio rates).
func SampleBLEP(w Waveform, phase, incr float64) float64 {
	switch w {
	case Square:
		return SquareBLEP(phase, incr)
	case Sawtooth:
		return SawtoothBLEP(phase, incr)
	default:
		return Sample(w, phase)
	}
}
