// Package envelope generates ADSR gain curves used for per-layer amplitude
// shaping and for modulation envelopes (FM index, vocoder bands).
package envelope

import "math"

// ADSR holds the four envelope parameters. Times are in seconds, sustain is
// a level in [0, 1].
type ADSR struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// trackerReleaseFraction anchors the release segment for material with no
// note-off, holding sustain through the first three quarters of the buffer.
const trackerReleaseFraction = 0.75

// Curve renders the envelope over n samples with the release segment
// anchored at the buffer tail. Segment boundaries are rounded to sample
// indices and never go negative; segments that would overrun the buffer are
// truncated in attack→decay→release order.
func (e ADSR) Curve(n int, sampleRate float64) []float64 {
	return e.curve(n, sampleRate, -1)
}

// TrackerCurve renders the envelope with the release segment starting at a
// fixed fraction of the total length instead of at the tail, the convention
// for tracker-style material with no note-off event.
func (e ADSR) TrackerCurve(n int, sampleRate float64) []float64 {
	return e.curve(n, sampleRate, int(math.Round(trackerReleaseFraction*float64(n))))
}

func (e ADSR) curve(n int, sampleRate float64, releaseStart int) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	attackEnd := clampSeg(int(math.Round(e.Attack*sampleRate)), n)
	decayEnd := clampSeg(attackEnd+int(math.Round(e.Decay*sampleRate)), n)
	releaseLen := clampSeg(int(math.Round(e.Release*sampleRate)), n)
	if releaseStart < 0 {
		releaseStart = n - releaseLen
	}
	if releaseStart < decayEnd {
		releaseStart = decayEnd
	}
	releaseLen = n - releaseStart

	for i := range out {
		switch {
		case i < attackEnd:
			out[i] = float64(i) / float64(attackEnd)
		case i < decayEnd:
			t := float64(i-attackEnd) / float64(decayEnd-attackEnd)
			out[i] = 1 + t*(e.Sustain-1)
		case i < releaseStart:
			out[i] = e.Sustain
		default:
			if releaseLen <= 0 {
				out[i] = e.Sustain
				continue
			}
			t := float64(i-releaseStart) / float64(releaseLen)
			out[i] = e.Sustain * (1 - t)
		}
	}
	return out
}

func clampSeg(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}

// SustainStart returns the sample index where the sustain segment begins
// (end of attack+decay), used to derive instrument loop points.
func (e ADSR) SustainStart(n int, sampleRate float64) int {
	attackEnd := clampSeg(int(math.Round(e.Attack*sampleRate)), n)
	return clampSeg(attackEnd+int(math.Round(e.Decay*sampleRate)), n)
}

// Apply multiplies buf in place by the envelope curve.
func (e ADSR) Apply(buf []float64, sampleRate float64) {
	curve := e.Curve(len(buf), sampleRate)
	for i := range buf {
		buf[i] *= curve[i]
	}
}
