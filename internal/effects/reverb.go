package effects

import "github.com/tonefab/go-audio-synth/internal/lfo"

// Freeverb-style reverb: eight parallel feedback combs with one-pole damping
// per channel into four serial allpasses, tunings scaled from the 44.1kHz
// reference, right channel offset for stereo spread.

const (
	reverbCombs      = 8
	reverbAllpasses  = 4
	reverbFixedGain  = 0.015
	reverbScaleRoom  = 0.28
	reverbOffsetRoom = 0.7
	reverbScaleDamp  = 0.4
	reverbScaleWet   = 3.0
	reverbSpread     = 23
	allpassFeedback  = 0.5
	reverbRefRate    = 44100.0
)

var combTuning = [reverbCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
var allpassTuning = [reverbAllpasses]int{556, 441, 341, 225}

// comb is a feedback comb filter with one-pole lowpass damping in its
// feedback path.
type comb struct {
	buf      []float64
	pos      int
	feedback float64
	damp     float64
	store    float64
}

func newComb(size int, feedback, damp float64) *comb {
	if size < 1 {
		size = 1
	}
	return &comb{buf: make([]float64, size), feedback: feedback, damp: damp}
}

func (c *comb) process(x float64) float64 {
	out := c.buf[c.pos]
	c.store = out*(1-c.damp) + c.store*c.damp
	c.buf[c.pos] = x + c.store*c.feedback
	c.pos++
	if c.pos >= len(c.buf) {
		c.pos = 0
	}
	return out
}

// allpass is the Schroeder allpass section used after the comb bank.
type allpass struct {
	buf []float64
	pos int
}

func newAllpass(size int) *allpass {
	if size < 1 {
		size = 1
	}
	return &allpass{buf: make([]float64, size)}
}

func (a *allpass) process(x float64) float64 {
	buffered := a.buf[a.pos]
	out := buffered - x
	a.buf[a.pos] = x + buffered*allpassFeedback
	a.pos++
	if a.pos >= len(a.buf) {
		a.pos = 0
	}
	return out
}

// Reverb holds the validated reverb parameters.
type Reverb struct {
	RoomSize float64 // [0, 1]
	Damping  float64 // [0, 1]
	Wet      float64 // [0, 1]
	Dry      float64 // [0, 1]
	Width    float64 // [0, 1]
	SizeMod  *Mod    // optional LFO on RoomSize
}

type reverbChannel struct {
	combs     [reverbCombs]*comb
	allpasses [reverbAllpasses]*allpass
}

func newReverbChannel(sampleRate float64, offset int, feedback, damp float64) *reverbChannel {
	scale := sampleRate / reverbRefRate
	ch := &reverbChannel{}
	for i := range ch.combs {
		size := int(float64(combTuning[i]+offset) * scale)
		ch.combs[i] = newComb(size, feedback, damp)
	}
	for i := range ch.allpasses {
		size := int(float64(allpassTuning[i]+offset) * scale)
		ch.allpasses[i] = newAllpass(size)
	}
	return ch
}

func (ch *reverbChannel) process(x float64) float64 {
	var out float64
	for _, c := range ch.combs {
		out += c.process(x)
	}
	for _, a := range ch.allpasses {
		out = a.process(out)
	}
	return out
}

func (ch *reverbChannel) setFeedback(fb float64) {
	for _, c := range ch.combs {
		c.feedback = fb
	}
}

// Apply runs the reverb over the channels in place. Mono input uses a single
// comb/allpass bank; stereo adds the +23 sample right-channel offset and
// splits the wet signal into same-channel and cross-channel components by
// Width.
func (r Reverb) Apply(channels [][]float64, sampleRate float64) {
	n := len(channels[0])
	feedback := r.RoomSize*reverbScaleRoom + reverbOffsetRoom
	damp := r.Damping * reverbScaleDamp

	wet := r.Wet * reverbScaleWet
	wet1 := wet * (r.Width/2 + 0.5)
	wet2 := wet * ((1 - r.Width) / 2)

	// Reverb-size modulation moves the comb feedback per sample.
	var fbCurve []float64
	if sizes := r.SizeMod.curve(lfo.TargetReverbSize, r.RoomSize, sampleRate, n); sizes != nil {
		fbCurve = sizes
		for i, s := range sizes {
			fbCurve[i] = s*reverbScaleRoom + reverbOffsetRoom
		}
	}

	if len(channels) == 1 {
		bank := newReverbChannel(sampleRate, 0, feedback, damp)
		buf := channels[0]
		for i, x := range buf {
			if fbCurve != nil {
				bank.setFeedback(fbCurve[i])
			}
			w := bank.process(x * reverbFixedGain)
			buf[i] = x*r.Dry + w*(wet1+wet2)
		}
		return
	}

	left, right := channels[0], channels[1]
	bankL := newReverbChannel(sampleRate, 0, feedback, damp)
	bankR := newReverbChannel(sampleRate, reverbSpread, feedback, damp)
	for i := range left {
		if fbCurve != nil {
			bankL.setFeedback(fbCurve[i])
			bankR.setFeedback(fbCurve[i])
		}
		in := (left[i] + right[i]) * reverbFixedGain
		wl := bankL.process(in)
		wr := bankR.process(in)
		outL := left[i]*r.Dry + wl*wet1 + wr*wet2
		outR := right[i]*r.Dry + wr*wet1 + wl*wet2
		left[i], right[i] = outL, outR
	}
}
