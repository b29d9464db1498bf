package lfo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonefab/go-audio-synth/internal/osc"
)

// TestLfo_UnipolarRange verifies every waveform emits values in [0, 1].
func TestLfo_UnipolarRange(t *testing.T) {
	for _, w := range []osc.Waveform{osc.Sine, osc.Square, osc.Sawtooth, osc.Triangle} {
		l := New(w, 5, 0, 44100)
		for range 44100 {
			v := l.Next()
			require.GreaterOrEqual(t, v, 0.0, "waveform %d", w)
			require.LessOrEqual(t, v, 1.0, "waveform %d", w)
		}
	}
}

// TestLfo_SineStartsAtMidpoint verifies a zero-phase sine LFO starts at 0.5,
// the unipolar image of sin(0).
func TestLfo_SineStartsAtMidpoint(t *testing.T) {
	l := New(osc.Sine, 1, 0, 44100)
	assert.InDelta(t, 0.5, l.Next(), 1e-12)
}

// TestLfo_InitialPhase verifies the initial phase offsets the curve.
func TestLfo_InitialPhase(t *testing.T) {
	l := New(osc.Sine, 1, math.Pi/2, 44100)
	assert.InDelta(t, 1.0, l.Next(), 1e-12, "quarter-cycle offset starts at the peak")
}

// TestLfo_CurveMatchesNext verifies Curve is just n successive Next calls.
func TestLfo_CurveMatchesNext(t *testing.T) {
	a := New(osc.Triangle, 3, 0.4, 44100)
	b := New(osc.Triangle, 3, 0.4, 44100)
	curve := a.Curve(256)
	for i, v := range curve {
		require.Equal(t, b.Next(), v, "sample %d", i)
	}
}

// TestApply_Pitch verifies the pitch target scales exponentially in
// semitones: full positive deflection at amount=12, depth=1 doubles the
// frequency.
func TestApply_Pitch(t *testing.T) {
	assert.InDelta(t, 880.0, Apply(TargetPitch, 440, 1.0, 1, 12), 1e-9)
	assert.InDelta(t, 220.0, Apply(TargetPitch, 440, 0.0, 1, 12), 1e-9)
	assert.InDelta(t, 440.0, Apply(TargetPitch, 440, 0.5, 1, 12), 1e-9)
}

// TestApply_Volume verifies the volume target is a unipolar tremolo: at
// amount=1, depth=1 the gain swings between 0 and the base.
func TestApply_Volume(t *testing.T) {
	assert.InDelta(t, 0.0, Apply(TargetVolume, 0.8, 0.0, 1, 1), 1e-12)
	assert.InDelta(t, 0.8, Apply(TargetVolume, 0.8, 1.0, 1, 1), 1e-12)
	assert.InDelta(t, 0.4, Apply(TargetVolume, 0.8, 0.5, 1, 1), 1e-12)
	// Zero depth leaves the base untouched.
	assert.InDelta(t, 0.8, Apply(TargetVolume, 0.8, 0.0, 0, 1), 1e-12)
}

// TestApply_FilterCutoff verifies the cutoff target offsets linearly in Hz
// and never drops below the audible floor.
func TestApply_FilterCutoff(t *testing.T) {
	assert.InDelta(t, 1500.0, Apply(TargetFilterCutoff, 1000, 1.0, 1, 500), 1e-9)
	assert.InDelta(t, 500.0, Apply(TargetFilterCutoff, 1000, 0.0, 1, 500), 1e-9)
	assert.Equal(t, MinCutoffHz, Apply(TargetFilterCutoff, 100, 0.0, 1, 5000))
}

// TestApply_Pan verifies the pan target clamps to [-1, 1].
func TestApply_Pan(t *testing.T) {
	assert.InDelta(t, 0.5, Apply(TargetPan, 0, 0.75, 1, 1), 1e-12)
	assert.Equal(t, 1.0, Apply(TargetPan, 0.8, 1.0, 1, 1))
	assert.Equal(t, -1.0, Apply(TargetPan, -0.8, 0.0, 1, 1))
}

// TestApply_PulseWidth verifies the duty target clamps to its usable band.
func TestApply_PulseWidth(t *testing.T) {
	assert.Equal(t, MaxDuty, Apply(TargetPulseWidth, 0.5, 1.0, 1, 1))
	assert.Equal(t, MinDuty, Apply(TargetPulseWidth, 0.5, 0.0, 1, 1))
	assert.InDelta(t, 0.5, Apply(TargetPulseWidth, 0.5, 0.5, 1, 1), 1e-12)
}

// TestApply_FmIndex verifies the index target never goes negative.
func TestApply_FmIndex(t *testing.T) {
	assert.InDelta(t, 3.0, Apply(TargetFmIndex, 2, 1.0, 1, 1), 1e-12)
	assert.Equal(t, 0.0, Apply(TargetFmIndex, 0.5, 0.0, 1, 1))
}

// TestApply_EffectTargets verifies the effect-parameter targets clamp to
// their physical ranges.
func TestApply_EffectTargets(t *testing.T) {
	assert.Equal(t, MaxGrainSizeMs, Apply(TargetGrainSize, 490, 1.0, 1, 100))
	assert.Equal(t, MinGrainSizeMs, Apply(TargetGrainSize, 15, 0.0, 1, 100))
	assert.Equal(t, MinGrainDensity, Apply(TargetGrainDensity, 2, 0.0, 1, 50))
	assert.Equal(t, MaxDelayTimeMs, Apply(TargetDelayTime, 1990, 1.0, 1, 100))
	assert.Equal(t, 1.0, Apply(TargetReverbSize, 0.9, 1.0, 1, 1))
	assert.Equal(t, 0.0, Apply(TargetReverbSize, 0.1, 0.0, 1, 1))
	assert.Equal(t, MinDrive, Apply(TargetDistortionDrive, 2, 0.0, 1, 50))
}

// TestApply_ZeroDepthIsIdentity verifies depth zero returns the base for
// every target, using a base inside each target's physical range.
func TestApply_ZeroDepthIsIdentity(t *testing.T) {
	bases := map[Target]float64{
		TargetPitch:           440,
		TargetVolume:          0.8,
		TargetFilterCutoff:    1000,
		TargetPan:             0.3,
		TargetPulseWidth:      0.5,
		TargetFmIndex:         2,
		TargetGrainSize:       80,
		TargetGrainDensity:    20,
		TargetDelayTime:       250,
		TargetReverbSize:      0.6,
		TargetDistortionDrive: 5,
	}
	for target, base := range bases {
		for _, v := range []float64{0, 0.25, 0.5, 1} {
			got := Apply(target, base, v, 0, 1)
			require.InDelta(t, base, got, 1e-12, "target %d at v=%v", target, v)
		}
	}
}
