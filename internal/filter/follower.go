package filter

import "math"

// Follower is an asymmetric exponential peak envelope follower. Attack and
// release each map a time constant τ to a one-pole coefficient
// exp(-1/(τ·sampleRate)).
type Follower struct {
	attackCoeff  float64
	releaseCoeff float64
	env          float64
}

// NewFollower builds a follower from attack/release time constants in
// seconds.
func NewFollower(attackSec, releaseSec, sampleRate float64) *Follower {
	return &Follower{
		attackCoeff:  followerCoeff(attackSec, sampleRate),
		releaseCoeff: followerCoeff(releaseSec, sampleRate),
	}
}

func followerCoeff(tau, sampleRate float64) float64 {
	if tau <= 0 {
		return 0
	}
	return math.Exp(-1 / (tau * sampleRate))
}

// Process feeds one rectified input level and returns the updated envelope.
func (f *Follower) Process(level float64) float64 {
	level = math.Abs(level)
	coeff := f.releaseCoeff
	if level > f.env {
		coeff = f.attackCoeff
	}
	f.env = level + coeff*(f.env-level)
	return f.env
}

// Env returns the current envelope value.
func (f *Follower) Env() float64 { return f.env }
