// Package testutil provides reusable test helper functions for renderer tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance     = 1e-10
	PassthroughTolerance = 1e-10
	CarrierTolerance     = 1e-3
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertIdentical verifies that two sample sequences are byte-identical
// (exact float equality, not approximate).
func AssertIdentical(t *testing.T, expected, actual []float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Equal(t, len(expected), len(actual), "length mismatch") {
		return false
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return assert.Fail(t, "sequences differ",
				"at index %d: %v != %v", i, expected[i], actual[i])
		}
	}
	return true
}

// AssertWithinDelta verifies element-wise closeness of two sequences.
func AssertWithinDelta(t *testing.T, expected, actual []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Equal(t, len(expected), len(actual), "length mismatch") {
		return false
	}
	for i := range expected {
		if math.Abs(expected[i]-actual[i]) > tolerance {
			return assert.Fail(t, "sequences differ",
				"at index %d: |%v - %v| > %v", i, expected[i], actual[i], tolerance)
		}
	}
	return true
}

// Energy returns the sum of squares over a window of a sample sequence.
func Energy(s []float64, start, end int) float64 {
	if end > len(s) {
		end = len(s)
	}
	var sum float64
	for _, v := range s[start:end] {
		sum += v * v
	}
	return sum
}

// Peak returns the maximum absolute value in the sequence.
func Peak(s []float64) float64 {
	var peak float64
	for _, v := range s {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// SineWave generates a test sine at the given frequency and level.
func SineWave(n int, freqHz, level, sampleRate float64) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = level * math.Sin(step*float64(i))
	}
	return out
}
