package synth

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Render and its validation pass. All render
// failures wrap one of these, so callers can classify with errors.Is.
var (
	// ErrInvalidParams indicates the parameter record as a whole is unusable.
	ErrInvalidParams = errors.New("invalid render parameters")

	// ErrInvalidSampleRate indicates an unsupported sample rate.
	ErrInvalidSampleRate = errors.New("invalid sample rate")

	// ErrInvalidDuration indicates a non-finite, non-positive, or over-cap duration.
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrMissingSynthesis indicates a layer with no synthesis description.
	ErrMissingSynthesis = errors.New("missing synthesis description")

	// ErrInvalidParameter indicates a named numeric field outside its
	// documented range. Errors carrying field details are of type *RangeError.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// RangeError reports a single numeric field outside its documented range. It
// unwraps to ErrInvalidParameter.
type RangeError struct {
	Field string  // dotted path to the offending field, e.g. "layers[0].volume"
	Value float64 // the offending value
	Min   float64
	Max   float64
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid parameter %s = %v: out of range [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}

// Unwrap lets errors.Is(err, ErrInvalidParameter) match RangeErrors.
func (e *RangeError) Unwrap() error { return ErrInvalidParameter }

// rangeErr is the validation-pass helper constructing a RangeError.
func rangeErr(field string, value, minVal, maxVal float64) error {
	return &RangeError{Field: field, Value: value, Min: minVal, Max: maxVal}
}
