package core

import "errors"

var (
	// ErrInvalidParameter reports a parameter outside its valid range, such as a
	// non-positive sample rate, duration or sensor spacing, or filter corners
	// outside (0, Nyquist).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNumericEdgeCase reports input that has no meaningful numeric result:
	// empty or mismatched sequences, or a frequency outside the positive
	// frequency range of the transform.
	ErrNumericEdgeCase = errors.New("numeric edge case")
)
