package repulse

import "errors"

var (
	// ErrInvalidProfile indicates a profile with a non-positive radius or
	// negative strength/spring coefficients.
	ErrInvalidProfile = errors.New("repulse: invalid repulsion profile")

	// ErrUnknownClass indicates a profile name other than heading or letter.
	ErrUnknownClass = errors.New("repulse: unknown element class")
)
