package scene

import "errors"

var (
	// ErrSelector indicates a selector outside the supported subset.
	ErrSelector = errors.New("scene: bad selector")

	// ErrParse indicates a scene file that could not be decoded.
	ErrParse = errors.New("scene: parse error")
)
