package topology

import "errors"

var (
	// ErrBadSize indicates a non-positive grid dimension.
	ErrBadSize = errors.New("topology: dimensions must be positive")
	// ErrBadDegree indicates an unsupported neighbor count.
	ErrBadDegree = errors.New("topology: degree must be 2, 4 or 8")
)
