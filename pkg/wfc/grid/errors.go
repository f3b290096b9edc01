package grid

import "errors"

var (
	// ErrNilCatalog indicates New was called without a catalog.
	ErrNilCatalog = errors.New("grid: catalog is nil")
	// ErrOffsetMismatch indicates the catalog was built for other directions
	// than the topology's.
	ErrOffsetMismatch = errors.New("grid: catalog offsets do not match topology")
	// ErrOutOfBounds indicates a coordinate outside the output.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
)
