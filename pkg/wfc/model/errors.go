package model

import "errors"

var (
	// ErrEmptySample indicates an overlapping sample without cells.
	ErrEmptySample = errors.New("model: sample is empty")
	// ErrBadPatternSize indicates N is below 1 or larger than a non-periodic sample.
	ErrBadPatternSize = errors.New("model: pattern size out of range")
	// ErrBadSymmetry indicates a symmetry count outside 1..8.
	ErrBadSymmetry = errors.New("model: symmetry must be between 1 and 8")
	// ErrNoOffsets indicates a catalog requested without any directions.
	ErrNoOffsets = errors.New("model: at least one direction offset is required")
	// ErrNoTiles indicates a rule set without tiles.
	ErrNoTiles = errors.New("model: rules define no tiles")
	// ErrDuplicateTile indicates two tiles sharing a name.
	ErrDuplicateTile = errors.New("model: duplicate tile name")
	// ErrUnknownTile indicates an adjacency rule naming an undefined tile.
	ErrUnknownTile = errors.New("model: adjacency references an unknown tile")
)
