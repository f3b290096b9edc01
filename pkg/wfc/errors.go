package wfc

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine construction and runs.
var (
	// ErrNilTopology indicates New was called without a topology.
	ErrNilTopology = errors.New("wfc: topology is nil")
	// ErrNilHeuristic indicates New was called without a heuristic.
	ErrNilHeuristic = errors.New("wfc: heuristic is nil")
	// ErrNoCells indicates the topology has no cells.
	ErrNoCells = errors.New("wfc: topology has no cells")
	// ErrNoPatterns indicates an empty weight table.
	ErrNoPatterns = errors.New("wfc: at least one pattern is required")
	// ErrBadWeight indicates a negative, NaN or infinite pattern weight.
	ErrBadWeight = errors.New("wfc: weights must be finite and non-negative")
	// ErrPropagatorShape indicates the propagator does not have one entry per direction.
	ErrPropagatorShape = errors.New("wfc: propagator must have one entry per direction")
	// ErrWeightsShape indicates a propagator direction does not cover every weighted pattern.
	ErrWeightsShape = errors.New("wfc: propagator and weights disagree on pattern count")
	// ErrPatternRange indicates a propagator entry names a pattern that does not exist.
	ErrPatternRange = errors.New("wfc: propagator references an unknown pattern")
	// ErrDirectionRange indicates a topology reported an invalid opposite direction.
	ErrDirectionRange = errors.New("wfc: opposite direction out of range")

	// ErrContradiction indicates a cell was left without any possible pattern.
	ErrContradiction = errors.New("wfc: contradiction")
	// ErrNoCandidate indicates the heuristic found no cell to observe because
	// a contradiction already exists.
	ErrNoCandidate = errors.New("wfc: heuristic found no observable cell")
	// ErrNotStarted indicates Resume was called before Start or Run.
	ErrNotStarted = errors.New("wfc: engine has not been started")
)

// ContradictionError reports the cell that ran out of patterns.
type ContradictionError struct {
	Cell int
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("wfc: contradiction at cell %d", e.Cell)
}

// Is makes errors.Is(err, ErrContradiction) hold for a ContradictionError.
func (e *ContradictionError) Is(target error) bool { return target == ErrContradiction }
