package wfc

import (
	"fmt"
	"math"
	"math/rand/v2"

	"mad-wfc/pkg/core"
)

type pendingBan struct {
	cell    int
	pattern int
}

// Engine runs Wave Function Collapse over a Topology.
type Engine struct {
	topology  Topology
	heuristic Heuristic
	weights   []float64

	patterns int
	degree   int
	cells    int

	// allowed[(d*patterns+p)*patterns+q] reports whether q may sit in
	// direction d of p.
	allowed  []bool
	support  []int
	opposite []int

	wave      []bool
	remaining []int
	compat    []int
	stack     []pendingBan
	dist      []float64

	rng       *rand.Rand
	observers []Observer
	err       error
}

// New validates the inputs and allocates an engine.
//
// propagator[d][p] lists the patterns allowed in direction d of pattern p. It
// must have MaxDegree entries, each with len(weights) pattern lists.
func New(t Topology, weights []float64, propagator [][][]int, h Heuristic) (*Engine, error) {
	if t == nil {
		return nil, ErrNilTopology
	}
	if h == nil {
		return nil, ErrNilHeuristic
	}
	n := len(weights)
	if n == 0 {
		return nil, ErrNoPatterns
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("weight %d is %v: %w", i, w, ErrBadWeight)
		}
	}
	cells := t.TotalSize()
	if cells <= 0 {
		return nil, ErrNoCells
	}
	degree := t.MaxDegree()
	if len(propagator) != degree {
		return nil, fmt.Errorf("got %d directions, topology degree is %d: %w", len(propagator), degree, ErrPropagatorShape)
	}

	allowed := make([]bool, degree*n*n)
	support := make([]int, degree*n)
	for d, byPattern := range propagator {
		if len(byPattern) != n {
			return nil, fmt.Errorf("direction %d lists %d patterns, have %d weights: %w", d, len(byPattern), n, ErrWeightsShape)
		}
		for p, list := range byPattern {
			row := allowed[(d*n+p)*n : (d*n+p+1)*n]
			for _, q := range list {
				if q < 0 || q >= n {
					return nil, fmt.Errorf("propagator[%d][%d] contains %d: %w", d, p, q, ErrPatternRange)
				}
				if !row[q] {
					row[q] = true
					support[d*n+p]++
				}
			}
		}
	}

	opposite := oppositeTable(t)
	for d, o := range opposite {
		if o < 0 || o >= degree {
			return nil, fmt.Errorf("opposite(%d) = %d: %w", d, o, ErrDirectionRange)
		}
	}

	e := &Engine{
		topology:  t,
		heuristic: h,
		weights:   append([]float64(nil), weights...),
		patterns:  n,
		degree:    degree,
		cells:     cells,
		allowed:   allowed,
		support:   support,
		opposite:  opposite,
		wave:      make([]bool, cells*n),
		remaining: make([]int, cells),
		compat:    make([]int, cells*n*degree),
		stack:     make([]pendingBan, 0, cells*n),
		dist:      make([]float64, n),
	}
	e.reset()
	return e, nil
}

// Subscribe registers an observer for all subsequent events.
func (e *Engine) Subscribe(o Observer) {
	if o != nil {
		e.observers = append(e.observers, o)
	}
}

// Clear makes every pattern possible again and resets the counters.
//
// The counter of pattern p in direction d starts at the number of patterns
// that accept p from the opposite side.
func (e *Engine) Clear() {
	e.reset()
	e.emit(EventClear, -1, -1)
}

func (e *Engine) reset() {
	n, deg := e.patterns, e.degree
	for c := 0; c < e.cells; c++ {
		for p := 0; p < n; p++ {
			i := c*n + p
			e.wave[i] = true
			for d := 0; d < deg; d++ {
				e.compat[i*deg+d] = e.support[e.opposite[d]*n+p]
			}
		}
		e.remaining[c] = n
	}
	e.stack = e.stack[:0]
	e.err = nil
}

// Ban marks pattern impossible at cell and queues it for propagation.
// It does not cascade; call Propagate for that.
func (e *Engine) Ban(cell, pattern int) BanResult {
	i := cell*e.patterns + pattern
	if !e.wave[i] {
		return BanNoop
	}
	e.wave[i] = false
	for d := 0; d < e.degree; d++ {
		e.compat[i*e.degree+d] = 0
	}
	e.remaining[cell]--
	e.stack = append(e.stack, pendingBan{cell: cell, pattern: pattern})
	e.emit(EventBan, cell, pattern)

	if e.remaining[cell] == 0 {
		return BanContradiction
	}
	return BanOK
}

// Propagate drains the worklist until the wave is arc consistent. It
// returns false if a contradiction occurred.
func (e *Engine) Propagate() bool {
	n, deg := e.patterns, e.degree
	layer := len(e.stack)
	for len(e.stack) > 0 {
		top := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		layer--

		for nb := range e.topology.Neighbors(top.cell) {
			d := nb.Direction
			row := e.allowed[(d*n+top.pattern)*n : (d*n+top.pattern+1)*n]
			for q := 0; q < n; q++ {
				if !e.wave[nb.Cell*n+q] {
					continue
				}
				ci := (nb.Cell*n+q)*deg + d
				if !row[q] && e.compat[ci] != 0 {
					continue
				}
				if e.compat[ci] > 0 {
					e.compat[ci]--
				}
				if e.compat[ci] != 0 {
					continue
				}
				if e.Ban(nb.Cell, q) == BanContradiction {
					e.fail(&ContradictionError{Cell: nb.Cell})
					return false
				}
			}
		}

		if layer == 0 {
			layer = len(e.stack)
			e.emit(EventPropagationStep, -1, -1)
		}
	}
	return true
}

// Observe collapses the cell chosen by the heuristic to one pattern drawn
// from r by weight. It does not propagate.
func (e *Engine) Observe(r *rand.Rand) Status {
	sel := e.heuristic.Select()
	switch sel.Kind {
	case SelectionNone:
		e.fail(ErrNoCandidate)
		return StatusFailure
	case SelectionDone:
		return StatusSuccess
	}

	cell := sel.Cell
	pattern := e.choose(cell, r)
	if pattern < 0 || !e.collapse(cell, pattern) {
		e.fail(&ContradictionError{Cell: cell})
		return StatusFailure
	}
	e.emit(EventObserve, cell, pattern)
	return StatusContinue
}

// ForceObserve pins cell to pattern without consulting the heuristic.
// It reports StatusFailure without changing anything if pattern is already
// impossible at cell. It does not propagate.
func (e *Engine) ForceObserve(cell, pattern int) Status {
	if !e.Possible(cell, pattern) {
		return StatusFailure
	}
	if !e.collapse(cell, pattern) {
		e.fail(&ContradictionError{Cell: cell})
		return StatusFailure
	}
	e.emit(EventObserve, cell, pattern)
	return StatusContinue
}

// Step observes once and propagates the consequences.
func (e *Engine) Step(r *rand.Rand) Status {
	if s := e.Observe(r); s != StatusContinue {
		return s
	}
	if !e.Propagate() {
		return StatusFailure
	}
	e.emit(EventStep, -1, -1)
	return StatusContinue
}

// Start seeds the random source, initializes the heuristic and clears the
// wave. Callers may apply constraints before calling Resume.
func (e *Engine) Start(seed int64) *rand.Rand {
	e.rng = core.NewRNG(seed).Source()
	e.heuristic.Initialize(e, e.rng)
	e.Clear()
	e.emit(EventStart, -1, -1)
	return e.rng
}

// Resume steps until the wave is solved, fails, or stepLimit steps have run.
// A stepLimit of zero or less means no limit.
func (e *Engine) Resume(stepLimit int) Outcome {
	defer e.Finish()
	if e.rng == nil {
		e.err = ErrNotStarted
		return OutcomeFailed
	}
	for i := 0; stepLimit <= 0 || i < stepLimit; i++ {
		switch e.Step(e.rng) {
		case StatusSuccess:
			return OutcomeSolved
		case StatusFailure:
			return OutcomeFailed
		}
	}
	return OutcomeIncomplete
}

// Run performs a complete generation from seed.
//
// backtrackLimit is accepted for API stability; backtracking is not
// implemented and the value is ignored.
func (e *Engine) Run(seed int64, stepLimit, backtrackLimit int) Outcome {
	_ = backtrackLimit
	e.Start(seed)
	return e.Resume(stepLimit)
}

// Fail records err as the cause of failure and notifies observers. Layers
// that find a contradiction outside Propagate report it through Fail.
func (e *Engine) Fail(err error) { e.fail(err) }

// Finish notifies observers that the current run is over. Resume calls it
// before returning; a layer that ends a run without resuming calls it itself.
func (e *Engine) Finish() { e.emit(EventFinish, -1, -1) }

// Err returns the cause of the most recent failure, or nil.
func (e *Engine) Err() error { return e.err }

// Possible reports whether pattern may still appear at cell.
func (e *Engine) Possible(cell, pattern int) bool { return e.wave[cell*e.patterns+pattern] }

// Remaining returns the number of patterns still possible at cell.
func (e *Engine) Remaining(cell int) int { return e.remaining[cell] }

// Wave returns a copy of the possibility row of cell.
func (e *Engine) Wave(cell int) []bool {
	return append([]bool(nil), e.wave[cell*e.patterns:(cell+1)*e.patterns]...)
}

// Snapshot returns a copy of the whole wave, indexed cell*PatternCount()+pattern.
func (e *Engine) Snapshot() []bool { return append([]bool(nil), e.wave...) }

// Counter returns the compatibility counter of pattern at cell in direction.
func (e *Engine) Counter(cell, pattern, direction int) int {
	return e.compat[(cell*e.patterns+pattern)*e.degree+direction]
}

// PatternCount returns the number of patterns.
func (e *Engine) PatternCount() int { return e.patterns }

// Weights returns the pattern weights. The slice must not be modified.
func (e *Engine) Weights() []float64 { return e.weights }

// Topology returns the engine's topology.
func (e *Engine) Topology() Topology { return e.topology }

// Random returns the random source of the current run, or nil before Start.
func (e *Engine) Random() *rand.Rand { return e.rng }

// Pending returns the number of bans not yet propagated.
func (e *Engine) Pending() int { return len(e.stack) }

func (e *Engine) fail(err error) {
	e.err = err
	e.emit(EventFail, -1, -1)
}

// collapse bans every possible pattern at cell other than keep.
func (e *Engine) collapse(cell, keep int) bool {
	base := cell * e.patterns
	for p := 0; p < e.patterns; p++ {
		if p == keep || !e.wave[base+p] {
			continue
		}
		if e.Ban(cell, p) == BanContradiction {
			return false
		}
	}
	return true
}

// choose draws a possible pattern at cell by weight. When every possible
// pattern has zero weight the draw is uniform among them.
func (e *Engine) choose(cell int, r *rand.Rand) int {
	base := cell * e.patterns
	possible := 0
	for p := 0; p < e.patterns; p++ {
		e.dist[p] = 0
		if e.wave[base+p] {
			e.dist[p] = e.weights[p]
			possible++
		}
	}
	if possible == 0 {
		return -1
	}
	if idx := core.WeightedIndex(r, e.dist); idx >= 0 {
		return idx
	}
	k := r.IntN(possible)
	for p := 0; p < e.patterns; p++ {
		if !e.wave[base+p] {
			continue
		}
		if k == 0 {
			return p
		}
		k--
	}
	return -1
}
