// Package grid layers pixel and pattern constraints addressed by (x, y) on top
// of a wfc.Engine running over a Cartesian2D topology.
package grid

import (
	"fmt"
	"slices"

	"mad-wfc/pkg/wfc"
	"mad-wfc/pkg/wfc/heuristic"
	"mad-wfc/pkg/wfc/model"
	"mad-wfc/pkg/wfc/topology"
)

// Contradicted is the ConstructOutput value of a cell with no possible pattern.
const Contradicted = -1

// Constraint restricts a freshly started run.
type Constraint func(a *Algorithm) error

// Algorithm is an Engine bound to a rectangular output and a pattern catalog.
type Algorithm struct {
	*wfc.Engine

	grid        *topology.Cartesian2D
	catalog     *model.Catalog
	constraints []Constraint
}

// New builds the engine for catalog over t. A nil heuristic selects
// heuristic.LowestEntropy.
func New(t *topology.Cartesian2D, catalog *model.Catalog, h wfc.Heuristic) (*Algorithm, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	if catalog.Offsets != nil && !slices.Equal(catalog.Offsets, t.Offsets()) {
		return nil, fmt.Errorf("catalog %v, topology %v: %w", catalog.Offsets, t.Offsets(), ErrOffsetMismatch)
	}
	if h == nil {
		h = heuristic.NewLowestEntropy()
	}
	e, err := wfc.New(t, catalog.Weights(), catalog.Propagator, h)
	if err != nil {
		return nil, err
	}
	return &Algorithm{Engine: e, grid: t, catalog: catalog}, nil
}

// Grid returns the output topology.
func (a *Algorithm) Grid() *topology.Cartesian2D { return a.grid }

// Catalog returns the pattern catalog.
func (a *Algorithm) Catalog() *model.Catalog { return a.catalog }

// Constrain queues c to be applied after every Start.
func (a *Algorithm) Constrain(c Constraint) {
	if c != nil {
		a.constraints = append(a.constraints, c)
	}
}

// Start starts the engine and applies the queued constraints in order. A
// failing constraint is reported to observers as a failure of the run.
func (a *Algorithm) Start(seed int64) error {
	a.Engine.Start(seed)
	for i, c := range a.constraints {
		if err := c(a); err != nil {
			if a.Err() == nil {
				a.Fail(err)
			}
			return fmt.Errorf("constraint %d: %w", i, err)
		}
	}
	return nil
}

// Run starts from seed and steps until solved, failed, or stepLimit steps
// have run. A failing constraint ends the run before the first step.
func (a *Algorithm) Run(seed int64, stepLimit int) (wfc.Outcome, error) {
	if err := a.Start(seed); err != nil {
		a.Finish()
		return wfc.OutcomeFailed, err
	}
	out := a.Engine.Resume(stepLimit)
	if out == wfc.OutcomeFailed {
		return out, a.Engine.Err()
	}
	return out, nil
}

// SetPixel bans every pattern at (x, y) not anchored on pixel.
func (a *Algorithm) SetPixel(x, y, pixel int) error {
	return a.SetPixels(x, y, []int{pixel})
}

// SetPixels bans every pattern at (x, y) anchored on none of pixels.
func (a *Algorithm) SetPixels(x, y int, pixels []int) error {
	return a.SetMultiplePixels([][2]int{{x, y}}, pixels)
}

// SetMultiplePixels applies SetPixels to every coordinate, propagating once.
func (a *Algorithm) SetMultiplePixels(coords [][2]int, pixels []int) error {
	keep := make([]bool, a.PatternCount())
	for _, px := range pixels {
		for _, p := range a.catalog.Pixels.Patterns(px) {
			keep[p] = true
		}
	}
	return a.restrict(coords, func(p int) bool { return !keep[p] })
}

// SetPatterns bans every pattern at (x, y) except patterns.
func (a *Algorithm) SetPatterns(x, y int, patterns []int) error {
	return a.SetMultiplePatterns([][2]int{{x, y}}, patterns)
}

// BanPatterns bans patterns at (x, y).
func (a *Algorithm) BanPatterns(x, y int, patterns []int) error {
	return a.BanMultiplePatterns([][2]int{{x, y}}, patterns)
}

// SetMultiplePatterns applies SetPatterns to every coordinate, propagating once.
func (a *Algorithm) SetMultiplePatterns(coords [][2]int, patterns []int) error {
	keep, err := a.patternSet(patterns)
	if err != nil {
		return err
	}
	return a.restrict(coords, func(p int) bool { return !keep[p] })
}

// BanMultiplePatterns applies BanPatterns to every coordinate, propagating once.
func (a *Algorithm) BanMultiplePatterns(coords [][2]int, patterns []int) error {
	ban, err := a.patternSet(patterns)
	if err != nil {
		return err
	}
	return a.restrict(coords, func(p int) bool { return ban[p] })
}

// ConstructOutput renders the wave row-major. A determined cell yields its
// pattern's anchor pixel, an undetermined one the integer mean of the
// candidates' anchor pixels, and an empty one Contradicted.
func (a *Algorithm) ConstructOutput() []int {
	out := make([]int, a.grid.TotalSize())
	n := a.PatternCount()
	for c := range out {
		sum, count := 0, 0
		for p := 0; p < n; p++ {
			if a.Possible(c, p) {
				sum += a.catalog.Patterns.Pixel(p)
				count++
			}
		}
		if count == 0 {
			out[c] = Contradicted
			continue
		}
		out[c] = sum / count
	}
	return out
}

func (a *Algorithm) patternSet(patterns []int) ([]bool, error) {
	set := make([]bool, a.PatternCount())
	for _, p := range patterns {
		if p < 0 || p >= len(set) {
			return nil, fmt.Errorf("pattern %d: %w", p, wfc.ErrPatternRange)
		}
		set[p] = true
	}
	return set, nil
}

func (a *Algorithm) restrict(coords [][2]int, banned func(p int) bool) error {
	cells := make([]int, len(coords))
	for i, xy := range coords {
		if !a.grid.InBounds(xy[0], xy[1]) {
			return fmt.Errorf("(%d, %d): %w", xy[0], xy[1], ErrOutOfBounds)
		}
		cells[i] = a.grid.Index(xy[0], xy[1])
	}
	n := a.PatternCount()
	for _, c := range cells {
		for p := 0; p < n; p++ {
			if banned(p) && a.Ban(c, p) == wfc.BanContradiction {
				err := &wfc.ContradictionError{Cell: c}
				a.Fail(err)
				return err
			}
		}
	}
	if !a.Propagate() {
		return a.Err()
	}
	return nil
}
