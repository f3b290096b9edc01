package wfc

import "math/rand/v2"

// SelectionKind distinguishes the three answers a Heuristic can give.
type SelectionKind uint8

const (
	// SelectionCell names a concrete undetermined cell to observe.
	SelectionCell SelectionKind = iota
	// SelectionDone means every cell is determined.
	SelectionDone
	// SelectionNone means no cell can be observed because one is contradicted.
	SelectionNone
)

// Selection is the result of Heuristic.Select.
type Selection struct {
	Kind SelectionKind
	Cell int
}

// SelectCell returns a selection of the given cell.
func SelectCell(cell int) Selection { return Selection{Kind: SelectionCell, Cell: cell} }

// SelectDone returns the "fully determined" selection.
func SelectDone() Selection { return Selection{Kind: SelectionDone, Cell: -1} }

// SelectNone returns the "nothing observable" selection.
func SelectNone() Selection { return Selection{Kind: SelectionNone, Cell: -1} }

// Heuristic decides which cell the engine observes next.
//
// Initialize is called once per run, before the wave is cleared. A heuristic
// that keeps incremental state can implement Observer; the engine delivers
// every event to it before any subscribed observer.
type Heuristic interface {
	Initialize(e *Engine, r *rand.Rand)
	Select() Selection
}
