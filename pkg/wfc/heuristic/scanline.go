package heuristic

import (
	"math/rand/v2"

	"mad-wfc/pkg/wfc"
)

// Scanline picks the first undetermined cell in index order.
type Scanline struct {
	e *wfc.Engine
}

// NewScanline returns a Scanline heuristic.
func NewScanline() *Scanline { return &Scanline{} }

// Initialize binds the heuristic to e.
func (h *Scanline) Initialize(e *wfc.Engine, _ *rand.Rand) { h.e = e }

// Select returns the first undetermined cell.
func (h *Scanline) Select() wfc.Selection {
	first := -1
	sel, done := scan(h.e, func(c int) bool {
		first = c
		return false
	})
	if done {
		return sel
	}
	return wfc.SelectCell(first)
}

// Random picks a uniformly random undetermined cell.
type Random struct {
	e     *wfc.Engine
	r     *rand.Rand
	cells []int
}

// NewRandom returns a Random heuristic.
func NewRandom() *Random { return &Random{} }

// Initialize binds the heuristic to e and r.
func (h *Random) Initialize(e *wfc.Engine, r *rand.Rand) {
	h.e = e
	h.r = r
	h.cells = h.cells[:0]
}

// Select returns a random undetermined cell.
func (h *Random) Select() wfc.Selection {
	h.cells = h.cells[:0]
	sel, done := scan(h.e, func(c int) bool {
		h.cells = append(h.cells, c)
		return true
	})
	if done {
		return sel
	}
	return wfc.SelectCell(h.cells[h.r.IntN(len(h.cells))])
}
