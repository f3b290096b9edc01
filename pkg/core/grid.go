package core

import (
	"errors"
	"fmt"
)

// ErrRaggedRows is returned when sample rows have differing lengths.
var ErrRaggedRows = errors.New("core: all rows must have the same length")

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// ByteGridFromRows builds a grid from equally sized rows of values.
func ByteGridFromRows(rows [][]uint8) (*ByteGrid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("core: empty grid")
	}
	g := NewByteGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.W {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), g.W, ErrRaggedRows)
		}
		copy(g.data[y*g.W:], row)
	}
	return g, nil
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value at (x, y).
func (g *ByteGrid) At(x, y int) uint8 { return g.data[g.Index(x, y)] }

// Set stores v at (x, y).
func (g *ByteGrid) Set(x, y int, v uint8) { g.data[g.Index(x, y)] = v }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *ByteGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
