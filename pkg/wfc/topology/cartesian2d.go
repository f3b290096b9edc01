package topology

import (
	"fmt"
	"iter"

	"mad-wfc/pkg/wfc"
)

var (
	offsets2 = [][2]int{{-1, 0}, {1, 0}}
	// N, W, S, E
	offsets4 = [][2]int{{0, -1}, {-1, 0}, {0, 1}, {1, 0}}
	// N, NW, W, SW, S, SE, E, NE
	offsets8 = [][2]int{{0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}}
)

// Cartesian2D is a rectangular grid with 2-, 4- or 8-way adjacency. Cells are
// numbered row-major.
type Cartesian2D struct {
	Width, Height int
	Periodic      bool
	offsets       [][2]int
}

// NewCartesian2D returns a grid topology. Degree 2 links only horizontal
// neighbors. Periodic grids wrap at the edges; others simply have fewer
// neighbors along the border.
func NewCartesian2D(width, height, degree int, periodic bool) (*Cartesian2D, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrBadSize)
	}
	var offs [][2]int
	switch degree {
	case 2:
		offs = offsets2
	case 4:
		offs = offsets4
	case 8:
		offs = offsets8
	default:
		return nil, fmt.Errorf("degree %d: %w", degree, ErrBadDegree)
	}
	return &Cartesian2D{Width: width, Height: height, Periodic: periodic, offsets: offs}, nil
}

// TotalSize returns Width*Height.
func (t *Cartesian2D) TotalSize() int { return t.Width * t.Height }

// MaxDegree returns the number of directions.
func (t *Cartesian2D) MaxDegree() int { return len(t.offsets) }

// Index returns the cell index for (x, y).
func (t *Cartesian2D) Index(x, y int) int { return y*t.Width + x }

// Coords returns the coordinates of cell.
func (t *Cartesian2D) Coords(cell int) (int, int) { return cell % t.Width, cell / t.Width }

// Offset returns the (dx, dy) step of direction d.
func (t *Cartesian2D) Offset(d int) (int, int) { return t.offsets[d][0], t.offsets[d][1] }

// Offsets returns a copy of the direction table.
func (t *Cartesian2D) Offsets() [][2]int { return append([][2]int(nil), t.offsets...) }

// InBounds reports whether (x, y) lies on the grid.
func (t *Cartesian2D) InBounds(x, y int) bool {
	return x >= 0 && x < t.Width && y >= 0 && y < t.Height
}

// Neighbor returns the cell in direction d of cell, if any.
func (t *Cartesian2D) Neighbor(cell, d int) (int, bool) {
	x, y := t.Coords(cell)
	nx, ny := x+t.offsets[d][0], y+t.offsets[d][1]
	if t.Periodic {
		nx = (nx%t.Width + t.Width) % t.Width
		ny = (ny%t.Height + t.Height) % t.Height
	} else if !t.InBounds(nx, ny) {
		return 0, false
	}
	return t.Index(nx, ny), true
}

// Neighbors yields every in-grid neighbor of cell with its direction.
func (t *Cartesian2D) Neighbors(cell int) iter.Seq[wfc.Neighbor] {
	return func(yield func(wfc.Neighbor) bool) {
		for d := range t.offsets {
			n, ok := t.Neighbor(cell, d)
			if !ok {
				continue
			}
			if !yield(wfc.Neighbor{Direction: d, Cell: n}) {
				return
			}
		}
	}
}
