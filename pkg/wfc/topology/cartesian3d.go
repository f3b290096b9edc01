package topology

import (
	"fmt"
	"iter"

	"mad-wfc/pkg/wfc"
)

// -X, -Y, -Z, +X, +Y, +Z
var offsets6 = [][3]int{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Cartesian3D is a box of cells with 6-way adjacency, numbered x-fastest then y then z.
type Cartesian3D struct {
	Width, Height, Depth int
	Periodic             bool
}

// NewCartesian3D returns a 3D grid topology.
func NewCartesian3D(width, height, depth int, periodic bool) (*Cartesian3D, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%dx%dx%d: %w", width, height, depth, ErrBadSize)
	}
	return &Cartesian3D{Width: width, Height: height, Depth: depth, Periodic: periodic}, nil
}

// TotalSize returns Width*Height*Depth.
func (t *Cartesian3D) TotalSize() int { return t.Width * t.Height * t.Depth }

// MaxDegree returns 6.
func (t *Cartesian3D) MaxDegree() int { return len(offsets6) }

// Index returns the cell index for (x, y, z).
func (t *Cartesian3D) Index(x, y, z int) int { return (z*t.Height+y)*t.Width + x }

// Coords returns the coordinates of cell.
func (t *Cartesian3D) Coords(cell int) (int, int, int) {
	x := cell % t.Width
	y := (cell / t.Width) % t.Height
	z := cell / (t.Width * t.Height)
	return x, y, z
}

// Neighbors yields every in-box neighbor of cell with its direction.
func (t *Cartesian3D) Neighbors(cell int) iter.Seq[wfc.Neighbor] {
	return func(yield func(wfc.Neighbor) bool) {
		x, y, z := t.Coords(cell)
		for d, o := range offsets6 {
			nx, ny, nz := x+o[0], y+o[1], z+o[2]
			if t.Periodic {
				nx = wrap(nx, t.Width)
				ny = wrap(ny, t.Height)
				nz = wrap(nz, t.Depth)
			} else if nx < 0 || nx >= t.Width || ny < 0 || ny >= t.Height || nz < 0 || nz >= t.Depth {
				continue
			}
			if !yield(wfc.Neighbor{Direction: d, Cell: t.Index(nx, ny, nz)}) {
				return
			}
		}
	}
}

func wrap(v, n int) int { return (v%n + n) % n }
