package model

// Patterns is a table of N×N pixel blocks with their frequencies.
type Patterns struct {
	N int
	// Data[p] holds pattern p row-major, N*N values.
	Data    [][]int
	Weights []float64
}

// Len returns the number of patterns.
func (ps *Patterns) Len() int { return len(ps.Data) }

// At returns the pixel of pattern p at (x, y).
func (ps *Patterns) At(p, x, y int) int { return ps.Data[p][y*ps.N+x] }

// Pixel returns the anchor (top-left) pixel of pattern p. It is the value the
// pattern contributes to the output cell it occupies.
func (ps *Patterns) Pixel(p int) int { return ps.Data[p][0] }

// Pixels maps an anchor pixel value to the patterns carrying it.
type Pixels map[int][]int

// NewPixels indexes ps by anchor pixel.
func NewPixels(ps *Patterns) Pixels {
	px := Pixels{}
	for p := range ps.Data {
		v := ps.Pixel(p)
		px[v] = append(px[v], p)
	}
	return px
}

// Patterns returns the patterns anchored on pixel, or nil.
func (px Pixels) Patterns(pixel int) []int { return px[pixel] }

// Catalog is everything the solver needs about a pattern set.
type Catalog struct {
	Patterns *Patterns
	Pixels   Pixels
	// Propagator[d][p] lists the patterns allowed in direction d of p.
	Propagator [][][]int
	// Offsets[d] is the (dx, dy) step of direction d.
	Offsets [][2]int
}

// Weights returns the pattern frequencies.
func (c *Catalog) Weights() []float64 { return c.Patterns.Weights }

func buildPropagator(ps *Patterns, offsets [][2]int, agree func(p, q int, dx, dy int) bool) [][][]int {
	n := ps.Len()
	prop := make([][][]int, len(offsets))
	for d, off := range offsets {
		prop[d] = make([][]int, n)
		for p := 0; p < n; p++ {
			list := make([]int, 0, n)
			for q := 0; q < n; q++ {
				if agree(p, q, off[0], off[1]) {
					list = append(list, q)
				}
			}
			prop[d][p] = list
		}
	}
	return prop
}
