package model

import (
	"fmt"
	"strconv"
	"strings"

	"mad-wfc/pkg/core"
)

// OverlappingOptions controls pattern extraction.
type OverlappingOptions struct {
	// N is the side of the square patterns.
	N int
	// PeriodicInput wraps the sample at its edges during extraction.
	PeriodicInput bool
	// Symmetry is how many of the eight rotations and reflections of every
	// sampled block are added, 1 meaning the block as-is.
	Symmetry int
}

// Overlapping extracts every N×N block of sample, counts duplicates as
// weight, and links two patterns in direction (dx, dy) when they agree on
// every pixel they share at that offset.
func Overlapping(sample *core.ByteGrid, offsets [][2]int, opts OverlappingOptions) (*Catalog, error) {
	if sample == nil || len(sample.Cells()) == 0 {
		return nil, ErrEmptySample
	}
	if len(offsets) == 0 {
		return nil, ErrNoOffsets
	}
	n := opts.N
	if n < 1 || (!opts.PeriodicInput && (n > sample.W || n > sample.H)) {
		return nil, fmt.Errorf("N=%d for %dx%d sample: %w", n, sample.W, sample.H, ErrBadPatternSize)
	}
	sym := opts.Symmetry
	if sym == 0 {
		sym = 1
	}
	if sym < 1 || sym > 8 {
		return nil, fmt.Errorf("symmetry %d: %w", opts.Symmetry, ErrBadSymmetry)
	}

	xmax, ymax := sample.W, sample.H
	if !opts.PeriodicInput {
		xmax, ymax = sample.W-n+1, sample.H-n+1
	}

	ps := &Patterns{N: n}
	index := map[string]int{}
	for y := 0; y < ymax; y++ {
		for x := 0; x < xmax; x++ {
			block := make([]int, n*n)
			for dy := 0; dy < n; dy++ {
				for dx := 0; dx < n; dx++ {
					sx, sy := sample.Wrap(x+dx, y+dy)
					block[dy*n+dx] = int(sample.At(sx, sy))
				}
			}
			for _, v := range variants(block, n)[:sym] {
				k := key(v)
				if p, ok := index[k]; ok {
					ps.Weights[p]++
					continue
				}
				index[k] = len(ps.Data)
				ps.Data = append(ps.Data, v)
				ps.Weights = append(ps.Weights, 1)
			}
		}
	}

	agree := func(p, q, dx, dy int) bool {
		a, b := ps.Data[p], ps.Data[q]
		for y := max(0, dy); y < min(n, n+dy); y++ {
			for x := max(0, dx); x < min(n, n+dx); x++ {
				if a[y*n+x] != b[(y-dy)*n+(x-dx)] {
					return false
				}
			}
		}
		return true
	}
	return &Catalog{
		Patterns:   ps,
		Pixels:     NewPixels(ps),
		Propagator: buildPropagator(ps, offsets, agree),
		Offsets:    append([][2]int(nil), offsets...),
	}, nil
}

// variants returns the block, its reflection, and the rotations of both,
// interleaved so that any prefix is a meaningful symmetry group.
func variants(block []int, n int) [][]int {
	out := make([][]int, 8)
	out[0] = block
	out[1] = reflect(block, n)
	for i := 2; i < 8; i += 2 {
		out[i] = rotate(out[i-2], n)
		out[i+1] = reflect(out[i], n)
	}
	return out
}

func rotate(b []int, n int) []int {
	out := make([]int, len(b))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			out[y*n+x] = b[x*n+(n-1-y)]
		}
	}
	return out
}

func reflect(b []int, n int) []int {
	out := make([]int, len(b))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			out[y*n+x] = b[y*n+(n-1-x)]
		}
	}
	return out
}

func key(b []int) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
