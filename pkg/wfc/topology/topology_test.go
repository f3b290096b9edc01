package topology

import (
	"errors"
	"testing"

	"mad-wfc/pkg/wfc"
)

func collect(t wfc.Topology, cell int) map[int]int {
	out := map[int]int{}
	for nb := range t.Neighbors(cell) {
		out[nb.Direction] = nb.Cell
	}
	return out
}

func TestNewCartesian2DErrors(t *testing.T) {
	cases := []struct {
		name   string
		w, h   int
		degree int
		err    error
	}{
		{"ZeroWidth", 0, 3, 4, ErrBadSize},
		{"NegativeHeight", 3, -1, 4, ErrBadSize},
		{"Degree3", 3, 3, 3, ErrBadDegree},
		{"Degree6", 3, 3, 6, ErrBadDegree},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCartesian2D(tc.w, tc.h, tc.degree, false)
			if !errors.Is(err, tc.err) {
				t.Fatalf("err = %v, want %v", err, tc.err)
			}
		})
	}
}

func TestOppositeDirectionsCancel(t *testing.T) {
	for _, degree := range []int{2, 4, 8} {
		topo, err := NewCartesian2D(3, 3, degree, false)
		if err != nil {
			t.Fatalf("NewCartesian2D: %v", err)
		}
		for d := 0; d < degree; d++ {
			o := (d + degree/2) % degree
			dx, dy := topo.Offset(d)
			ox, oy := topo.Offset(o)
			if dx+ox != 0 || dy+oy != 0 {
				t.Fatalf("degree %d: directions %d and %d are not opposite", degree, d, o)
			}
		}
	}
}

func TestCartesian2DOpenBoundary(t *testing.T) {
	topo, _ := NewCartesian2D(3, 2, 4, false)
	got := collect(topo, topo.Index(0, 0))
	if len(got) != 2 {
		t.Fatalf("corner has %d neighbors, want 2: %v", len(got), got)
	}
	if got[2] != topo.Index(0, 1) || got[3] != topo.Index(1, 0) {
		t.Fatalf("unexpected corner neighbors %v", got)
	}
}

func TestCartesian2DPeriodic(t *testing.T) {
	topo, _ := NewCartesian2D(3, 2, 4, true)
	got := collect(topo, topo.Index(0, 0))
	if len(got) != 4 {
		t.Fatalf("periodic cell has %d neighbors, want 4", len(got))
	}
	if got[1] != topo.Index(2, 0) {
		t.Fatalf("west of (0,0) = %d, want %d", got[1], topo.Index(2, 0))
	}
	if got[0] != topo.Index(0, 1) {
		t.Fatalf("north of (0,0) = %d, want %d", got[0], topo.Index(0, 1))
	}
}

func TestCartesian2DDegreeTwo(t *testing.T) {
	topo, _ := NewCartesian2D(2, 1, 2, false)
	if got := collect(topo, 0); len(got) != 1 || got[1] != 1 {
		t.Fatalf("cell 0 neighbors = %v, want {1:1}", got)
	}
	if got := collect(topo, 1); len(got) != 1 || got[0] != 0 {
		t.Fatalf("cell 1 neighbors = %v, want {0:0}", got)
	}
}

func TestNeighborsStopsEarly(t *testing.T) {
	topo, _ := NewCartesian2D(3, 3, 8, true)
	n := 0
	for range topo.Neighbors(4) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("iteration did not stop, n = %d", n)
	}
}

func TestCartesian3D(t *testing.T) {
	topo, err := NewCartesian3D(2, 2, 2, false)
	if err != nil {
		t.Fatalf("NewCartesian3D: %v", err)
	}
	if topo.TotalSize() != 8 || topo.MaxDegree() != 6 {
		t.Fatalf("size %d degree %d", topo.TotalSize(), topo.MaxDegree())
	}
	x, y, z := topo.Coords(topo.Index(1, 0, 1))
	if x != 1 || y != 0 || z != 1 {
		t.Fatalf("Coords round trip = (%d,%d,%d)", x, y, z)
	}
	got := collect(topo, topo.Index(0, 0, 0))
	if len(got) != 3 {
		t.Fatalf("corner has %d neighbors, want 3", len(got))
	}
	if got[5] != topo.Index(0, 0, 1) {
		t.Fatalf("+Z neighbor = %d", got[5])
	}

	if _, err := NewCartesian3D(1, 0, 1, false); !errors.Is(err, ErrBadSize) {
		t.Fatalf("err = %v, want ErrBadSize", err)
	}
}
