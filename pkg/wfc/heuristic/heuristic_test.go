package heuristic

import (
	"errors"
	"math"
	"testing"

	"mad-wfc/pkg/wfc"
	"mad-wfc/pkg/wfc/topology"
)

func openLine(t *testing.T, cells int, weights []float64, h wfc.Heuristic) *wfc.Engine {
	t.Helper()
	topo, err := topology.NewCartesian2D(cells, 1, 2, false)
	if err != nil {
		t.Fatalf("NewCartesian2D: %v", err)
	}
	prop := make([][][]int, 2)
	for d := range prop {
		prop[d] = make([][]int, len(weights))
		for p := range prop[d] {
			for q := range weights {
				prop[d][p] = append(prop[d][p], q)
			}
		}
	}
	e, err := wfc.New(topo, weights, prop, h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		h, err := ByName(name)
		if err != nil || h == nil {
			t.Fatalf("ByName(%q) = %v, %v", name, h, err)
		}
	}
	if _, err := ByName("annealing"); !errors.Is(err, ErrUnknown) {
		t.Fatalf("ByName error = %v, want ErrUnknown", err)
	}
	if got := Names(); len(got) != 3 || got[0] != "entropy" {
		t.Fatalf("Names = %v", got)
	}
}

func TestLowestEntropyPrefersConstrainedCell(t *testing.T) {
	h := NewLowestEntropy()
	e := openLine(t, 3, []float64{1, 1, 1}, h)
	e.Start(1)
	e.Ban(2, 0)

	if got := h.Entropy(2); math.Abs(got-math.Log(2)) > 1e-9 {
		t.Fatalf("Entropy(2) = %v, want ln 2", got)
	}
	if got := h.Entropy(0); math.Abs(got-math.Log(3)) > 1e-9 {
		t.Fatalf("Entropy(0) = %v, want ln 3", got)
	}
	if sel := h.Select(); sel.Kind != wfc.SelectionCell || sel.Cell != 2 {
		t.Fatalf("Select = %+v, want cell 2", sel)
	}
}

func TestLowestEntropyWeighted(t *testing.T) {
	h := NewLowestEntropy()
	e := openLine(t, 1, []float64{1, 3}, h)
	e.Start(1)
	want := math.Log(4) - 3*math.Log(3)/4
	if got := h.Entropy(0); math.Abs(got-want) > 1e-9 {
		t.Fatalf("Entropy = %v, want %v", got, want)
	}
}

func TestLowestEntropyResetsOnClear(t *testing.T) {
	h := NewLowestEntropy()
	e := openLine(t, 2, []float64{1, 1}, h)
	e.Start(1)
	e.Ban(0, 1)
	e.Clear()
	if got := h.Entropy(0); math.Abs(got-math.Log(2)) > 1e-9 {
		t.Fatalf("Entropy after Clear = %v", got)
	}
}

func TestSelectDoneAndNone(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			h, _ := ByName(name)
			e := openLine(t, 2, []float64{1, 1}, h)
			e.Start(3)
			e.ForceObserve(0, 0)
			e.ForceObserve(1, 1)
			if sel := h.Select(); sel.Kind != wfc.SelectionDone {
				t.Fatalf("Select on determined wave = %+v", sel)
			}

			e.Start(3)
			e.Ban(1, 0)
			e.Ban(1, 1)
			if sel := h.Select(); sel.Kind != wfc.SelectionNone {
				t.Fatalf("Select with contradiction = %+v", sel)
			}
		})
	}
}

func TestScanlineOrder(t *testing.T) {
	h := NewScanline()
	e := openLine(t, 4, []float64{1, 1}, h)
	e.Start(1)
	e.ForceObserve(0, 0)
	if sel := h.Select(); sel.Cell != 1 {
		t.Fatalf("Select = %+v, want cell 1", sel)
	}
}

func TestRandomSelectsUndetermined(t *testing.T) {
	h := NewRandom()
	e := openLine(t, 5, []float64{1, 1}, h)
	e.Start(9)
	e.ForceObserve(1, 0)
	e.ForceObserve(3, 0)
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		sel := h.Select()
		if sel.Kind != wfc.SelectionCell || e.Remaining(sel.Cell) < 2 {
			t.Fatalf("Select = %+v", sel)
		}
		seen[sel.Cell] = true
	}
	if len(seen) != 3 {
		t.Fatalf("visited %v, want cells 0, 2 and 4", seen)
	}
}

func TestHeuristicsSolveUnconstrained(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			h, _ := ByName(name)
			e := openLine(t, 16, []float64{1, 2, 3}, h)
			if got := e.Run(42, 0, 0); got != wfc.OutcomeSolved {
				t.Fatalf("Run = %v (%v)", got, e.Err())
			}
		})
	}
}

func TestLowestEntropySkewedWeights(t *testing.T) {
	h := NewLowestEntropy()
	e := openLine(t, 2, []float64{1e20, 1, 1}, h)
	e.Start(1)
	e.Ban(0, 0)

	if got := h.Entropy(0); math.Abs(got-math.Log(2)) > 1e-9 {
		t.Fatalf("Entropy(0) = %v, want ln 2", got)
	}
	e.Ban(0, 1)
	if got := h.Entropy(0); got != 0 {
		t.Fatalf("Entropy of determined cell = %v, want 0", got)
	}
	if got := h.Entropy(1); got > 1e-6 {
		t.Fatalf("Entropy(1) = %v, want near 0 for a dominant pattern", got)
	}
}
