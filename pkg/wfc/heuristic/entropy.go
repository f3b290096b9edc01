package heuristic

import (
	"math"
	"math/rand/v2"

	"mad-wfc/pkg/wfc"
)

const (
	noiseScale = 1e-6
	// A cell whose running weight sum drops below this fraction of the full
	// sum is re-summed from its wave, since the subtractions have cancelled
	// most of its significant digits.
	resumBelow = 1e-6
)

// LowestEntropy picks the undetermined cell with the smallest Shannon entropy
// of its remaining pattern weights. Ties are broken by a small random noise
// term. Entropy sums are maintained incrementally from ban events.
type LowestEntropy struct {
	e       *wfc.Engine
	r       *rand.Rand
	weights []float64
	wlogw   []float64

	totalW   float64
	sumW     []float64
	sumWLogW []float64
}

// NewLowestEntropy returns an uninitialized LowestEntropy heuristic.
func NewLowestEntropy() *LowestEntropy { return &LowestEntropy{} }

// Initialize binds the heuristic to e for one run.
func (h *LowestEntropy) Initialize(e *wfc.Engine, r *rand.Rand) {
	h.e = e
	h.r = r
	h.weights = e.Weights()
	h.wlogw = make([]float64, len(h.weights))
	for i, w := range h.weights {
		if w > 0 {
			h.wlogw[i] = w * math.Log(w)
		}
	}
	total := e.Topology().TotalSize()
	h.sumW = make([]float64, total)
	h.sumWLogW = make([]float64, total)
	h.reset()
}

func (h *LowestEntropy) reset() {
	var sw, swl float64
	for i, w := range h.weights {
		sw += w
		swl += h.wlogw[i]
	}
	h.totalW = sw
	for c := range h.sumW {
		h.sumW[c] = sw
		h.sumWLogW[c] = swl
	}
}

func (h *LowestEntropy) resum(cell int) {
	var sw, swl float64
	for p, w := range h.weights {
		if h.e.Possible(cell, p) {
			sw += w
			swl += h.wlogw[p]
		}
	}
	h.sumW[cell] = sw
	h.sumWLogW[cell] = swl
}

// OnEvent keeps the per-cell sums in step with the wave.
func (h *LowestEntropy) OnEvent(ev wfc.Event) {
	if h.e == nil {
		return
	}
	switch ev.Kind {
	case wfc.EventClear:
		h.reset()
	case wfc.EventBan:
		h.sumW[ev.Cell] -= h.weights[ev.Pattern]
		h.sumWLogW[ev.Cell] -= h.wlogw[ev.Pattern]
		if h.sumW[ev.Cell] < h.totalW*resumBelow {
			h.resum(ev.Cell)
		}
	}
}

// Entropy returns the current entropy of cell.
func (h *LowestEntropy) Entropy(cell int) float64 {
	sw := h.sumW[cell]
	if sw <= 0 {
		return 0
	}
	return math.Log(sw) - h.sumWLogW[cell]/sw
}

// Select returns the lowest-entropy undetermined cell.
func (h *LowestEntropy) Select() wfc.Selection {
	best := -1
	lowest := math.Inf(1)
	sel, done := scan(h.e, func(c int) bool {
		v := h.Entropy(c) + noiseScale*h.r.Float64()
		if v < lowest {
			lowest = v
			best = c
		}
		return true
	})
	if done {
		return sel
	}
	return wfc.SelectCell(best)
}
