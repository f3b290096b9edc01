// Package heuristic provides cell selection policies for wfc.Engine.
package heuristic

import (
	"errors"
	"fmt"
	"sort"

	"mad-wfc/pkg/wfc"
)

// ErrUnknown is returned by ByName for an unregistered policy.
var ErrUnknown = errors.New("heuristic: unknown policy")

var factories = map[string]func() wfc.Heuristic{
	"entropy":  func() wfc.Heuristic { return NewLowestEntropy() },
	"scanline": func() wfc.Heuristic { return NewScanline() },
	"random":   func() wfc.Heuristic { return NewRandom() },
}

// ByName returns a fresh heuristic for name.
func ByName(name string) (wfc.Heuristic, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%q (known: %v): %w", name, Names(), ErrUnknown)
	}
	return f(), nil
}

// Names lists the registered policies.
func Names() []string {
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// scan reports a contradicted cell as SelectNone and otherwise calls visit
// for each undetermined cell. When visit is never called it returns SelectDone.
func scan(e *wfc.Engine, visit func(cell int) bool) (wfc.Selection, bool) {
	total := e.Topology().TotalSize()
	undetermined := false
	for c := 0; c < total; c++ {
		switch n := e.Remaining(c); {
		case n == 0:
			return wfc.SelectNone(), true
		case n > 1:
			undetermined = true
			if !visit(c) {
				return wfc.Selection{}, false
			}
		}
	}
	if !undetermined {
		return wfc.SelectDone(), true
	}
	return wfc.Selection{}, false
}
