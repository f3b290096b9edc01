package ui

import (
	"strings"

	"mad-wfc/internal/core"
)

// nextValue returns the value one step of ctrl away from current in
// direction, and whether it differs from current after clamping.
func nextValue(ctrl core.ParameterControl, current, direction int) (int, bool) {
	if direction == 0 {
		return current, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = 1
	}
	target := ctrl.Clamp(current + direction*step)
	return target, target != current
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:] + " Controls"
}

// statusLines flattens the read-only parameters of snap, skipping keys that
// have a control.
func statusLines(snap core.ParameterSnapshot, controlled map[string]bool) []string {
	var lines []string
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			if controlled[p.Key] {
				continue
			}
			lines = append(lines, p.Label+": "+p.Value)
		}
	}
	return lines
}
