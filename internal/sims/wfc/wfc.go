// Package wfc exposes the grid solver as a viewer simulation that collapses
// a few cells per tick.
package wfc

import (
	"fmt"
	"image/color"
	"strconv"

	"mad-wfc/internal/config"
	"mad-wfc/internal/core"
	"mad-wfc/pkg/wfc"
	"mad-wfc/pkg/wfc/grid"
)

const maxStepsPerTick = 1024

// Sim runs one generation job, advancing StepsPerTick observations per Step.
type Sim struct {
	cfg config.Config
	alg *grid.Algorithm

	stepsPerTick int
	seed         int64
	steps        int
	status       wfc.Status
	startErr     error

	palette []color.RGBA
	display []uint8
	entropy []float32
	broken  []float32
}

// New builds a sim for cfg. The solver is started from cfg.Seed.
func New(cfg config.Config) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	alg, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	total := cfg.Width * cfg.Height
	s := &Sim{
		cfg:          cfg,
		alg:          alg,
		stepsPerTick: 1,
		palette:      cfg.DisplayPalette(),
		display:      make([]uint8, total),
		entropy:      make([]float32, total),
		broken:       make([]float32, total),
	}
	s.Reset(cfg.Seed)
	return s, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "wfc" }

// Size reports the output dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Cells exposes the palette indices of the current wave.
func (s *Sim) Cells() []uint8 { return s.display }

// Palette maps Cells values to colors. The two entries after the legend
// colors mark undecided and contradicted cells.
func (s *Sim) Palette() []color.RGBA { return s.palette }

// Algorithm exposes the underlying solver, for subscribing observers.
func (s *Sim) Algorithm() *grid.Algorithm { return s.alg }

// Reset restarts the solver. A zero seed reuses the configured one.
func (s *Sim) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.seed = seed
	s.steps = 0
	s.status = wfc.StatusContinue
	s.startErr = s.alg.Start(seed)
	if s.startErr != nil {
		s.status = wfc.StatusFailure
	}
	s.refresh()
}

// Step performs up to StepsPerTick observations.
func (s *Sim) Step() {
	if s.Done() {
		return
	}
	r := s.alg.Random()
	for i := 0; i < s.stepsPerTick; i++ {
		s.status = s.alg.Step(r)
		if s.status != wfc.StatusContinue {
			break
		}
		s.steps++
	}
	s.refresh()
}

// Done reports whether the run has solved or failed.
func (s *Sim) Done() bool { return s.status != wfc.StatusContinue }

// Status returns the status of the most recent observation.
func (s *Sim) Status() wfc.Status { return s.status }

// Err returns why the run failed, or nil.
func (s *Sim) Err() error {
	if s.startErr != nil {
		return s.startErr
	}
	if s.status == wfc.StatusFailure {
		return s.alg.Err()
	}
	return nil
}

// EntropyMask reports per cell how undecided it is, 0 for a collapsed cell
// and 1 for one with every pattern still possible.
func (s *Sim) EntropyMask() []float32 { return s.entropy }

// ContradictionMask is 1 on cells without any possible pattern.
func (s *Sim) ContradictionMask() []float32 { return s.broken }

func (s *Sim) refresh() {
	undecided := uint8(len(s.palette) - 2)
	contradicted := uint8(len(s.palette) - 1)
	n := s.alg.PatternCount()
	out := s.alg.ConstructOutput()
	for c, px := range out {
		remaining := s.alg.Remaining(c)
		s.broken[c] = 0
		s.entropy[c] = 0
		if n > 1 {
			s.entropy[c] = float32(max(remaining-1, 0)) / float32(n-1)
		}
		switch {
		case remaining == 0:
			s.display[c] = contradicted
			s.broken[c] = 1
		case remaining == 1:
			s.display[c] = uint8(px)
		default:
			s.display[c] = undecided
		}
	}
}

// Parameters reports the job and progress for the HUD.
func (s *Sim) Parameters() core.ParameterSnapshot {
	collapsed, remaining := 0, 0
	for c := range s.display {
		r := s.alg.Remaining(c)
		remaining += r
		if r == 1 {
			collapsed++
		}
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Run",
			Params: []core.Parameter{
				int64Param("seed", "Seed", s.seed),
				intParam("steps_per_tick", "Steps per tick", s.stepsPerTick),
				intParam("steps", "Observations", s.steps),
				intParam("collapsed", "Collapsed cells", collapsed),
				floatParam("mean_remaining", "Mean patterns left", float64(remaining)/float64(max(len(s.display), 1))),
				stringParam("status", "Status", s.status.String()),
			},
		},
		{
			Name: "Job",
			Params: []core.Parameter{
				stringParam("size", "Size", fmt.Sprintf("%dx%d", s.cfg.Width, s.cfg.Height)),
				stringParam("model", "Model", s.cfg.Model.Type),
				intParam("patterns", "Patterns", s.alg.PatternCount()),
				stringParam("heuristic", "Heuristic", s.cfg.Heuristic),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable values.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "steps_per_tick", Label: "Steps per tick", Step: 1, Min: 1, Max: maxStepsPerTick, HasMin: true, HasMax: true},
		{Key: "seed", Label: "Seed", Step: 1},
	}
}

// SetIntParameter changes steps_per_tick, or restarts the run for seed.
func (s *Sim) SetIntParameter(key string, value int) bool {
	switch key {
	case "steps_per_tick":
		if value < 1 || value > maxStepsPerTick {
			return false
		}
		s.stepsPerTick = value
		return true
	case "seed":
		if value == 0 {
			return false
		}
		s.Reset(int64(value))
		return true
	}
	return false
}

func init() {
	core.Register("wfc", func(cfg map[string]string) (core.Sim, error) {
		c := config.DefaultConfig()
		if path := cfg["config"]; path != "" {
			loaded, err := config.Load(path)
			if err != nil {
				return nil, err
			}
			c = loaded
		}
		s, err := New(c.FromMap(cfg))
		if err != nil {
			return nil, err
		}
		if v, ok := cfg["steps_per_tick"]; ok {
			if n, err := strconv.Atoi(v); err == nil {
				s.SetIntParameter("steps_per_tick", n)
			}
		}
		return s, nil
	})
}
