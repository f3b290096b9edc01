// Package config loads generation jobs from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"mad-wfc/pkg/core"
	"mad-wfc/pkg/wfc/grid"
	"mad-wfc/pkg/wfc/heuristic"
	"mad-wfc/pkg/wfc/model"
	"mad-wfc/pkg/wfc/topology"
)

//go:embed default.yaml
var defaultYAML []byte

// Model types.
const (
	ModelOverlapping = "overlapping"
	ModelRules       = "rules"
)

var (
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid")
	// ErrUnknownSymbol indicates a sample character missing from the legend.
	ErrUnknownSymbol = errors.New("config: sample symbol not in legend")
)

// Model selects and parameterises the pattern catalog.
type Model struct {
	Type string `yaml:"type"`

	// Overlapping model.
	N             int      `yaml:"n"`
	PeriodicInput bool     `yaml:"periodic_input"`
	Symmetry      int      `yaml:"symmetry"`
	Sample        []string `yaml:"sample"`

	// Rules model.
	Rules model.Rules `yaml:"rules"`
}

// Config describes one generation job.
type Config struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Degree    int    `yaml:"degree"`
	Periodic  bool   `yaml:"periodic"`
	Heuristic string `yaml:"heuristic"`
	Seed      int64  `yaml:"seed"`
	StepLimit int    `yaml:"step_limit"`

	// Legend[i] is the ASCII character drawn for pixel i; sample rows use it too.
	Legend string `yaml:"legend"`
	// Palette[i] is the "#rrggbb" color of pixel i.
	Palette []string `yaml:"palette"`

	Model Model `yaml:"model"`
}

// DefaultConfig returns the built-in island job.
func DefaultConfig() Config {
	c, err := parse(defaultYAML, Config{})
	if err != nil {
		panic(fmt.Sprintf("config: embedded default: %v", err))
	}
	return c
}

// Load reads and validates the YAML job at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over DefaultConfig and validates the result.
func Parse(data []byte) (Config, error) {
	return parse(data, DefaultConfig())
}

func parse(data []byte, base Config) (Config, error) {
	c := base
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// FromMap applies flag-style overrides on top of c. Unparseable or out of
// range values are ignored.
func (c Config) FromMap(cfg map[string]string) Config {
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["degree"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && (parsed == 2 || parsed == 4 || parsed == 8) {
			c.Degree = parsed
		}
	}
	if v, ok := cfg["periodic"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Periodic = parsed
		}
	}
	if v, ok := cfg["heuristic"]; ok {
		if _, err := heuristic.ByName(v); err == nil {
			c.Heuristic = v
		}
	}
	if v, ok := cfg["steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.StepLimit = parsed
		}
	}
	if v, ok := cfg["n"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Model.N = parsed
		}
	}
	if v, ok := cfg["symmetry"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 1 && parsed <= 8 {
			c.Model.Symmetry = parsed
		}
	}
	return c
}

// Validate checks everything Build relies on.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("output size %dx%d", c.Width, c.Height))
	}
	if c.Degree != 2 && c.Degree != 4 && c.Degree != 8 {
		errs = append(errs, fmt.Errorf("degree %d", c.Degree))
	}
	if _, err := heuristic.ByName(c.Heuristic); err != nil {
		errs = append(errs, err)
	}
	if c.Legend == "" {
		errs = append(errs, errors.New("legend is empty"))
	}
	for i := 0; i < len(c.Legend); i++ {
		if c.Legend[i] >= utf8.RuneSelf {
			errs = append(errs, fmt.Errorf("legend %q: symbols must be ASCII", c.Legend))
			break
		}
	}
	if len(c.Palette) < len(c.Legend) {
		errs = append(errs, fmt.Errorf("palette has %d colors for %d legend symbols", len(c.Palette), len(c.Legend)))
	}
	for i, hex := range c.Palette {
		if _, err := parseHex(hex); err != nil {
			errs = append(errs, fmt.Errorf("palette[%d]: %w", i, err))
		}
	}
	switch c.Model.Type {
	case ModelOverlapping:
		if c.Model.N < 1 {
			errs = append(errs, fmt.Errorf("model.n %d", c.Model.N))
		}
		if c.Model.Symmetry < 1 || c.Model.Symmetry > 8 {
			errs = append(errs, fmt.Errorf("model.symmetry %d", c.Model.Symmetry))
		}
		if _, err := c.SampleGrid(); err != nil {
			errs = append(errs, err)
		}
	case ModelRules:
		if len(c.Model.Rules.Tiles) == 0 {
			errs = append(errs, model.ErrNoTiles)
		}
		for _, t := range c.Model.Rules.Tiles {
			if t.Pixel < 0 || t.Pixel >= len(c.Legend) {
				errs = append(errs, fmt.Errorf("tile %q pixel %d outside legend", t.Name, t.Pixel))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("model.type %q", c.Model.Type))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// SampleGrid converts the overlapping sample rows to pixel values through the
// legend.
func (c Config) SampleGrid() (*core.ByteGrid, error) {
	rows := make([][]uint8, len(c.Model.Sample))
	for y, line := range c.Model.Sample {
		rows[y] = make([]uint8, 0, len(line))
		for _, r := range line {
			i := strings.IndexRune(c.Legend, r)
			if i < 0 {
				return nil, fmt.Errorf("row %d symbol %q: %w", y, r, ErrUnknownSymbol)
			}
			rows[y] = append(rows[y], uint8(i))
		}
	}
	return core.ByteGridFromRows(rows)
}

// Colors returns the parsed palette.
func (c Config) Colors() []color.RGBA {
	out := make([]color.RGBA, len(c.Palette))
	for i, hex := range c.Palette {
		out[i], _ = parseHex(hex)
	}
	return out
}

// Display colors appended after the legend colors by DisplayPalette.
var (
	UndecidedColor     = color.RGBA{R: 28, G: 28, B: 34, A: 255}
	ContradictionColor = color.RGBA{R: 220, G: 30, B: 50, A: 255}
)

// DisplayPalette returns the legend colors followed by UndecidedColor and
// ContradictionColor.
func (c Config) DisplayPalette() []color.RGBA {
	return append(c.Colors(), UndecidedColor, ContradictionColor)
}

// Symbol returns the legend character of pixel, '!' for a contradiction and
// '?' for anything else outside the legend.
func (c Config) Symbol(pixel int) byte {
	if pixel == grid.Contradicted {
		return '!'
	}
	if pixel < 0 || pixel >= len(c.Legend) {
		return '?'
	}
	return c.Legend[pixel]
}

// Catalog builds the pattern catalog for offsets.
func (c Config) Catalog(offsets [][2]int) (*model.Catalog, error) {
	switch c.Model.Type {
	case ModelRules:
		return c.Model.Rules.Build(offsets)
	default:
		sample, err := c.SampleGrid()
		if err != nil {
			return nil, err
		}
		return model.Overlapping(sample, offsets, model.OverlappingOptions{
			N:             c.Model.N,
			PeriodicInput: c.Model.PeriodicInput,
			Symmetry:      c.Model.Symmetry,
		})
	}
}

// Build assembles the solver for the job. Every call returns an independent
// algorithm.
func (c Config) Build() (*grid.Algorithm, error) {
	topo, err := topology.NewCartesian2D(c.Width, c.Height, c.Degree, c.Periodic)
	if err != nil {
		return nil, err
	}
	cat, err := c.Catalog(topo.Offsets())
	if err != nil {
		return nil, err
	}
	h, err := heuristic.ByName(c.Heuristic)
	if err != nil {
		return nil, err
	}
	return grid.New(topo, cat, h)
}

func parseHex(s string) (color.RGBA, error) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
