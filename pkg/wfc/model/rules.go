package model

import "fmt"

// Tile is a single-pixel pattern of a rule set.
type Tile struct {
	Name   string  `yaml:"name"`
	Pixel  int     `yaml:"pixel"`
	Weight float64 `yaml:"weight"`
}

// Rules describes a tile set by explicit adjacency. A Horizontal pair
// {a, b} allows b directly east of a; a Vertical pair {a, b} allows b directly
// below a. Offsets that are not one of the four axis steps constrain nothing.
type Rules struct {
	Tiles      []Tile      `yaml:"tiles"`
	Horizontal [][2]string `yaml:"horizontal"`
	Vertical   [][2]string `yaml:"vertical"`
}

// Build turns the rules into a catalog of 1×1 patterns, one per tile, in
// declaration order.
func (r Rules) Build(offsets [][2]int) (*Catalog, error) {
	if len(r.Tiles) == 0 {
		return nil, ErrNoTiles
	}
	if len(offsets) == 0 {
		return nil, ErrNoOffsets
	}
	ps := &Patterns{N: 1}
	ids := make(map[string]int, len(r.Tiles))
	for _, t := range r.Tiles {
		if _, dup := ids[t.Name]; dup {
			return nil, fmt.Errorf("%q: %w", t.Name, ErrDuplicateTile)
		}
		ids[t.Name] = len(ps.Data)
		ps.Data = append(ps.Data, []int{t.Pixel})
		ps.Weights = append(ps.Weights, t.Weight)
	}

	n := len(r.Tiles)
	east := make([]bool, n*n)
	south := make([]bool, n*n)
	mark := func(pairs [][2]string, into []bool) error {
		for _, pair := range pairs {
			a, ok := ids[pair[0]]
			if !ok {
				return fmt.Errorf("%q: %w", pair[0], ErrUnknownTile)
			}
			b, ok := ids[pair[1]]
			if !ok {
				return fmt.Errorf("%q: %w", pair[1], ErrUnknownTile)
			}
			into[a*n+b] = true
		}
		return nil
	}
	if err := mark(r.Horizontal, east); err != nil {
		return nil, err
	}
	if err := mark(r.Vertical, south); err != nil {
		return nil, err
	}

	agree := func(p, q, dx, dy int) bool {
		switch [2]int{dx, dy} {
		case [2]int{1, 0}:
			return east[p*n+q]
		case [2]int{-1, 0}:
			return east[q*n+p]
		case [2]int{0, 1}:
			return south[p*n+q]
		case [2]int{0, -1}:
			return south[q*n+p]
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
