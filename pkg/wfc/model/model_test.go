package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mad-wfc/pkg/core"
)

// N, W, S, E
var axis4 = [][2]int{{0, -1}, {-1, 0}, {0, 1}, {1, 0}}

func grid(t *testing.T, rows ...[]uint8) *core.ByteGrid {
	t.Helper()
	g, err := core.ByteGridFromRows(rows)
	require.NoError(t, err)
	return g
}

func TestOverlappingCheckerboard(t *testing.T) {
	sample := grid(t, []uint8{0, 1}, []uint8{1, 0})
	cat, err := Overlapping(sample, axis4, OverlappingOptions{N: 2, PeriodicInput: true, Symmetry: 1})
	require.NoError(t, err)

	require.Equal(t, 2, cat.Patterns.Len())
	assert.Equal(t, []int{0, 1, 1, 0}, cat.Patterns.Data[0])
	assert.Equal(t, []int{1, 0, 0, 1}, cat.Patterns.Data[1])
	assert.Equal(t, []float64{2, 2}, cat.Weights())

	// Each pattern only tolerates its inverse on every side.
	for d := range axis4 {
		assert.Equal(t, []int{1}, cat.Propagator[d][0], "direction %d", d)
		assert.Equal(t, []int{0}, cat.Propagator[d][1], "direction %d", d)
	}
	assert.Equal(t, []int{0}, cat.Pixels.Patterns(0))
	assert.Equal(t, []int{1}, cat.Pixels.Patterns(1))
	assert.Nil(t, cat.Pixels.Patterns(7))
}

func TestOverlappingSymmetry(t *testing.T) {
	sample := grid(t, []uint8{0, 0}, []uint8{0, 1})

	one, err := Overlapping(sample, axis4, OverlappingOptions{N: 2, Symmetry: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, one.Patterns.Len())

	all, err := Overlapping(sample, axis4, OverlappingOptions{N: 2, Symmetry: 8})
	require.NoError(t, err)
	require.Equal(t, 4, all.Patterns.Len())
	assert.Equal(t, []float64{2, 2, 2, 2}, all.Weights())
	assert.ElementsMatch(t, []int{0, 1, 2}, all.Pixels.Patterns(0))
	assert.Equal(t, []int{3}, all.Pixels.Patterns(1))
	assert.Equal(t, 1, all.Patterns.At(3, 0, 0))
}

func TestOverlappingPropagatorIsSymmetric(t *testing.T) {
	sample := grid(t,
		[]uint8{0, 0, 1, 0},
		[]uint8{0, 1, 1, 0},
		[]uint8{0, 0, 2, 2},
		[]uint8{1, 0, 0, 2},
	)
	cat, err := Overlapping(sample, axis4, OverlappingOptions{N: 2, PeriodicInput: true, Symmetry: 2})
	require.NoError(t, err)

	// q east of p implies p west of q.
	opposite := []int{2, 3, 0, 1}
	n := cat.Patterns.Len()
	for d := range axis4 {
		for p := 0; p < n; p++ {
			for _, q := range cat.Propagator[d][p] {
				assert.Contains(t, cat.Propagator[opposite[d]][q], p)
			}
		}
	}
}

func TestOverlappingErrors(t *testing.T) {
	sample := grid(t, []uint8{0, 1}, []uint8{1, 0})
	_, err := Overlapping(nil, axis4, OverlappingOptions{N: 2})
	assert.ErrorIs(t, err, ErrEmptySample)
	_, err = Overlapping(sample, nil, OverlappingOptions{N: 2})
	assert.ErrorIs(t, err, ErrNoOffsets)
	_, err = Overlapping(sample, axis4, OverlappingOptions{N: 3})
	assert.ErrorIs(t, err, ErrBadPatternSize)
	_, err = Overlapping(sample, axis4, OverlappingOptions{N: 0})
	assert.ErrorIs(t, err, ErrBadPatternSize)
	_, err = Overlapping(sample, axis4, OverlappingOptions{N: 2, Symmetry: 9})
	assert.ErrorIs(t, err, ErrBadSymmetry)

	// A periodic sample may be smaller than the pattern.
	_, err = Overlapping(sample, axis4, OverlappingOptions{N: 3, PeriodicInput: true})
	assert.NoError(t, err)
}

func TestRulesBuild(t *testing.T) {
	r := Rules{
		Tiles: []Tile{
			{Name: "sea", Pixel: 0, Weight: 3},
			{Name: "coast", Pixel: 1, Weight: 1},
			{Name: "land", Pixel: 2, Weight: 2},
		},
		Horizontal: [][2]string{{"sea", "sea"}, {"sea", "coast"}, {"coast", "land"}, {"land", "land"}},
		Vertical:   [][2]string{{"sea", "sea"}, {"land", "land"}, {"coast", "coast"}},
	}
	cat, err := r.Build(axis4)
	require.NoError(t, err)

	assert.Equal(t, 3, cat.Patterns.Len())
	assert.Equal(t, []float64{3, 1, 2}, cat.Weights())
	assert.Equal(t, 2, cat.Patterns.Pixel(2))

	const north, west, south, east = 0, 1, 2, 3
	assert.Equal(t, []int{0, 1}, cat.Propagator[east][0])
	assert.Equal(t, []int{0}, cat.Propagator[west][0])
	assert.Equal(t, []int{1, 2}, cat.Propagator[west][2])
	assert.Equal(t, []int{1}, cat.Propagator[south][1])
	assert.Equal(t, []int{2}, cat.Propagator[north][2])
}

func TestRulesDiagonalUnconstrained(t *testing.T) {
	r := Rules{Tiles: []Tile{{Name: "a", Weight: 1}, {Name: "b", Pixel: 1, Weight: 1}}}
	cat, err := r.Build([][2]int{{1, 1}, {-1, -1}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, cat.Propagator[0][0])
	assert.Equal(t, []int{0, 1}, cat.Propagator[1][1])
}

func TestRulesErrors(t *testing.T) {
	_, err := Rules{}.Build(axis4)
	assert.ErrorIs(t, err, ErrNoTiles)

	_, err = Rules{Tiles: []Tile{{Name: "a"}, {Name: "a"}}}.Build(axis4)
	assert.ErrorIs(t, err, ErrDuplicateTile)

	_, err = Rules{Tiles: []Tile{{Name: "a"}}, Vertical: [][2]string{{"a", "b"}}}.Build(axis4)
	assert.ErrorIs(t, err, ErrUnknownTile)

	_, err = Rules{Tiles: []Tile{{Name: "a"}}}.Build(nil)
	assert.ErrorIs(t, err, ErrNoOffsets)
}
