package core

import (
	"errors"
	"testing"
)

func TestByteGridFromRows(t *testing.T) {
	g, err := ByteGridFromRows([][]uint8{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("ByteGridFromRows: %v", err)
	}
	if g.W != 3 || g.H != 2 {
		t.Fatalf("size = %dx%d, want 3x2", g.W, g.H)
	}
	if got := g.At(2, 1); got != 6 {
		t.Fatalf("At(2,1) = %d, want 6", got)
	}
	g.Set(0, 1, 9)
	if got := g.Cells()[3]; got != 9 {
		t.Fatalf("Set did not write through, got %d", got)
	}

	if _, err := ByteGridFromRows([][]uint8{{1, 2}, {3}}); !errors.Is(err, ErrRaggedRows) {
		t.Fatalf("ragged rows error = %v, want ErrRaggedRows", err)
	}
}

func TestByteGridWrap(t *testing.T) {
	g := NewByteGrid(4, 3)
	x, y := g.Wrap(-1, 3)
	if x != 3 || y != 0 {
		t.Fatalf("Wrap(-1,3) = (%d,%d), want (3,0)", x, y)
	}
}
