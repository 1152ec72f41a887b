package world

import (
	"strings"
	"testing"
)

func TestNewGridAllWalls(t *testing.T) {
	g := NewGrid(10)

	if g.Size() != 10 {
		t.Fatalf("Size() = %d, want 10", g.Size())
	}
	if g.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", g.Len())
	}
	if got := g.Count(Wall); got != 100 {
		t.Errorf("Count(Wall) = %d, want 100", got)
	}
}

func TestGridSetAndClear(t *testing.T) {
	g := NewGrid(5)
	g.Set(1, 2, Floor)
	g.Set(3, 4, Door)

	if g.At(1, 2) != Floor {
		t.Errorf("At(1,2) = %v, want floor", g.At(1, 2))
	}
	if g.AtIndex(g.Index(3, 4)) != Door {
		t.Errorf("AtIndex(3,4) = %v, want door", g.AtIndex(g.Index(3, 4)))
	}
	if x, y := g.XY(g.Index(3, 4)); x != 3 || y != 4 {
		t.Errorf("XY(Index(3,4)) = (%d,%d), want (3,4)", x, y)
	}

	g.Clear()
	if got := g.Count(Wall); got != 25 {
		t.Errorf("after Clear Count(Wall) = %d, want 25", got)
	}
}

func TestGridSwap(t *testing.T) {
	g := NewGrid(4)
	g.Set(0, 0, Floor)
	g.Swap(0, 0, 3, 3)

	if g.At(0, 0) != Wall || g.At(3, 3) != Floor {
		t.Errorf("Swap did not exchange tiles: (0,0)=%v (3,3)=%v", g.At(0, 0), g.At(3, 3))
	}
}

func TestGridInBounds(t *testing.T) {
	g := NewGrid(3)
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{2, 2, true},
		{-1, 0, false},
		{0, 3, false},
		{3, 1, false},
	}

	for _, tt := range tests {
		if got := g.InBounds(tt.x, tt.y); got != tt.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestGridString(t *testing.T) {
	g := NewGrid(3)
	g.Set(1, 1, Floor)
	g.Set(2, 1, Door)

	want := "###\n# D\n###\n"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	var sb strings.Builder
	n, err := g.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(len(want)) {
		t.Errorf("WriteTo wrote %d bytes, want %d", n, len(want))
	}
}

func TestGridChecksum(t *testing.T) {
	a := NewGrid(8)
	b := NewGrid(8)

	if a.Checksum() != b.Checksum() {
		t.Error("identical grids should have identical checksums")
	}

	b.Set(4, 4, Floor)
	if a.Checksum() == b.Checksum() {
		t.Error("different grids should have different checksums")
	}

	if NewGrid(8).Checksum() == NewGrid(9).Checksum() {
		t.Error("grids of different sizes should have different checksums")
	}
}

func TestTileMethods(t *testing.T) {
	tests := []struct {
		tile     Tile
		r        rune
		name     string
		passable bool
	}{
		{Floor, ' ', "floor", true},
		{Wall, '#', "wall", false},
		{Door, 'D', "door", true},
		{Tile(99), '?', "unknown", false},
	}

	for _, tt := range tests {
		if got := tt.tile.Rune(); got != tt.r {
			t.Errorf("Tile(%d).Rune() = %q, want %q", tt.tile, got, tt.r)
		}
		if got := tt.tile.String(); got != tt.name {
			t.Errorf("Tile(%d).String() = %q, want %q", tt.tile, got, tt.name)
		}
		if got := tt.tile.IsPassable(); got != tt.passable {
			t.Errorf("Tile(%d).IsPassable() = %v, want %v", tt.tile, got, tt.passable)
		}
	}
}
