package world

import (
	"bufio"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Grid is a square, flat buffer of tiles indexed by y*size+x.
//
// Set and At do no bounds checking. Callers keep 0 <= x,y < Size().
type Grid struct {
	size  int
	cells []Tile
}

// NewGrid creates a size x size grid filled with walls.
func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	g := &Grid{
		size:  size,
		cells: make([]Tile, size*size),
	}
	g.Clear()
	return g
}

// Size returns the side length of the grid.
func (g *Grid) Size() int {
	return g.size
}

// Len returns the total number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Clear resets every cell to Wall.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Wall
	}
}

// Set writes one cell.
func (g *Grid) Set(x, y int, t Tile) {
	g.cells[y*g.size+x] = t
}

// At returns the tile at (x, y).
func (g *Grid) At(x, y int) Tile {
	return g.cells[y*g.size+x]
}

// SetIndex writes the cell at flat index i.
func (g *Grid) SetIndex(i int, t Tile) {
	g.cells[i] = t
}

// AtIndex returns the tile at flat index i.
func (g *Grid) AtIndex(i int) Tile {
	return g.cells[i]
}

// Index converts (x, y) to a flat index.
func (g *Grid) Index(x, y int) int {
	return y*g.size + x
}

// XY converts a flat index back to (x, y).
func (g *Grid) XY(i int) (int, int) {
	return i % g.size, i / g.size
}

// InBounds returns true if (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// Count returns the number of cells holding the given tile.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}

// Cells returns a copy of the tile buffer.
func (g *Grid) Cells() []Tile {
	out := make([]Tile, len(g.cells))
	copy(out, g.cells)
	return out
}

// Swap exchanges the tiles at two positions.
func (g *Grid) Swap(x1, y1, x2, y2 int) {
	a, b := g.Index(x1, y1), g.Index(x2, y2)
	g.cells[a], g.cells[b] = g.cells[b], g.cells[a]
}

// Checksum returns a 64-bit fingerprint of the grid contents.
// Two grids with identical size and tiles always hash the same.
func (g *Grid) Checksum() uint64 {
	d := xxhash.New()
	var hdr [8]byte
	for i := 0; i < 8; i++ {
		hdr[i] = byte(uint64(g.size) >> (8 * i))
	}
	d.Write(hdr[:])
	buf := make([]byte, len(g.cells))
	for i, c := range g.cells {
		buf[i] = byte(c)
	}
	d.Write(buf)
	return d.Sum64()
}

// WriteTo writes the grid as text, one character per cell and one line per row.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			c, err := bw.WriteRune(g.At(x, y).Rune())
			n += int64(c)
			if err != nil {
				return n, err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// String returns the text form of the grid.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.size * (g.size + 1))
	g.WriteTo(&sb)
	return sb.String()
}
