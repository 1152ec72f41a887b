package dungeon

// Room is an axis-aligned rectangle. Its footprint runs from (X, Y) to
// (X+W, Y+H) inclusive; the outermost ring of that footprint is wall and the
// interior is floor.
type Room struct {
	X, Y int // Top-left corner of the footprint
	W, H int // Footprint extent; the interior is (W-1) x (H-1)
	ID   int // Stable identity, -1 until the room is accepted
}

// Equal reports whether two rooms have the same geometry. ID is ignored.
func (r Room) Equal(other Room) bool {
	return r.X == other.X && r.Y == other.Y && r.W == other.W && r.H == other.H
}

// Center returns the centre coordinates of the room.
func (r Room) Center() (int, int) {
	return (2*r.X + r.W) / 2, (2*r.Y + r.H) / 2
}

// Contains returns true if the given point is inside the room's interior.
func (r Room) Contains(x, y int) bool {
	return x > r.X && x < r.X+r.W && y > r.Y && y < r.Y+r.H
}

// Intersects returns true if the footprints of two rooms share any cell.
func (r Room) Intersects(other Room) bool {
	return r.X <= other.X+other.W &&
		r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H &&
		r.Y+r.H >= other.Y
}

// Edges returns the candidate door cells on each wall, as flat indices into a
// grid of the given size, ordered North, East, South, West. Corners and the
// cells next to them are left out.
func (r Room) Edges(size int) [4][]int {
	var edges [4][]int
	for xx := r.X + 2; xx < r.X+r.W-1; xx++ {
		edges[North] = append(edges[North], r.Y*size+xx)
		edges[South] = append(edges[South], (r.Y+r.H)*size+xx)
	}
	for yy := r.Y + 2; yy < r.Y+r.H-1; yy++ {
		edges[East] = append(edges[East], yy*size+r.X+r.W)
		edges[West] = append(edges[West], yy*size+r.X)
	}
	return edges
}

// gapX is the number of columns strictly between the two footprints,
// negative when they overlap horizontally.
func (r Room) gapX(other Room) int {
	return max(other.X-(r.X+r.W), r.X-(other.X+other.W))
}

// gapY is the vertical counterpart of gapX.
func (r Room) gapY(other Room) int {
	return max(other.Y-(r.Y+r.H), r.Y-(other.Y+other.H))
}

// valid reports whether other is clear of r by more than offset on at least
// one axis. A room with identical geometry is never valid.
func (r Room) valid(other Room, offset int) bool {
	if r.Equal(other) {
		return false
	}
	return r.gapX(other) > offset || r.gapY(other) > offset
}

// validAll checks r against every room in others.
func (r Room) validAll(others []Room, offset int) bool {
	for _, o := range others {
		if !r.valid(o, offset) {
			return false
		}
	}
	return true
}

// validX reports whether r may take a horizontal step with respect to
// other. A horizontal step leaves gapY unchanged, so rooms already clear
// vertically by at least margin are ignored.
func (r Room) validX(other Room, margin int) bool {
	if r.gapY(other) >= margin {
		return true
	}
	return r.gapX(other) > margin
}

// validY is validX with the axes swapped.
func (r Room) validY(other Room, margin int) bool {
	if r.gapX(other) >= margin {
		return true
	}
	return r.gapY(other) > margin
}
