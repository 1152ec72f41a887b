package dungeon

// Direction is a compass heading along a grid axis.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the unit step for the direction. Y grows southward.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Hall is a straight corridor between door cells on two rooms.
//
// Halls are kept in canonical orientation: StartXY <= EndXY, so Dir is
// always South or East and two rays cast from either end compare equal.
type Hall struct {
	Start   int // Room id at StartXY
	StartXY int // Flat index of the start door
	End     int // Room id at EndXY
	EndXY   int // Flat index of the end door
	Dir     Direction
	Length  int // Span between the doors along Dir

	size int
}

// NewHall builds a hall on a grid of the given size. If the endpoints are
// reversed they are swapped along with their rooms and the direction is
// mirrored.
func NewHall(size, start, startXY, end, endXY int, dir Direction) Hall {
	h := Hall{
		Start:   start,
		StartXY: startXY,
		End:     end,
		EndXY:   endXY,
		Dir:     dir,
		size:    size,
	}
	if startXY > endXY {
		h.Start, h.End = end, start
		h.StartXY, h.EndXY = endXY, startXY
		if dir == North || dir == West {
			h.Dir = dir.Opposite()
		}
	}

	if h.Dir == South || h.Dir == North {
		h.Length = h.EndXY/size - h.StartXY/size
	} else {
		h.Length = h.EndXY%size - h.StartXY%size
	}
	return h
}

// Coords returns the start and end door positions.
func (h Hall) Coords() (x1, y1, x2, y2 int) {
	return h.StartXY % h.size, h.StartXY / h.size, h.EndXY % h.size, h.EndXY / h.size
}

// Rooms returns the ids of the two connected rooms.
func (h Hall) Rooms() (int, int) {
	return h.Start, h.End
}

// Equal reports whether two halls share both endpoints.
func (h Hall) Equal(other Hall) bool {
	return h.StartXY == other.StartXY && h.EndXY == other.EndXY
}

// SameConnection reports whether two halls join the same pair of rooms,
// in either order.
func (h Hall) SameConnection(other Hall) bool {
	return (h.Start == other.Start && h.End == other.End) ||
		(h.Start == other.End && h.End == other.Start)
}

// Crosses reports whether two halls intersect: identical halls, a vertical
// span meeting a horizontal one (endpoints included), or collinear spans
// that overlap.
func (h Hall) Crosses(other Hall) bool {
	if h.Equal(other) {
		return true
	}

	ax1, ay1, ax2, ay2 := h.Coords()
	bx1, by1, bx2, by2 := other.Coords()

	aVertical, bVertical := ax1 == ax2, bx1 == bx2
	aHorizontal, bHorizontal := ay1 == ay2, by1 == by2

	switch {
	case aVertical && bHorizontal:
		return between(ax1, bx1, bx2) && between(by1, ay1, ay2)
	case aHorizontal && bVertical:
		return between(ay1, by1, by2) && between(bx1, ax1, ax2)
	case aVertical && bVertical:
		return ax1 == bx1 && ay1 <= by2 && by1 <= ay2
	case aHorizontal && bHorizontal:
		return ay1 == by1 && ax1 <= bx2 && bx1 <= ax2
	}
	return false
}

func between(v, lo, hi int) bool {
	return v >= lo && v <= hi
}
