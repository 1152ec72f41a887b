package dungeon

import (
	"math/rand"
	"sort"

	"github.com/samdwyer/tilegen/internal/world"
)

// Packer samples non-overlapping rooms and compacts them toward the grid
// centre. It owns the id allocator for the rooms it accepts.
type Packer struct {
	size        int
	offset      int
	maxAttempts int
	rng         *rand.Rand
	nextID      int
}

// NewPacker creates a packer for a size x size grid.
func NewPacker(size, offset, maxAttempts int, rng *rand.Rand) *Packer {
	return &Packer{
		size:        size,
		offset:      offset,
		maxAttempts: maxAttempts,
		rng:         rng,
	}
}

// sizeBand returns the smallest room extent and how many extents above it
// can be drawn, both scaled to the grid size.
func (p *Packer) sizeBand() (base, vary int) {
	span := 2 * (p.size / 10)
	vary = span / 4
	base = span - vary
	if vary < 1 {
		vary = 1
	}
	if base < minRoomDim {
		base = minRoomDim
	}
	return base, vary
}

// randomRoom draws a candidate room. It returns false when no room of the
// drawn size fits the grid.
func (p *Packer) randomRoom() (Room, bool) {
	base, vary := p.sizeBand()
	w := base + p.rng.Intn(vary)
	h := base + p.rng.Intn(vary)
	if w >= p.size || h >= p.size {
		return Room{}, false
	}
	return Room{
		X:  p.rng.Intn(p.size - w),
		Y:  p.rng.Intn(p.size - h),
		W:  w,
		H:  h,
		ID: -1,
	}, true
}

// accept assigns the next id to a room that has passed validation.
func (p *Packer) accept(r Room) Room {
	if r.ID < 0 {
		r.ID = p.nextID
		p.nextID++
	}
	return r
}

// Sample places up to n rooms. Each slot gets maxAttempts tries; the first
// slot that runs out ends sampling early, so fewer than n rooms is normal
// on crowded grids.
func (p *Packer) Sample(n int) []Room {
	rooms := make([]Room, 0, n)
	for len(rooms) < n {
		placed := false
		for attempt := 0; attempt < p.maxAttempts; attempt++ {
			r, ok := p.randomRoom()
			if !ok {
				return rooms
			}
			if r.validAll(rooms, p.offset) {
				rooms = append(rooms, p.accept(r))
				placed = true
				break
			}
		}
		if !placed {
			break
		}
	}
	return rooms
}

// distance is the squared distance from the room centre to the grid centre.
func (p *Packer) distance(r Room) int {
	cx, cy := r.Center()
	c := p.size / 2
	return (cx-c)*(cx-c) + (cy-c)*(cy-c)
}

// Compact pulls rooms toward the grid centre one tile at a time until a full
// sweep moves nothing. Rooms are never resized. It returns the number of
// unit moves made.
func (p *Packer) Compact(rooms []Room) int {
	total := 0
	for {
		sort.SliceStable(rooms, func(i, j int) bool {
			di, dj := p.distance(rooms[i]), p.distance(rooms[j])
			if di != dj {
				return di < dj
			}
			return rooms[i].ID < rooms[j].ID
		})

		moves := 0
		for i := range rooms {
			for p.moveXY(rooms, i) {
				moves++
			}
		}
		total += moves
		if moves == 0 {
			return total
		}
	}
}

// moveXY tries one horizontal and one vertical step for rooms[i].
func (p *Packer) moveXY(rooms []Room, i int) bool {
	mx := p.moveX(rooms, i)
	my := p.moveY(rooms, i)
	return mx || my
}

func (p *Packer) moveX(rooms []Room, i int) bool {
	r := &rooms[i]
	for j := range rooms {
		if j != i && !r.validX(rooms[j], p.offset+1) {
			return false
		}
	}

	cx, _ := r.Center()
	switch {
	case cx > p.size/2:
		r.X--
	case cx < p.size/2:
		r.X++
	default:
		return false
	}
	return true
}

func (p *Packer) moveY(rooms []Room, i int) bool {
	r := &rooms[i]
	for j := range rooms {
		if j != i && !r.validY(rooms[j], p.offset+1) {
			return false
		}
	}

	_, cy := r.Center()
	switch {
	case cy > p.size/2:
		r.Y--
	case cy < p.size/2:
		r.Y++
	default:
		return false
	}
	return true
}

// Place carves every room interior into the grid. The footprint border is
// left as wall.
func Place(grid *world.Grid, rooms []Room) {
	for _, r := range rooms {
		for y := r.Y + 1; y < r.Y+r.H; y++ {
			for x := r.X + 1; x < r.X+r.W; x++ {
				grid.Set(x, y, world.Floor)
			}
		}
	}
}
