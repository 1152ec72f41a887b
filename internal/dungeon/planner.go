package dungeon

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/tilegen/internal/unionfind"
	"github.com/samdwyer/tilegen/internal/world"
)

// Plan is the outcome of corridor selection.
type Plan struct {
	Halls       []Hall // Accepted halls, in acceptance order
	Stranded    bool   // Candidates ran out before every room was joined
	Unconnected []int  // Room ids not joined to room 0, set when Stranded
	Groups      int    // Disjoint room networks left after selection
	Rounds      int    // Selection rounds run
}

// Planner finds straight halls between placed rooms and picks a minimal set
// that joins them all.
type Planner struct {
	grid      *world.Grid
	rooms     []Room
	maxLength int
	rng       *rand.Rand

	// edgeOwner maps every door candidate cell to its room id.
	edgeOwner map[int]int
}

// NewPlanner creates a planner over rooms already carved into grid. Room
// ids must be 0..len(rooms)-1.
func NewPlanner(grid *world.Grid, rooms []Room, maxLength int, rng *rand.Rand) *Planner {
	p := &Planner{
		grid:      grid,
		rooms:     rooms,
		maxLength: maxLength,
		rng:       rng,
		edgeOwner: make(map[int]int),
	}
	for _, r := range rooms {
		for _, side := range r.Edges(grid.Size()) {
			for _, c := range side {
				p.edgeOwner[c] = r.ID
			}
		}
	}
	return p
}

// Candidates casts a ray outward from every door cell of every room and
// returns one hall per ray that lands on another room's door cell.
// Duplicates seen from both ends are dropped; order is deterministic.
func (p *Planner) Candidates() []Hall {
	size := p.grid.Size()
	seen := mapset.New[Hall]()
	var out []Hall

	for _, r := range p.rooms {
		edges := r.Edges(size)
		for dir := North; dir <= West; dir++ {
			for _, c := range edges[dir] {
				h, ok := p.cast(r.ID, c, dir)
				if !ok || seen.Has(h) {
					continue
				}
				seen.Put(h)
				out = append(out, h)
			}
		}
	}
	return out
}

// cast walks from cell away from its room. The cell right outside the wall
// is skipped; the walk stops at the first floor cell, and the cell before it
// must be a door cell of a different room.
func (p *Planner) cast(roomID, cell int, dir Direction) (Hall, bool) {
	size := p.grid.Size()
	x, y := p.grid.XY(cell)
	dx, dy := dir.Delta()

	for n := 1; ; n++ {
		px, py := x+(n+1)*dx, y+(n+1)*dy
		if px < 1 || py < 1 || px > size-2 || py > size-2 {
			return Hall{}, false
		}
		if p.grid.At(px, py) != world.Floor {
			continue
		}

		end := p.grid.Index(x+n*dx, y+n*dy)
		owner, ok := p.edgeOwner[end]
		if !ok || owner == roomID {
			return Hall{}, false
		}
		return NewHall(size, roomID, cell, owner, end, dir), true
	}
}

// filter drops candidates that join an already joined room pair or that
// cross an accepted hall.
func filter(candidates, accepted []Hall) []Hall {
	out := candidates[:0:0]
	for _, c := range candidates {
		ok := true
		for _, h := range accepted {
			if c.SameConnection(h) || c.Crosses(h) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}

// Connect runs the randomized spanning-forest selection and carves every
// accepted hall. It stops when all rooms share one set, or reports a
// stranding when no usable candidate is left.
func (p *Planner) Connect() Plan {
	var plan Plan
	sets := unionfind.New(len(p.rooms))
	candidates := p.Candidates()

	for !sets.Connected() {
		plan.Rounds++
		candidates = filter(candidates, plan.Halls)
		if len(candidates) == 0 {
			plan.Stranded = true
			break
		}

		k := p.rng.Intn(len(candidates))
		h := candidates[k]
		if !sets.ConnectedPair(h.Start, h.End) && h.Length <= p.maxLength {
			sets.Union(h.Start, h.End)
			plan.Halls = append(plan.Halls, h)
			p.Carve(h)
		} else {
			candidates = append(candidates[:k], candidates[k+1:]...)
		}
	}

	plan.Groups = len(sets.Components())
	if plan.Stranded {
		root := sets.Find(0)
		for id := 1; id < sets.Len(); id++ {
			if sets.Find(id) != root {
				plan.Unconnected = append(plan.Unconnected, id)
			}
		}
	}
	return plan
}

// Carve opens a hall: the centre line becomes floor and both ends become
// doors. Cells beside the centre line are not written; untouched rock is
// already wall, and a carved neighbour (a parallel hall, a room interior)
// must stay open.
func (p *Planner) Carve(h Hall) {
	x1, y1, x2, y2 := h.Coords()

	switch h.Dir {
	case East, West:
		for x := x1 + 1; x < x2; x++ {
			p.grid.Set(x, y1, world.Floor)
		}
	case North, South:
		for y := y1 + 1; y < y2; y++ {
			p.grid.Set(x1, y, world.Floor)
		}
	}

	p.grid.Set(x1, y1, world.Door)
	p.grid.Set(x2, y2, world.Door)
}
