// Package world provides the tile grid that cave and dungeon generators carve.
package world

// Tile represents a single map tile.
type Tile uint8

const (
	// Floor is an open, walkable tile.
	Floor Tile = iota
	// Wall is solid rock. New grids are filled with it.
	Wall
	// Door marks the junction between a corridor and a room.
	Door
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == Floor || t == Door
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	switch t {
	case Floor:
		return ' '
	case Wall:
		return '#'
	case Door:
		return 'D'
	default:
		return '?'
	}
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	case Door:
		return "door"
	default:
		return "unknown"
	}
}
