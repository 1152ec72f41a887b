// Package dungeon builds room-and-corridor layouts: rooms are sampled,
// compacted toward the centre, and joined by straight halls chosen with a
// randomized spanning forest.
package dungeon

const (
	// DefaultNumRooms is the room budget of a standard dungeon.
	DefaultNumRooms = 20
	// DefaultMaxAttempts is how many candidates each room slot may draw.
	DefaultMaxAttempts = 2000
	// DefaultOffset is the standard gap between rooms.
	DefaultOffset = 3

	// minRoomDim keeps every wall long enough to have a door cell.
	minRoomDim = 4
)

// Config holds dungeon generation parameters.
type Config struct {
	// NumRooms is the room budget. Zero is allowed and yields no rooms.
	NumRooms int
	// MaxAttempts caps sampling tries per room slot.
	MaxAttempts int
	// Offset is the minimum gap kept between rooms. Halls longer than
	// 3*Offset are never accepted.
	Offset int
	// MinRooms fails the generation when fewer rooms could be placed.
	MinRooms int
}

// DefaultConfig returns the standard dungeon parameters.
func DefaultConfig() Config {
	return Config{
		NumRooms:    DefaultNumRooms,
		MaxAttempts: DefaultMaxAttempts,
		Offset:      DefaultOffset,
	}
}

func (c Config) withDefaults() Config {
	if c.NumRooms < 0 {
		c.NumRooms = 0
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Offset < 0 {
		c.Offset = DefaultOffset
	}
	if c.MinRooms < 0 {
		c.MinRooms = 0
	}
	return c
}

// maxHallLength is the longest hall the planner accepts.
func (c Config) maxHallLength() int {
	return 3 * c.Offset
}
