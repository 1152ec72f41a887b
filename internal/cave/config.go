// Package cave carves organic cave layouts with a cellular automaton.
package cave

// Pruning selects how disconnected floor is removed after smoothing.
type Pruning int

const (
	// PruneDominant keeps a single flooded region larger than the coverage
	// threshold and walls off everything else.
	PruneDominant Pruning = iota
	// PruneCumulative keeps every region flooded until their combined size
	// passes the coverage threshold. Small pockets outside them are removed,
	// but more than one region may survive.
	PruneCumulative
)

// String returns a human-readable pruning mode name.
func (p Pruning) String() string {
	switch p {
	case PruneDominant:
		return "dominant"
	case PruneCumulative:
		return "cumulative"
	default:
		return "unknown"
	}
}

// Defaults for Config, tuned for a 100x100 grid.
const (
	DefaultPercentWall      = 46
	DefaultSmoothIterations = 5
	DefaultWallThreshold    = 5
	DefaultCoverage         = 25
	DefaultMaxSamples       = 100000
)

// Config holds cave generation parameters.
type Config struct {
	// PercentWall is the chance, 0-100, that an interior cell starts as wall.
	PercentWall int
	// SmoothIterations is the number of automaton passes.
	SmoothIterations int
	// WallThreshold is how many of the 9 cells in a 3x3 window must be wall
	// for the centre to become wall.
	WallThreshold int
	// Coverage is the percentage of all cells that retained floor must exceed.
	Coverage int
	// MaxSamples caps random draws while looking for unflooded floor.
	MaxSamples int
	Pruning    Pruning
}

// DefaultConfig returns the standard cave parameters.
func DefaultConfig() Config {
	return Config{
		PercentWall:      DefaultPercentWall,
		SmoothIterations: DefaultSmoothIterations,
		WallThreshold:    DefaultWallThreshold,
		Coverage:         DefaultCoverage,
		MaxSamples:       DefaultMaxSamples,
		Pruning:          PruneDominant,
	}
}

// withDefaults fills zero fields. PercentWall of 0 is kept, it is a valid
// all-floor fill.
func (c Config) withDefaults() Config {
	if c.SmoothIterations <= 0 {
		c.SmoothIterations = DefaultSmoothIterations
	}
	if c.WallThreshold <= 0 {
		c.WallThreshold = DefaultWallThreshold
	}
	if c.Coverage <= 0 {
		c.Coverage = DefaultCoverage
	}
	if c.MaxSamples <= 0 {
		c.MaxSamples = DefaultMaxSamples
	}
	if c.PercentWall < 0 {
		c.PercentWall = 0
	}
	if c.PercentWall > 100 {
		c.PercentWall = 100
	}
	return c
}
