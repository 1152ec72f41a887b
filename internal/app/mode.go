package app

import "fmt"

// Mode selects which maps a run produces.
type Mode int

const (
	// ModeBoth builds a cave and then a dungeon from the same random stream.
	ModeBoth Mode = iota
	// ModeCave builds only the cellular-automaton cave.
	ModeCave
	// ModeDungeon builds only the room-and-hall dungeon.
	ModeDungeon
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeBoth:
		return "both"
	case ModeCave:
		return "cave"
	case ModeDungeon:
		return "dungeon"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name back into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "both", "":
		return ModeBoth, nil
	case "cave":
		return ModeCave, nil
	case "dungeon":
		return ModeDungeon, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want cave, dungeon or both)", s)
	}
}

func (m Mode) wantsCave() bool    { return m == ModeBoth || m == ModeCave }
func (m Mode) wantsDungeon() bool { return m == ModeBoth || m == ModeDungeon }
