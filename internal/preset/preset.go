// Package preset provides named generation parameter sets loaded from the
// embedded presets.json.
package preset

// Preset is a named set of generation parameters. Zero fields leave the
// corresponding setting at its default.
type Preset struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "classic")
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // One line summary for -list
	Mode        string `json:"mode"`        // "cave", "dungeon" or "both"
	Size        int    `json:"size"`        // Grid side length

	PercentWall int `json:"percentWall,omitempty"` // Cave fill wall chance

	NumRooms    int `json:"numRooms,omitempty"`
	MaxAttempts int `json:"maxAttempts,omitempty"`
	Offset      int `json:"offset,omitempty"`
	MinRooms    int `json:"minRooms,omitempty"`

	RequireConnected bool `json:"requireConnected,omitempty"`
}

// PresetsFile represents the structure of presets.json.
type PresetsFile struct {
	Presets []Preset `json:"presets"`
}

// LoadPresets loads preset definitions from the embedded presets.json file.
func LoadPresets() ([]Preset, error) {
	file, err := Load[PresetsFile]("presets.json")
	if err != nil {
		return nil, err
	}
	return file.Presets, nil
}
