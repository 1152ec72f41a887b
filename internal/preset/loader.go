package preset

import (
	"encoding/json"
	"fmt"

	"github.com/samdwyer/tilegen/data"
)

// Load decodes a JSON file from the embedded data directory into T. The
// preset files are the only data shipped there; LoadPresets wraps this for
// presets.json.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := data.FS().ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("reading preset file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("decoding preset file %s: %w", filename, err)
	}

	return result, nil
}

// MustLoad is Load for files built into the binary, where a decode error is
// a packaging bug. It panics on error.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}
