package preset

import (
	"errors"
	"fmt"
)

// Registry holds loaded presets and provides lookup by id.
type Registry struct {
	byID map[string]*Preset
	all  []Preset
}

// NewRegistry creates a registry from loaded presets. Later duplicates of an
// id are ignored.
func NewRegistry(presets []Preset) *Registry {
	r := &Registry{
		byID: make(map[string]*Preset),
		all:  presets,
	}
	for i := range presets {
		if _, ok := r.byID[presets[i].ID]; !ok {
			r.byID[presets[i].ID] = &presets[i]
		}
	}
	return r
}

// LoadRegistry loads and creates a registry from the embedded presets.json.
func LoadRegistry() (*Registry, error) {
	presets, err := LoadPresets()
	if err != nil {
		return nil, err
	}
	if len(presets) == 0 {
		return nil, errors.New("no presets loaded from presets.json")
	}
	return NewRegistry(presets), nil
}

// MustLoadRegistry loads a registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the preset with the given id, or nil if not found.
func (r *Registry) GetByID(id string) *Preset {
	return r.byID[id]
}

// Lookup is GetByID with an error for unknown ids.
func (r *Registry) Lookup(id string) (*Preset, error) {
	if p := r.byID[id]; p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("unknown preset %q", id)
}

// All returns all presets in file order.
func (r *Registry) All() []Preset {
	return r.all
}

// Count returns the number of presets in the registry.
func (r *Registry) Count() int {
	return len(r.all)
}
