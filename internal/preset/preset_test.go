package preset

import "testing"

func TestLoadPresets(t *testing.T) {
	presets, err := LoadPresets()
	if err != nil {
		t.Fatalf("Failed to load presets: %v", err)
	}

	expectedIDs := map[string]bool{"classic": false, "caverns": false, "warren": false, "keep": false}
	for _, p := range presets {
		if _, ok := expectedIDs[p.ID]; ok {
			expectedIDs[p.ID] = true
		}
		if p.Size <= 0 {
			t.Errorf("preset %q has size %d", p.ID, p.Size)
		}
		switch p.Mode {
		case "cave", "dungeon", "both":
		default:
			t.Errorf("preset %q has unknown mode %q", p.ID, p.Mode)
		}
	}

	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected preset %q not found", id)
		}
	}
}

func TestRegistry(t *testing.T) {
	registry, err := LoadRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != len(registry.All()) {
		t.Errorf("Count() = %d, All() has %d", registry.Count(), len(registry.All()))
	}

	classic := registry.GetByID("classic")
	if classic == nil {
		t.Fatal("classic preset not found by ID")
	}
	if classic.Size != 100 || classic.PercentWall != 46 || classic.NumRooms != 20 || classic.Offset != 3 {
		t.Errorf("classic preset = %+v, want the default 100x100 parameters", classic)
	}

	if registry.GetByID("missing") != nil {
		t.Error("GetByID should return nil for unknown ids")
	}
	if _, err := registry.Lookup("missing"); err == nil {
		t.Error("Lookup should fail for unknown ids")
	}
}

func TestRegistryKeepsFirstDuplicate(t *testing.T) {
	r := NewRegistry([]Preset{
		{ID: "a", Name: "first"},
		{ID: "a", Name: "second"},
	})

	if got := r.GetByID("a").Name; got != "first" {
		t.Errorf("GetByID(a).Name = %q, want first", got)
	}
	if r.Count() != 2 {
		t.Errorf("Count() = %d, want 2", r.Count())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load[PresetsFile]("nope.json"); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestMustLoadPanicsOnMissingFile(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustLoad of a missing file should panic")
		}
	}()
	MustLoad[PresetsFile]("nope.json")
}
