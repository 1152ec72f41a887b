package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"

	"github.com/samdwyer/tilegen/internal/preset"
	"github.com/samdwyer/tilegen/internal/world"
)

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeBoth, "both"},
		{ModeCave, "cave"},
		{ModeDungeon, "dungeon"},
		{Mode(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeBoth, ModeCave, ModeDungeon} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("maze"); err == nil {
		t.Error("ParseMode should reject unknown names")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvSeed: "1234",
		EnvSize: "64",
		EnvMode: "dungeon",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Seed != 1234 || cfg.Size != 64 || cfg.Mode != ModeDungeon {
		t.Errorf("cfg = seed %d size %d mode %v", cfg.Seed, cfg.Size, cfg.Mode)
	}

	for _, bad := range []map[string]string{
		{EnvSeed: "x"},
		{EnvSize: "big"},
		{EnvMode: "maze"},
	} {
		env = bad
		cfg := DefaultConfig()
		if err := cfg.ApplyEnv(lookup); err == nil {
			t.Errorf("ApplyEnv(%v) should fail", bad)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	registry := preset.MustLoadRegistry()
	p, err := registry.Lookup("keep")
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := cfg.ApplyPreset(p); err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	if cfg.Mode != ModeDungeon || cfg.Size != 80 {
		t.Errorf("mode/size = %v/%d, want dungeon/80", cfg.Mode, cfg.Size)
	}
	if cfg.Dungeon.NumRooms != 8 || cfg.Dungeon.Offset != 4 || cfg.Dungeon.MinRooms != 4 {
		t.Errorf("dungeon config = %+v", cfg.Dungeon)
	}
	if !cfg.RequireConnected || cfg.Preset != "keep" {
		t.Errorf("RequireConnected = %v, Preset = %q", cfg.RequireConnected, cfg.Preset)
	}
	// Fields the preset leaves unset keep their defaults.
	if cfg.Cave.PercentWall != DefaultConfig().Cave.PercentWall {
		t.Errorf("PercentWall = %d, want the default", cfg.Cave.PercentWall)
	}

	if err := cfg.ApplyPreset(&preset.Preset{ID: "bad", Mode: "maze"}); err == nil {
		t.Error("ApplyPreset should reject an unknown mode")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero size", func(c *Config) { c.Size = 0 }, false},
		{"wall over 100", func(c *Config) { c.Cave.PercentWall = 101 }, false},
		{"negative offset", func(c *Config) { c.Dungeon.Offset = -1 }, false},
		{"no retries", func(c *Config) { c.MaxRetries = 0 }, false},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(&cfg)
		if err := cfg.Validate(); (err == nil) != tt.ok {
			t.Errorf("%s: Validate() = %v", tt.name, err)
		}
	}
}

func TestGenerateBothModes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7

	res, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Maps) != 2 {
		t.Fatalf("got %d maps, want 2", len(res.Maps))
	}
	if res.Maps[0].Mode != ModeCave || res.Maps[0].Cave == nil {
		t.Errorf("first map = %v, want the cave", res.Maps[0].Mode)
	}
	if res.Maps[1].Mode != ModeDungeon || res.Maps[1].Layout == nil {
		t.Errorf("second map = %v, want the dungeon", res.Maps[1].Mode)
	}
	if res.RunID == "" {
		t.Error("run id should be set")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Size = 60

	a, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if a.Seed != b.Seed || a.Attempts != b.Attempts {
		t.Errorf("seed/attempts differ: %d/%d vs %d/%d", a.Seed, a.Attempts, b.Seed, b.Attempts)
	}
	for i := range a.Maps {
		if a.Maps[i].Grid.Checksum() != b.Maps[i].Grid.Checksum() {
			t.Errorf("map %d differs between runs with the same seed", i)
		}
	}
	if a.RunID == b.RunID {
		t.Error("each run should get its own id")
	}
}

func TestGenerateRetriesFailedCaves(t *testing.T) {
	var failures int
	logger := funcr.New(func(prefix, args string) {
		if strings.Contains(args, "generation attempt failed") {
			failures++
		}
	}, funcr.Options{})

	cfg := DefaultConfig()
	cfg.Seed = 3
	cfg.Mode = ModeCave
	cfg.Cave.PercentWall = 100
	cfg.MaxRetries = 3

	_, err := Generate(context.Background(), cfg, WithLogger(logger))
	if !errors.Is(err, world.ErrGenerationFailed) {
		t.Fatalf("Generate error = %v, want ErrGenerationFailed", err)
	}
	if failures != 3 {
		t.Errorf("logged %d failed attempts, want 3", failures)
	}
}

func TestGenerateRequireConnected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 11
	cfg.Mode = ModeDungeon
	cfg.Dungeon.Offset = 0 // no hall is short enough
	cfg.MaxRetries = 2

	res, err := Generate(context.Background(), cfg)
	if err != nil {
		t.Fatalf("stranding without RequireConnected should not fail: %v", err)
	}
	if !res.Maps[0].Layout.Stranded {
		t.Fatal("expected a stranded layout")
	}

	cfg.RequireConnected = true
	_, err = Generate(context.Background(), cfg)
	if !errors.Is(err, world.ErrStrandedRoom) {
		t.Errorf("Generate error = %v, want ErrStrandedRoom", err)
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = -5
	if _, err := Generate(context.Background(), cfg); err == nil {
		t.Error("Generate should reject a negative size")
	}
}

func TestRunWritesMaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 5
	cfg.Size = 40
	cfg.Mode = ModeDungeon

	var buf bytes.Buffer
	res, err := Run(context.Background(), cfg, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 1+cfg.Size {
		t.Fatalf("wrote %d lines, want a header plus %d rows", len(lines), cfg.Size)
	}
	if !strings.HasPrefix(lines[0], "# run="+res.RunID+" mode=dungeon") {
		t.Errorf("header = %q", lines[0])
	}
	if got := strings.Join(lines[1:], "\n") + "\n"; got != res.Maps[0].Grid.String() {
		t.Error("map body does not match the grid text")
	}
}

func TestOpenOutput(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Output != "-" {
		t.Errorf("default Output = %q, want stdout", cfg.Output)
	}
	w, err := cfg.OpenOutput()
	if err != nil {
		t.Fatalf("OpenOutput(stdout): %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("closing stdout output: %v", err)
	}

	cfg.Seed = 8
	cfg.Size = 30
	cfg.Mode = ModeDungeon
	cfg.Output = filepath.Join(t.TempDir(), "map.txt")

	w, err = cfg.OpenOutput()
	if err != nil {
		t.Fatalf("OpenOutput(file): %v", err)
	}
	res, err := Run(context.Background(), cfg, w)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(content), res.Maps[0].Grid.String()) {
		t.Error("output file should end with the map text")
	}

	cfg.Output = filepath.Join(t.TempDir(), "missing", "map.txt")
	if _, err := cfg.OpenOutput(); err == nil {
		t.Error("OpenOutput should fail when the directory does not exist")
	}
}
