// Package app runs map generation for the command line: it resolves
// configuration, retries failed generations with fresh seeds, and writes
// the finished maps as text.
package app

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/samdwyer/tilegen/internal/cave"
	"github.com/samdwyer/tilegen/internal/dungeon"
	"github.com/samdwyer/tilegen/internal/preset"
)

// Environment variables read by ApplyEnv.
const (
	EnvSeed   = "TILEGEN_SEED"
	EnvSize   = "TILEGEN_SIZE"
	EnvMode   = "TILEGEN_MODE"
	EnvPreset = "TILEGEN_PRESET"
)

// Run defaults when neither a preset nor the environment sets them.
const (
	DefaultSize       = 100
	DefaultMaxRetries = 5
)

// Config holds run configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible maps.
	// A seed of 0 means a random seed will be generated.
	Seed int64
	Size int
	Mode Mode
	// Preset names the embedded preset the settings were loaded from, if any.
	Preset string

	Cave    cave.Config
	Dungeon dungeon.Config

	// RequireConnected treats a stranded room as a failed attempt.
	RequireConnected bool
	// MaxRetries bounds the attempts per run, each with a fresh seed.
	MaxRetries int
	// Output is the file the maps are written to. Empty or "-" is stdout.
	Output string
}

// DefaultConfig returns a config that builds a 100x100 cave and dungeon.
func DefaultConfig() Config {
	return Config{
		Size:       DefaultSize,
		Mode:       ModeBoth,
		Cave:       cave.DefaultConfig(),
		Dungeon:    dungeon.DefaultConfig(),
		MaxRetries: DefaultMaxRetries,
		Output:     "-",
	}
}

// OpenOutput opens the configured output for writing. Closing the result
// leaves stdout open.
func (c Config) OpenOutput() (io.WriteCloser, error) {
	if c.Output == "" || c.Output == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(c.Output)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// ApplyPreset overlays the non-zero settings of p.
func (c *Config) ApplyPreset(p *preset.Preset) error {
	if p.Mode != "" {
		mode, err := ParseMode(p.Mode)
		if err != nil {
			return fmt.Errorf("preset %s: %w", p.ID, err)
		}
		c.Mode = mode
	}
	if p.Size > 0 {
		c.Size = p.Size
	}
	if p.PercentWall > 0 {
		c.Cave.PercentWall = p.PercentWall
	}
	if p.NumRooms > 0 {
		c.Dungeon.NumRooms = p.NumRooms
	}
	if p.MaxAttempts > 0 {
		c.Dungeon.MaxAttempts = p.MaxAttempts
	}
	if p.Offset > 0 {
		c.Dungeon.Offset = p.Offset
	}
	if p.MinRooms > 0 {
		c.Dungeon.MinRooms = p.MinRooms
	}
	if p.RequireConnected {
		c.RequireConnected = true
	}
	c.Preset = p.ID
	return nil
}

// ApplyEnv overlays settings from the TILEGEN_* environment variables.
// lookup is usually os.LookupEnv. The preset variable is not applied here;
// it has to be resolved before the other sources.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if v, ok := lookup(EnvSize); ok && v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSize, err)
		}
		c.Size = size
	}
	if v, ok := lookup(EnvMode); ok && v != "" {
		mode, err := ParseMode(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMode, err)
		}
		c.Mode = mode
	}
	return nil
}

// Validate reports settings no generation can succeed with.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", c.Size)
	}
	if c.Cave.PercentWall < 0 || c.Cave.PercentWall > 100 {
		return fmt.Errorf("percent wall must be within 0..100, got %d", c.Cave.PercentWall)
	}
	if c.Dungeon.Offset < 0 {
		return fmt.Errorf("room offset must not be negative, got %d", c.Dungeon.Offset)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", c.MaxRetries)
	}
	return nil
}
