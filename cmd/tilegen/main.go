// Package main is the entry point for tilegen.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"

	"github.com/samdwyer/tilegen/internal/app"
	"github.com/samdwyer/tilegen/internal/preset"
	"github.com/samdwyer/tilegen/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	var (
		seed        = flag.Int64("seed", 0, "random seed; 0 picks one from the clock")
		size        = flag.Int("size", app.DefaultSize, "side length of the square map")
		mode        = flag.String("mode", "both", "maps to build: cave, dungeon or both")
		presetID    = flag.String("preset", "", "embedded preset to start from")
		percentWall = flag.Int("wall", 0, "cave seed-fill wall percentage")
		numRooms    = flag.Int("rooms", 0, "dungeon room budget")
		maxAttempts = flag.Int("attempts", 0, "placement attempts per room")
		offset      = flag.Int("offset", 0, "minimum gap between rooms")
		minRooms    = flag.Int("min-rooms", 0, "fail an attempt with fewer rooms")
		connected   = flag.Bool("connected", false, "retry until every room is reachable")
		retries     = flag.Int("retries", app.DefaultMaxRetries, "attempts before giving up")
		output      = flag.String("o", "-", "output file, - for stdout")
		list        = flag.Bool("list", false, "list the embedded presets and exit")
		verbosity   = flag.Int("v", 0, "log verbosity")
	)
	flag.Parse()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	registry := preset.MustLoadRegistry()
	if *list {
		for _, p := range registry.All() {
			fmt.Printf("%-10s %-8s %4d  %s\n", p.ID, p.Mode, p.Size, p.Description)
		}
		return
	}

	// Defaults, then preset, then environment, then explicit flags.
	cfg := app.DefaultConfig()
	id := os.Getenv(app.EnvPreset)
	if *presetID != "" {
		id = *presetID
	}
	if id != "" {
		p, err := registry.Lookup(id)
		if err != nil {
			log.Fatalf("Preset: %v", err)
		}
		if err := cfg.ApplyPreset(p); err != nil {
			log.Fatalf("Preset: %v", err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		log.Fatalf("Environment: %v", err)
	}

	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "size":
			cfg.Size = *size
		case "mode":
			m, err := app.ParseMode(*mode)
			if err != nil {
				flagErr = err
			}
			cfg.Mode = m
		case "wall":
			cfg.Cave.PercentWall = *percentWall
		case "rooms":
			cfg.Dungeon.NumRooms = *numRooms
		case "attempts":
			cfg.Dungeon.MaxAttempts = *maxAttempts
		case "offset":
			cfg.Dungeon.Offset = *offset
		case "min-rooms":
			cfg.Dungeon.MinRooms = *minRooms
		case "connected":
			cfg.RequireConnected = *connected
		case "retries":
			cfg.MaxRetries = *retries
		case "o":
			cfg.Output = *output
		}
	})
	if flagErr != nil {
		log.Fatalf("Flags: %v", flagErr)
	}

	ctx := context.Background()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx, logger.WithName("otel"))
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		// Continue without telemetry - generation still works
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	w, err := cfg.OpenOutput()
	if err != nil {
		log.Fatalf("Output: %v", err)
	}
	defer w.Close()

	res, err := app.Run(ctx, cfg, w, app.WithLogger(logger))
	if err != nil {
		log.Fatalf("Generation error: %v", err)
	}
	logger.V(1).Info("run complete", "run", res.RunID, "seed", res.Seed, "attempts", res.Attempts)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	apiKey := os.Getenv("HONEYCOMB_TILEGEN_API_KEY")
	dataset := os.Getenv("HONEYCOMB_TILEGEN_DATASET")
	if dataset == "" {
		dataset = "tilegen"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
