package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/tilegen/internal/cave"
	"github.com/samdwyer/tilegen/internal/dungeon"
	"github.com/samdwyer/tilegen/internal/telemetry"
	"github.com/samdwyer/tilegen/internal/world"
)

// Map is one finished grid from a run.
type Map struct {
	Mode   Mode // ModeCave or ModeDungeon
	Grid   *world.Grid
	Cave   *cave.Stats     // Set for caves
	Layout *dungeon.Layout // Set for dungeons
}

// Result is the outcome of a run.
type Result struct {
	RunID    string
	Seed     int64 // Seed of the successful attempt
	Attempts int
	Maps     []Map
}

// Option configures a run.
type Option func(*runner)

// WithLogger sets the logger handed to the generators.
func WithLogger(l logr.Logger) Option {
	return func(r *runner) {
		r.logger = l
	}
}

type runner struct {
	cfg    Config
	logger logr.Logger
}

// Generate builds the maps cfg asks for. Every attempt seeds one random
// stream and builds the cave before the dungeon from it. An attempt that
// fails with ErrGenerationFailed, or with ErrStrandedRoom when
// RequireConnected is set, is retried with the next seed drawn from a
// stream seeded by cfg.Seed, up to MaxRetries attempts.
func Generate(ctx context.Context, cfg Config, opts ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &runner{cfg: cfg, logger: logr.Discard()}
	for _, opt := range opts {
		opt(r)
	}

	tracer := telemetry.Tracer("app")
	ctx, span := tracer.Start(ctx, "app.run")
	defer span.End()

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	res := &Result{RunID: uuid.NewString()}
	seeds := rand.New(rand.NewSource(cfg.Seed))
	seed := cfg.Seed

	maps, err := backoff.Retry(ctx, func() ([]Map, error) {
		res.Attempts++
		res.Seed = seed
		maps, err := r.attempt(ctx, seed)
		if err == nil {
			return maps, nil
		}
		if !r.retryable(err) {
			return nil, backoff.Permanent(err)
		}
		r.logger.Info("generation attempt failed", "attempt", res.Attempts, "seed", seed, "error", err)
		seed = seeds.Int63()
		return nil, err
	},
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(uint(cfg.MaxRetries)),
	)

	span.SetAttributes(
		attribute.String("run.id", res.RunID),
		attribute.String("run.mode", cfg.Mode.String()),
		attribute.String("run.preset", cfg.Preset),
		attribute.Int64("run.seed", res.Seed),
		attribute.Int("run.attempts", res.Attempts),
		attribute.Int("run.size", cfg.Size),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("run %s: %d attempts: %w", res.RunID, res.Attempts, err)
	}
	res.Maps = maps
	return res, nil
}

func (r *runner) retryable(err error) bool {
	if errors.Is(err, world.ErrGenerationFailed) {
		return true
	}
	return r.cfg.RequireConnected && errors.Is(err, world.ErrStrandedRoom)
}

// attempt builds every requested map from one seed.
func (r *runner) attempt(ctx context.Context, seed int64) ([]Map, error) {
	rng := rand.New(rand.NewSource(seed))
	var maps []Map

	if r.cfg.Mode.wantsCave() {
		grid := world.NewGrid(r.cfg.Size)
		gen := cave.New(rng, r.cfg.Cave, cave.WithLogger(r.logger.WithName("cave")))
		stats, err := gen.Generate(ctx, grid)
		if err != nil {
			return nil, err
		}
		maps = append(maps, Map{Mode: ModeCave, Grid: grid, Cave: &stats})
	}

	if r.cfg.Mode.wantsDungeon() {
		grid := world.NewGrid(r.cfg.Size)
		gen := dungeon.New(rng, r.cfg.Dungeon, dungeon.WithLogger(r.logger.WithName("dungeon")))
		layout, err := gen.Generate(ctx, grid)
		if err != nil {
			return nil, err
		}
		if err := layout.Err(); err != nil && r.cfg.RequireConnected {
			return nil, err
		}
		maps = append(maps, Map{Mode: ModeDungeon, Grid: grid, Layout: layout})
	}

	return maps, nil
}

// Write prints a header line per map followed by its text rendering.
func (res *Result) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, m := range res.Maps {
		if i > 0 {
			bw.WriteByte('\n')
		}
		fmt.Fprintf(bw, "# run=%s mode=%s seed=%d attempts=%d size=%d checksum=%016x",
			res.RunID, m.Mode, res.Seed, res.Attempts, m.Grid.Size(), m.Grid.Checksum())
		switch {
		case m.Cave != nil:
			fmt.Fprintf(bw, " floor=%d regions=%d", m.Cave.FinalFloor, m.Cave.Regions)
		case m.Layout != nil:
			fmt.Fprintf(bw, " rooms=%d halls=%d stranded=%t",
				len(m.Layout.Rooms), len(m.Layout.Halls), m.Layout.Stranded)
		}
		bw.WriteByte('\n')
		if _, err := m.Grid.WriteTo(bw); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Run generates the maps cfg asks for and writes them to w.
func Run(ctx context.Context, cfg Config, w io.Writer, opts ...Option) (*Result, error) {
	res, err := Generate(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := res.Write(w); err != nil {
		return res, fmt.Errorf("writing maps: %w", err)
	}
	return res, nil
}
