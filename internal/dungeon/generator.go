package dungeon

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/tilegen/internal/telemetry"
	"github.com/samdwyer/tilegen/internal/world"
)

// Layout is a generated dungeon: the carved grid plus the room and hall
// structure behind it.
type Layout struct {
	Grid        *world.Grid
	Rooms       []Room // Ordered by ID
	Halls       []Hall // In acceptance order
	Stranded    bool   // Some room could not be joined; see Unconnected
	Unconnected []int  // Ids of rooms outside room 0's network
	Moves       int    // Compaction steps taken
}

// Err returns a wrapped ErrStrandedRoom when the layout is under-connected,
// nil otherwise.
func (l *Layout) Err() error {
	if !l.Stranded {
		return nil
	}
	return fmt.Errorf("dungeon: rooms %v unreachable from room 0: %w", l.Unconnected, world.ErrStrandedRoom)
}

// RoomIndexAt returns the index of the room whose interior holds the
// position, or -1 if none does.
func (l *Layout) RoomIndexAt(x, y int) int {
	for i, room := range l.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Generator builds dungeons into a grid.
type Generator struct {
	cfg    Config
	rng    *rand.Rand
	logger logr.Logger

	roomsPlaced   metric.Int64Counter
	hallsAccepted metric.Int64Counter
	failures      metric.Int64Counter
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for progress messages.
func WithLogger(l logr.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// New creates a dungeon generator drawing from rng.
func New(rng *rand.Rand, cfg Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:           cfg.withDefaults(),
		rng:           rng,
		logger:        logr.Discard(),
		roomsPlaced:   telemetry.Counter("dungeon", "tilegen.rooms.placed", "Rooms accepted by the packer"),
		hallsAccepted: telemetry.Counter("dungeon", "tilegen.halls.accepted", "Halls accepted by the planner"),
		failures:      telemetry.Counter("dungeon", "tilegen.generation.failures", "Generations that hit a retry cap"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config returns the effective configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate clears grid and builds a dungeon in it: sample rooms, compact
// them, carve them, then join them with halls.
//
// A stranded room is not an error; check Layout.Stranded or Layout.Err.
// ErrGenerationFailed is returned only when fewer than MinRooms rooms fit.
func (g *Generator) Generate(ctx context.Context, grid *world.Grid) (*Layout, error) {
	tracer := telemetry.Tracer("dungeon")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()
	size := grid.Size()
	grid.Clear()

	packer := NewPacker(size, g.cfg.Offset, g.cfg.MaxAttempts, g.rng)
	rooms := packer.Sample(g.cfg.NumRooms)
	g.roomsPlaced.Add(ctx, int64(len(rooms)))

	if len(rooms) < g.cfg.MinRooms {
		err := fmt.Errorf("dungeon: placed %d of %d rooms, need at least %d: %w",
			len(rooms), g.cfg.NumRooms, g.cfg.MinRooms, world.ErrGenerationFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("generator", "dungeon")))
		g.logger.Info("dungeon generation failed", "error", err)
		return nil, err
	}

	moves := packer.Compact(rooms)
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	Place(grid, rooms)
	g.logger.V(1).Info("rooms placed", "rooms", len(rooms), "moves", moves)

	planner := NewPlanner(grid, rooms, g.cfg.maxHallLength(), g.rng)
	plan := planner.Connect()
	g.hallsAccepted.Add(ctx, int64(len(plan.Halls)))

	layout := &Layout{
		Grid:        grid,
		Rooms:       rooms,
		Halls:       plan.Halls,
		Stranded:    plan.Stranded,
		Unconnected: plan.Unconnected,
		Moves:       moves,
	}

	span.SetAttributes(
		attribute.Int("dungeon.size", size),
		attribute.Int("dungeon.room_target", g.cfg.NumRooms),
		attribute.Int("dungeon.room_count", len(rooms)),
		attribute.Int("dungeon.hall_count", len(plan.Halls)),
		attribute.Int("dungeon.compaction_moves", moves),
		attribute.Int("dungeon.selection_rounds", plan.Rounds),
		attribute.Bool("dungeon.stranded", plan.Stranded),
		attribute.Int("dungeon.groups", plan.Groups),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)

	if plan.Stranded {
		g.logger.Info("stranded room", "unconnected", plan.Unconnected, "groups", plan.Groups, "halls", len(plan.Halls))
	}
	return layout, nil
}
