package cave

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/tilegen/internal/telemetry"
	"github.com/samdwyer/tilegen/internal/world"
)

// Stats describes one cave generation.
type Stats struct {
	SeedFloor     int // Floor cells after the random fill
	SmoothedFloor int // Floor cells after the automaton
	FinalFloor    int // Floor cells after pruning
	Regions       int // Regions flooded while pruning
	Samples       int // Random draws spent looking for unflooded floor
}

// Generator fills a grid with a cave. It holds no per-grid state, so one
// Generator can be reused for many grids as long as calls are not concurrent
// (they share the random stream).
type Generator struct {
	cfg      Config
	rng      *rand.Rand
	logger   logr.Logger
	failures metric.Int64Counter
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for progress messages.
func WithLogger(l logr.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// New creates a cave generator drawing from rng.
func New(rng *rand.Rand, cfg Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:      cfg.withDefaults(),
		rng:      rng,
		logger:   logr.Discard(),
		failures: telemetry.Counter("cave", "tilegen.generation.failures", "Generations that hit a retry cap"),
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

// Generate clears grid and carves a cave into it.
//
// On ErrGenerationFailed the grid holds the smoothed but unpruned cave.
func (g *Generator) Generate(ctx context.Context, grid *world.Grid) (Stats, error) {
	tracer := telemetry.Tracer("cave")
	ctx, span := tracer.Start(ctx, "cave.generate")
	defer span.End()

	startTime := time.Now()
	var stats Stats

	grid.Clear()
	cells := grid.Cells()
	size := grid.Size()

	g.fill(cells, size)
	stats.SeedFloor = countFloor(cells)

	cells = g.smooth(cells, size)
	stats.SmoothedFloor = countFloor(cells)

	err := g.prune(cells, size, &stats)
	for i, t := range cells {
		grid.SetIndex(i, t)
	}
	stats.FinalFloor = grid.Count(world.Floor)

	span.SetAttributes(
		attribute.Int("cave.size", size),
		attribute.Int("cave.percent_wall", g.cfg.PercentWall),
		attribute.String("cave.pruning", g.cfg.Pruning.String()),
		attribute.Int("cave.floor_seed", stats.SeedFloor),
		attribute.Int("cave.floor_smoothed", stats.SmoothedFloor),
		attribute.Int("cave.floor_final", stats.FinalFloor),
		attribute.Int("cave.regions", stats.Regions),
		attribute.Int("cave.samples", stats.Samples),
		attribute.Int64("cave.generation_ms", time.Since(startTime).Milliseconds()),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("generator", "cave")))
		g.logger.Info("cave generation failed", "error", err, "smoothedFloor", stats.SmoothedFloor)
		return stats, err
	}

	g.logger.V(1).Info("cave generated", "floor", stats.FinalFloor, "regions", stats.Regions, "samples", stats.Samples)
	return stats, nil
}

// fill seeds every interior cell with floor at (100-PercentWall)% odds.
// The outer ring stays wall.
func (g *Generator) fill(cells []world.Tile, size int) {
	for y := 1; y < size-1; y++ {
		for x := 1; x < size-1; x++ {
			if g.rng.Intn(100) >= g.cfg.PercentWall {
				cells[y*size+x] = world.Floor
			}
		}
	}
}

// smooth runs the automaton. Each pass reads cur and writes next, then the
// buffers swap, so no cell sees a neighbour updated in the same pass.
func (g *Generator) smooth(cells []world.Tile, size int) []world.Tile {
	cur := cells
	next := make([]world.Tile, len(cells))
	copy(next, cells)

	for i := 0; i < g.cfg.SmoothIterations; i++ {
		for y := 1; y < size-1; y++ {
			for x := 1; x < size-1; x++ {
				if wallsAround(cur, size, x, y) >= g.cfg.WallThreshold {
					next[y*size+x] = world.Wall
				} else {
					next[y*size+x] = world.Floor
				}
			}
		}
		cur, next = next, cur
	}
	return cur
}

// wallsAround counts walls in the 3x3 window centred on (x, y), the centre
// included.
func wallsAround(cells []world.Tile, size, x, y int) int {
	n := 0
	for yy := -1; yy <= 1; yy++ {
		row := (y + yy) * size
		for xx := -1; xx <= 1; xx++ {
			if cells[row+x+xx] == world.Wall {
				n++
			}
		}
	}
	return n
}

// prune floods regions from random unvisited floor until the coverage
// target is met, then walls off every floor cell that was not kept.
func (g *Generator) prune(cells []world.Tile, size int, stats *Stats) error {
	total := size * size
	floor := countFloor(cells)
	if !exceeds(floor, total, g.cfg.Coverage) {
		return fmt.Errorf("cave: %d of %d cells are floor, need more than %d%%: %w",
			floor, total, g.cfg.Coverage, world.ErrGenerationFailed)
	}

	visited := make([]bool, total)
	keep := make([]bool, total)
	var (
		best       []int
		kept       int
		unfloodedN = floor
	)

	for {
		switch g.cfg.Pruning {
		case PruneCumulative:
			if exceeds(kept, total, g.cfg.Coverage) {
				applyKeep(cells, keep)
				return nil
			}
		default:
			if exceeds(len(best), total, g.cfg.Coverage) {
				for _, i := range best {
					keep[i] = true
				}
				applyKeep(cells, keep)
				return nil
			}
			// No region left to flood can be big enough.
			if !exceeds(unfloodedN, total, g.cfg.Coverage) {
				return fmt.Errorf("cave: largest region has %d of %d cells after %d regions: %w",
					len(best), total, stats.Regions, world.ErrGenerationFailed)
			}
		}

		start, ok := g.sampleUnflooded(cells, visited, size, stats)
		if !ok {
			return fmt.Errorf("cave: no unflooded floor found in %d samples: %w",
				g.cfg.MaxSamples, world.ErrGenerationFailed)
		}

		region := flood(cells, visited, size, start)
		stats.Regions++
		unfloodedN -= len(region)

		if g.cfg.Pruning == PruneCumulative {
			for _, i := range region {
				keep[i] = true
			}
			kept += len(region)
		} else if len(region) > len(best) {
			best = region
		}
	}
}

// sampleUnflooded draws uniformly from the interior rows until it hits a
// floor cell that no flood has reached yet.
func (g *Generator) sampleUnflooded(cells []world.Tile, visited []bool, size int, stats *Stats) (int, bool) {
	span := size * (size - 2)
	if span <= 0 {
		return 0, false
	}
	for stats.Samples < g.cfg.MaxSamples {
		stats.Samples++
		i := g.rng.Intn(span) + size
		if cells[i] == world.Floor && !visited[i] {
			return i, true
		}
	}
	return 0, false
}

// flood marks and returns the 4-connected floor region containing start.
// It uses an explicit stack; the outer wall ring keeps every step in bounds.
func flood(cells []world.Tile, visited []bool, size, start int) []int {
	var region []int
	stack := []int{start}
	visited[start] = true

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		region = append(region, i)

		for _, n := range [4]int{i - size, i + 1, i + size, i - 1} {
			if !visited[n] && cells[n] == world.Floor {
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}
	return region
}

func applyKeep(cells []world.Tile, keep []bool) {
	for i, t := range cells {
		if t == world.Floor && !keep[i] {
			cells[i] = world.Wall
		}
	}
}

func countFloor(cells []world.Tile) int {
	n := 0
	for _, t := range cells {
		if t == world.Floor {
			n++
		}
	}
	return n
}

// exceeds reports whether n is strictly more than pct percent of total.
func exceeds(n, total, pct int) bool {
	return n*100 > pct*total
}
