package crossword

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/mcoot/flashpuzzle/internal/dependencies/random"
	"github.com/mcoot/flashpuzzle/internal/metrics"
	"github.com/mcoot/flashpuzzle/internal/model"
)

// Config holds the size and retry budget of the crossword generator
type Config struct {
	// MinGridSize is the smallest side length ever used
	MinGridSize int
	// OuterIterations bounds the number of full placement passes
	OuterIterations int
	// RandomAttempts bounds the random fallback per word when nothing intersects
	RandomAttempts int
}

// DefaultConfig returns the generator defaults
func DefaultConfig() Config {
	return Config{
		MinGridSize:     10,
		OuterIterations: 100,
		RandomAttempts:  100,
	}
}

// PlacementExhaustedError reports that the retry budget ran out before every
// word found a place. The accompanying Result still holds a playable grid.
type PlacementExhaustedError struct {
	Placed   int
	Target   int
	Unplaced []string
}

func (e *PlacementExhaustedError) Error() string {
	return fmt.Sprintf("placed %d of %d words before exhausting attempts", e.Placed, e.Target)
}

// Result is the outcome of a generation run
type Result struct {
	Crossword *model.Crossword
	Placed    int
	Target    int
	Restarts  int
	Unplaced  []model.WordEntry
}

// Generator builds crossword grids from word entries
type Generator struct {
	cfg      Config
	searcher *Searcher
	logger   *slog.Logger
}

// New creates a new crossword Generator
func New(cfg Config, logger *slog.Logger) *Generator {
	return &Generator{
		cfg:      cfg,
		searcher: NewSearcher(cfg.RandomAttempts),
		logger:   logger,
	}
}

// GridSize returns the side length used for the given entries
func GridSize(entries []model.WordEntry, minSize int) int {
	longest := 0
	for _, e := range entries {
		if n := utf8.RuneCountInString(e.Word); n > longest {
			longest = n
		}
	}
	return max(minSize, 2*longest)
}

// Generate places every entry it can. The first entry is fixed at the centre
// running across; each full pass that leaves words unplaced wipes the grid and
// starts over. When the budget runs out the best attempt is returned together
// with a *PlacementExhaustedError.
func (g *Generator) Generate(ctx context.Context, entries []model.WordEntry, rnd random.Random) (*Result, error) {
	if len(entries) == 0 {
		return nil, model.ErrEmptyInput
	}

	started := time.Now()
	size := GridSize(entries, g.cfg.MinGridSize)
	target := len(entries)

	grid := NewGrid(size)
	placed := make([]bool, target)
	if err := g.placeFirst(grid, entries[0], placed); err != nil {
		return nil, err
	}

	best := grid.Clone()
	bestPlaced := append([]bool(nil), placed...)
	restarts := 0

	for iter := 0; iter < g.cfg.OuterIterations; iter++ {
		if err := ctx.Err(); err != nil {
			metrics.ObserveGeneration(string(model.KindCrossword), metrics.OutcomeCancelled, time.Since(started))
			return nil, err
		}

		for i, entry := range entries {
			if placed[i] {
				continue
			}
			if p, ok := g.searcher.Best(grid, entry.Word, rnd); ok {
				grid.Commit(p, entry.Clue)
				placed[i] = true
			}
		}

		if grid.WordCount() > best.WordCount() {
			best = grid.Clone()
			bestPlaced = append(bestPlaced[:0], placed...)
		}
		if grid.WordCount() == target {
			break
		}

		restarts++
		g.logger.Debug("crossword restart",
			slog.Int("iteration", iter),
			slog.Int("placed", grid.WordCount()),
			slog.Int("target", target),
		)
		grid.Reset()
		clear(placed)
		if err := g.placeFirst(grid, entries[0], placed); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Crossword: best.Crossword(),
		Placed:    best.WordCount(),
		Target:    target,
		Restarts:  restarts,
	}
	for i, ok := range bestPlaced {
		if !ok {
			result.Unplaced = append(result.Unplaced, entries[i])
		}
	}

	metrics.ObserveCrosswordRestarts(restarts)

	if result.Placed < target {
		unplaced := make([]string, len(result.Unplaced))
		for i, e := range result.Unplaced {
			unplaced[i] = e.Word
		}
		metrics.ObserveGeneration(string(model.KindCrossword), metrics.OutcomePartial, time.Since(started))
		g.logger.Warn("crossword placement exhausted",
			slog.Int("placed", result.Placed),
			slog.Int("target", target),
			slog.Int("restarts", restarts),
		)
		return result, &PlacementExhaustedError{
			Placed:   result.Placed,
			Target:   target,
			Unplaced: unplaced,
		}
	}

	metrics.ObserveGeneration(string(model.KindCrossword), metrics.OutcomeOK, time.Since(started))
	g.logger.Info("crossword generated",
		slog.Int("grid_size", size),
		slog.Int("words", result.Placed),
		slog.Int("restarts", restarts),
	)
	return result, nil
}

// placeFirst puts the first entry in the middle of the grid, running across
func (g *Generator) placeFirst(grid *Grid, entry model.WordEntry, placed []bool) error {
	n := utf8.RuneCountInString(entry.Word)
	start := model.Position{Row: grid.Size() / 2, Col: (grid.Size() - n) / 2}

	p, err := grid.TryPlace(entry.Word, start, model.DirectionAcross)
	if err != nil {
		return fmt.Errorf("placing first word %q: %w", entry.Word, err)
	}
	grid.Commit(p, entry.Clue)
	placed[0] = true
	return nil
}
