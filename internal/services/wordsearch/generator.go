package wordsearch

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode"

	"github.com/mcoot/flashpuzzle/internal/dependencies/random"
	"github.com/mcoot/flashpuzzle/internal/metrics"
	"github.com/mcoot/flashpuzzle/internal/model"
)

// Config holds the grid size and attempt caps of the word-search generator
type Config struct {
	GridSize           int
	MaxAttemptsPerWord int // Random start/direction tries per word per pass
	MaxRestarts        int // Full-grid restarts before giving up
}

// DefaultConfig returns the generator defaults
func DefaultConfig() Config {
	return Config{
		GridSize:           10,
		MaxAttemptsPerWord: 500,
		MaxRestarts:        10,
	}
}

// UnplaceableWordError reports a word that could not be hidden in the grid
type UnplaceableWordError struct {
	Word     string
	GridSize int
	Attempts int
}

func (e *UnplaceableWordError) Error() string {
	if e.Attempts == 0 {
		return fmt.Sprintf("word %q is longer than the %dx%d grid", e.Word, e.GridSize, e.GridSize)
	}
	return fmt.Sprintf("could not place %q in a %dx%d grid after %d attempts", e.Word, e.GridSize, e.GridSize, e.Attempts)
}

// Result is the outcome of a generation run
type Result struct {
	WordSearch *model.WordSearch
	Attempts   int // Placement tries across every word and restart
	Restarts   int
}

// Generator hides words in a grid of filler letters
type Generator struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a new word-search Generator
func New(cfg Config, logger *slog.Logger) *Generator {
	return &Generator{cfg: cfg, logger: logger}
}

// Size returns the configured side length
func (g *Generator) Size() int {
	return g.cfg.GridSize
}

// Generate places every entry along one of the word-search directions and
// fills the rest of the grid with random A-Z letters.
func (g *Generator) Generate(ctx context.Context, entries []model.WordEntry, rnd random.Random) (*Result, error) {
	if len(entries) == 0 {
		return nil, model.ErrEmptyInput
	}

	started := time.Now()
	size := g.cfg.GridSize
	kind := string(model.KindWordSearch)

	words := make([][]rune, len(entries))
	for i, e := range entries {
		words[i] = []rune(e.Word)
		for j, r := range words[i] {
			words[i][j] = unicode.ToUpper(r)
		}
		if len(words[i]) > size {
			metrics.ObserveGeneration(kind, metrics.OutcomeFailed, time.Since(started))
			return nil, &UnplaceableWordError{Word: e.Word, GridSize: size}
		}
	}

	var (
		letters  [][]rune
		placed   []model.SearchWord
		attempts int
		failed   = -1
		failures = make(map[int]int)
	)

	restarts := 0
	for ; restarts <= g.cfg.MaxRestarts; restarts++ {
		if err := ctx.Err(); err != nil {
			metrics.ObserveGeneration(kind, metrics.OutcomeCancelled, time.Since(started))
			return nil, err
		}

		letters = newLetters(size)
		placed = placed[:0]
		failed = -1

		for i, word := range words {
			sw, tries, ok := g.place(letters, word, rnd)
			attempts += tries
			if !ok {
				failed = i
				failures[i] += tries
				break
			}
			sw.Question = entries[i].Clue
			placed = append(placed, sw)
		}
		if failed < 0 {
			break
		}

		g.logger.Debug("word search restart",
			slog.Int("restart", restarts),
			slog.String("word", entries[failed].Word),
		)
	}

	metrics.ObserveWordSearchAttempts(attempts)

	if failed >= 0 {
		metrics.ObserveGeneration(kind, metrics.OutcomeFailed, time.Since(started))
		g.logger.Warn("word search placement failed",
			slog.String("word", entries[failed].Word),
			slog.Int("attempts", failures[failed]),
		)
		return nil, &UnplaceableWordError{
			Word:     entries[failed].Word,
			GridSize: size,
			Attempts: failures[failed],
		}
	}

	fill(letters, rnd)

	metrics.ObserveGeneration(kind, metrics.OutcomeOK, time.Since(started))
	g.logger.Info("word search generated",
		slog.Int("grid_size", size),
		slog.Int("words", len(placed)),
		slog.Int("attempts", attempts),
	)

	return &Result{
		WordSearch: &model.WordSearch{
			Size:       size,
			Letters:    letters,
			Words:      placed,
			FoundCells: []model.Position{},
		},
		Attempts: attempts,
		Restarts: restarts,
	}, nil
}

// place tries random directions and starts until the word fits
func (g *Generator) place(letters [][]rune, word []rune, rnd random.Random) (model.SearchWord, int, bool) {
	size := len(letters)
	n := len(word)
	dirs := model.WordSearchDirections()

	for attempt := 1; attempt <= g.cfg.MaxAttemptsPerWord; attempt++ {
		dir := dirs[rnd.Intn(len(dirs))]
		dr, dc := dir.Delta()
		start := model.Position{
			Row: startIn(rnd, size, n, dr),
			Col: startIn(rnd, size, n, dc),
		}
		if !canPlace(letters, word, start, dir) {
			continue
		}

		for i, pos := range model.Path(start, dir, n) {
			letters[pos.Row][pos.Col] = word[i]
		}
		return model.SearchWord{
			Answer:    string(word),
			Start:     start,
			Direction: dir,
		}, attempt, true
	}

	return model.SearchWord{}, g.cfg.MaxAttemptsPerWord, false
}

// startIn picks a start coordinate so a word of length n stays on the grid
// along an axis stepping by d
func startIn(rnd random.Random, size, n, d int) int {
	switch {
	case d > 0:
		return rnd.Intn(size - n + 1)
	case d < 0:
		return n - 1 + rnd.Intn(size-n+1)
	default:
		return rnd.Intn(size)
	}
}

// canPlace checks bounds and that every cell is empty or already holds the
// same letter
func canPlace(letters [][]rune, word []rune, start model.Position, dir model.Direction) bool {
	size := len(letters)
	for i, pos := range model.Path(start, dir, len(word)) {
		if !pos.InBounds(size) {
			return false
		}
		if existing := letters[pos.Row][pos.Col]; existing != 0 && existing != word[i] {
			return false
		}
	}
	return true
}

func newLetters(size int) [][]rune {
	letters := make([][]rune, size)
	for i := range letters {
		letters[i] = make([]rune, size)
	}
	return letters
}

// fill puts uniform random A-Z letters in every empty cell
func fill(letters [][]rune, rnd random.Random) {
	for row := range letters {
		for col := range letters[row] {
			if letters[row][col] == 0 {
				letters[row][col] = 'A' + rune(rnd.Intn(26))
			}
		}
	}
}
