package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/flashpuzzle/internal/dependencies/random"
	"github.com/mcoot/flashpuzzle/internal/model"
	"github.com/mcoot/flashpuzzle/internal/services/crossword"
	"github.com/mcoot/flashpuzzle/internal/services/deck"
	"github.com/mcoot/flashpuzzle/internal/services/selection"
	"github.com/mcoot/flashpuzzle/internal/services/wordsearch"
)

func newGenerateCmd() *cobra.Command {
	var (
		deckFile string
		seed     uint64
		size     int
	)

	cmd := &cobra.Command{
		Use:   "generate <crossword|wordsearch>",
		Short: "Generate a puzzle locally from a deck file",
		Long: `Generate a crossword or word search from a YAML or JSON deck file
without contacting a server. The solution grid is printed together with the
clues. Pass --seed to reproduce a previous grid.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(model.KindCrossword), string(model.KindWordSearch)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := model.PuzzleKind(args[0])
			if !kind.IsValid() {
				return fmt.Errorf("unknown puzzle kind %q", args[0])
			}

			file, err := deck.ReadFile(deckFile)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("seed") {
				seed = random.New().Uint64()
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}

			puzzle, err := generatePuzzle(cmd.Context(), file, kind, seed, size, logger)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(*puzzle)
			return nil
		},
	}

	cmd.Flags().StringVarP(&deckFile, "deck", "d", "", "Deck file (YAML or JSON)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Generation seed (default: random)")
	cmd.Flags().IntVar(&size, "size", 0, "Grid size (word search side, or crossword minimum)")
	_ = cmd.MarkFlagRequired("deck")

	return cmd
}

// GeneratedWord is one placed word with its solution
type GeneratedWord struct {
	Number    int            `json:"number,omitempty"`
	Answer    string         `json:"answer"`
	Clue      string         `json:"clue"`
	Direction string         `json:"direction"`
	Start     model.Position `json:"start"`
}

// GeneratedPuzzle is a locally generated puzzle with its solution
type GeneratedPuzzle struct {
	Kind     string          `json:"kind"`
	Seed     uint64          `json:"seed"`
	Size     int             `json:"size"`
	Grid     []string        `json:"grid"`
	Words    []GeneratedWord `json:"words"`
	Unplaced []string        `json:"unplaced,omitempty"`
}

// generatePuzzle runs the same selection and generation a server session
// would, using a seeded source so results are reproducible
func generatePuzzle(ctx context.Context, file *deck.File, kind model.PuzzleKind, seed uint64, size int, logger *slog.Logger) (*GeneratedPuzzle, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	pool, err := selection.Entries(file.Flashcards())
	if err != nil {
		return nil, err
	}
	rnd := random.NewSeeded(seed)
	selector := selection.New(selection.DefaultConfig())

	switch kind {
	case model.KindCrossword:
		cwCfg := crossword.DefaultConfig()
		if size > 0 {
			cwCfg.MinGridSize = size
		}
		entries, err := selector.Select(pool, kind, rnd)
		if err != nil {
			return nil, err
		}

		res, err := crossword.New(cwCfg, logger).Generate(ctx, entries, rnd)
		var exhausted *crossword.PlacementExhaustedError
		if err != nil && !errors.As(err, &exhausted) {
			return nil, err
		}
		puzzle := crosswordPuzzle(res.Crossword, rnd.Seed())
		if exhausted != nil {
			puzzle.Unplaced = exhausted.Unplaced
		}
		return puzzle, nil

	case model.KindWordSearch:
		wsCfg := wordsearch.DefaultConfig()
		if size > 0 {
			wsCfg.GridSize = size
		}
		entries, err := selector.Select(selection.FitTo(pool, wsCfg.GridSize), kind, rnd)
		if err != nil {
			return nil, err
		}

		res, err := wordsearch.New(wsCfg, logger).Generate(ctx, entries, rnd)
		if err != nil {
			return nil, err
		}
		return wordSearchPuzzle(res.WordSearch, rnd.Seed()), nil

	default:
		return nil, model.ErrInvalidKind
	}
}

func crosswordPuzzle(cw *model.Crossword, seed uint64) *GeneratedPuzzle {
	grid := make([]string, cw.Size)
	for row := range grid {
		var sb strings.Builder
		for col := 0; col < cw.Size; col++ {
			cell := cw.Cells[row][col]
			if cell.IsBlank() {
				sb.WriteRune('#')
			} else {
				sb.WriteRune(cell.Letter)
			}
		}
		grid[row] = sb.String()
	}

	words := make([]GeneratedWord, len(cw.Words))
	for i, w := range cw.Words {
		words[i] = GeneratedWord{
			Number:    w.Number,
			Answer:    w.Word,
			Clue:      w.Clue,
			Direction: string(w.Direction),
			Start:     w.Start,
		}
	}

	return &GeneratedPuzzle{
		Kind:  string(model.KindCrossword),
		Seed:  seed,
		Size:  cw.Size,
		Grid:  grid,
		Words: words,
	}
}

func wordSearchPuzzle(ws *model.WordSearch, seed uint64) *GeneratedPuzzle {
	grid := make([]string, ws.Size)
	for row := range grid {
		grid[row] = string(ws.Letters[row])
	}

	words := make([]GeneratedWord, len(ws.Words))
	for i, w := range ws.Words {
		words[i] = GeneratedWord{
			Answer:    w.Answer,
			Clue:      w.Question,
			Direction: string(w.Direction),
			Start:     w.Start,
		}
	}

	return &GeneratedPuzzle{
		Kind:  string(model.KindWordSearch),
		Seed:  seed,
		Size:  ws.Size,
		Grid:  grid,
		Words: words,
	}
}
