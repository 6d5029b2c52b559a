// Package selection turns flashcards into word entries ready for a generator.
package selection

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mcoot/flashpuzzle/internal/dependencies/random"
	"github.com/mcoot/flashpuzzle/internal/model"
)

// Config caps how many words each puzzle kind receives
type Config struct {
	MaxCrosswordWords  int
	MaxWordSearchWords int
}

// DefaultConfig returns the selection defaults
func DefaultConfig() Config {
	return Config{
		MaxCrosswordWords:  8,
		MaxWordSearchWords: 12,
	}
}

// Selector picks the words for a puzzle
type Selector struct {
	cfg Config
}

// New creates a new Selector
func New(cfg Config) *Selector {
	return &Selector{cfg: cfg}
}

// Normalize upper-cases an answer and drops everything that is not a letter
// or digit, so "ice-cream cone" becomes "ICECREAMCONE"
func Normalize(answer string) string {
	var sb strings.Builder
	for _, r := range answer {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToUpper(r))
		}
	}
	return sb.String()
}

// Entries converts cards into word entries, skipping cards whose answer
// normalizes to nothing
func Entries(cards []model.Flashcard) ([]model.WordEntry, error) {
	entries := make([]model.WordEntry, 0, len(cards))
	for _, c := range cards {
		word := Normalize(c.BackContent)
		if word == "" {
			continue
		}
		entries = append(entries, model.WordEntry{
			Word: word,
			Clue: strings.TrimSpace(c.FrontContent),
		})
	}
	if len(entries) == 0 {
		return nil, model.ErrEmptyInput
	}
	return entries, nil
}

// Select picks the entries for one puzzle. Crosswords get a random sample of
// up to MaxCrosswordWords; word searches keep the pool order up to
// MaxWordSearchWords.
func (s *Selector) Select(pool []model.WordEntry, kind model.PuzzleKind, rnd random.Random) ([]model.WordEntry, error) {
	if len(pool) == 0 {
		return nil, model.ErrEmptyInput
	}

	switch kind {
	case model.KindCrossword:
		return sample(pool, s.cfg.MaxCrosswordWords, rnd), nil
	case model.KindWordSearch:
		n := min(len(pool), s.cfg.MaxWordSearchWords)
		return append([]model.WordEntry(nil), pool[:n]...), nil
	default:
		return nil, model.ErrInvalidKind
	}
}

// FitTo drops entries longer than maxLen
func FitTo(pool []model.WordEntry, maxLen int) []model.WordEntry {
	fitted := make([]model.WordEntry, 0, len(pool))
	for _, e := range pool {
		if utf8.RuneCountInString(e.Word) <= maxLen {
			fitted = append(fitted, e)
		}
	}
	return fitted
}

// sample returns up to n entries chosen uniformly with a partial Fisher-Yates
// shuffle over a copy of pool
func sample(pool []model.WordEntry, n int, rnd random.Random) []model.WordEntry {
	shuffled := append([]model.WordEntry(nil), pool...)
	n = min(n, len(shuffled))
	for i := 0; i < n; i++ {
		j := i + rnd.Intn(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:n]
}
