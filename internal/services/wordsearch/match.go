package wordsearch

import (
	"strings"

	"github.com/mcoot/flashpuzzle/internal/model"
)

// MatchResult describes the outcome of a player's selection
type MatchResult struct {
	Found           bool
	WordIndex       int // Valid only when Found
	Path            []model.Position
	PuzzleCompleted bool
}

// LinePath returns the cells from start to end inclusive when they lie on a
// horizontal, vertical or 45-degree diagonal line
func LinePath(start, end model.Position) ([]model.Position, bool) {
	dr := end.Row - start.Row
	dc := end.Col - start.Col
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return nil, false
	}

	steps := max(abs(dr), abs(dc))
	stepR, stepC := sign(dr), sign(dc)
	path := make([]model.Position, steps+1)
	for i := range path {
		path[i] = start.Add(stepR*i, stepC*i)
	}
	return path, true
}

// Match checks the letters from start to end against the answers not yet
// found. A match marks the word found and highlights its path; anything else
// returns Found false with the rejected path.
func Match(ws *model.WordSearch, start, end model.Position) (MatchResult, error) {
	if !start.InBounds(ws.Size) || !end.InBounds(ws.Size) {
		return MatchResult{}, model.ErrInvalidPosition
	}

	path, ok := LinePath(start, end)
	if !ok {
		return MatchResult{Path: []model.Position{start, end}}, nil
	}

	var sb strings.Builder
	for _, pos := range path {
		sb.WriteRune(ws.LetterAt(pos))
	}
	selected := sb.String()

	for i := range ws.Words {
		word := &ws.Words[i]
		if word.Found || !strings.EqualFold(word.Answer, selected) {
			continue
		}
		word.Found = true
		ws.FoundCells = append(ws.FoundCells, path...)
		return MatchResult{
			Found:           true,
			WordIndex:       i,
			Path:            path,
			PuzzleCompleted: ws.IsComplete(),
		}, nil
	}

	return MatchResult{Path: path}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
