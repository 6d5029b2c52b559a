package crossword

import (
	"errors"
	"unicode"

	"github.com/mcoot/flashpuzzle/internal/model"
)

// Placement rejection reasons returned by TryPlace
var (
	ErrInvalidDirection = errors.New("crossword words run across or down")
	ErrOutOfBounds      = errors.New("word extends outside the grid")
	ErrLetterConflict   = errors.New("cell already holds a different letter")
	ErrAdjacentLetter   = errors.New("word touches a neighbouring letter")
	ErrWordRunOn        = errors.New("word runs into an adjacent letter")
	ErrParallelOverlap  = errors.New("word overlaps a word running the same way")
	ErrNoOwnCells       = errors.New("word lies entirely on existing letters")
)

// Placement is a legal candidate position for a word
type Placement struct {
	Word          []rune
	Start         model.Position
	Direction     model.Direction
	Intersections int
}

// Score rates the placement: 1 for a standalone word, plus one per shared cell.
// A zero score never leaves TryPlace.
func (p Placement) Score() int {
	return p.Intersections + 1
}

// Grid owns the letters and words of a crossword under construction
type Grid struct {
	size       int
	letters    [][]rune
	owners     [][][]int
	words      []model.PlacedWord
	numbers    map[model.Position]int
	nextNumber int
}

// NewGrid creates an empty square grid
func NewGrid(size int) *Grid {
	g := &Grid{size: size}
	g.Reset()
	return g
}

// Reset wipes every letter and word from the grid
func (g *Grid) Reset() {
	g.letters = make([][]rune, g.size)
	g.owners = make([][][]int, g.size)
	for i := range g.letters {
		g.letters[i] = make([]rune, g.size)
		g.owners[i] = make([][]int, g.size)
	}
	g.words = nil
	g.numbers = make(map[model.Position]int)
	g.nextNumber = 0
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.size)
	for row := 0; row < g.size; row++ {
		copy(c.letters[row], g.letters[row])
		for col := 0; col < g.size; col++ {
			if len(g.owners[row][col]) > 0 {
				c.owners[row][col] = append([]int(nil), g.owners[row][col]...)
			}
		}
	}
	c.words = append([]model.PlacedWord(nil), g.words...)
	for pos, n := range g.numbers {
		c.numbers[pos] = n
	}
	c.nextNumber = g.nextNumber
	return c
}

// Size returns the side length of the grid
func (g *Grid) Size() int {
	return g.size
}

// WordCount returns the number of committed words
func (g *Grid) WordCount() int {
	return len(g.words)
}

// Words returns a copy of the committed words in placement order
func (g *Grid) Words() []model.PlacedWord {
	return append([]model.PlacedWord(nil), g.words...)
}

// LetterAt returns the letter at pos, or 0 if empty or off-grid
func (g *Grid) LetterAt(pos model.Position) rune {
	if !pos.InBounds(g.size) {
		return 0
	}
	return g.letters[pos.Row][pos.Col]
}

// isOpen treats off-grid positions as empty
func (g *Grid) isOpen(pos model.Position) bool {
	return g.LetterAt(pos) == 0
}

// ownedAlong returns true if a word running in dir already covers pos
func (g *Grid) ownedAlong(pos model.Position, dir model.Direction) bool {
	for _, idx := range g.owners[pos.Row][pos.Col] {
		if g.words[idx].Direction == dir {
			return true
		}
	}
	return false
}

// TryPlace checks whether word can start at start running in dir.
// The grid is not modified; a returned Placement can be passed to Commit.
func (g *Grid) TryPlace(word string, start model.Position, dir model.Direction) (Placement, error) {
	if dir != model.DirectionAcross && dir != model.DirectionDown {
		return Placement{}, ErrInvalidDirection
	}

	runes := []rune(word)
	for i, r := range runes {
		runes[i] = unicode.ToUpper(r)
	}
	n := len(runes)
	dr, dc := dir.Delta()
	end := start.Add(dr*(n-1), dc*(n-1))
	if n == 0 || !start.InBounds(g.size) || !end.InBounds(g.size) {
		return Placement{}, ErrOutOfBounds
	}

	// The cells just before and after the word must stay empty
	if !g.isOpen(start.Add(-dr, -dc)) || !g.isOpen(end.Add(dr, dc)) {
		return Placement{}, ErrWordRunOn
	}

	// Perpendicular step, e.g. above/below for an across word
	pr, pc := dc, dr

	intersections := 0
	for i, r := range runes {
		pos := start.Add(dr*i, dc*i)
		existing := g.letters[pos.Row][pos.Col]
		if existing != 0 {
			if existing != r {
				return Placement{}, ErrLetterConflict
			}
			if g.ownedAlong(pos, dir) {
				return Placement{}, ErrParallelOverlap
			}
			intersections++
			continue
		}
		if !g.isOpen(pos.Add(pr, pc)) || !g.isOpen(pos.Add(-pr, -pc)) {
			return Placement{}, ErrAdjacentLetter
		}
	}

	if intersections == n {
		return Placement{}, ErrNoOwnCells
	}

	return Placement{
		Word:          runes,
		Start:         start,
		Direction:     dir,
		Intersections: intersections,
	}, nil
}

// Score returns the placement score for word at start/dir, or 0 if illegal
func (g *Grid) Score(word string, start model.Position, dir model.Direction) int {
	p, err := g.TryPlace(word, start, dir)
	if err != nil {
		return 0
	}
	return p.Score()
}

// Commit writes a placement into the grid and registers the word.
// The start cell reuses an existing clue number if another word starts there.
func (g *Grid) Commit(p Placement, clue string) model.PlacedWord {
	idx := len(g.words)
	dr, dc := p.Direction.Delta()
	for i, r := range p.Word {
		pos := p.Start.Add(dr*i, dc*i)
		g.letters[pos.Row][pos.Col] = r
		g.owners[pos.Row][pos.Col] = append(g.owners[pos.Row][pos.Col], idx)
	}

	number, ok := g.numbers[p.Start]
	if !ok {
		g.nextNumber++
		number = g.nextNumber
		g.numbers[p.Start] = number
	}

	word := model.PlacedWord{
		Word:      string(p.Word),
		Clue:      clue,
		Start:     p.Start,
		Direction: p.Direction,
		Number:    number,
	}
	g.words = append(g.words, word)
	return word
}

// Crossword converts the grid into a playable puzzle
func (g *Grid) Crossword() *model.Crossword {
	cells := make([][]model.CrosswordCell, g.size)
	for row := 0; row < g.size; row++ {
		cells[row] = make([]model.CrosswordCell, g.size)
		for col := 0; col < g.size; col++ {
			pos := model.Position{Row: row, Col: col}
			number, isStart := g.numbers[pos]
			cells[row][col] = model.CrosswordCell{
				Position:    pos,
				Letter:      g.letters[row][col],
				OwningWords: append([]int{}, g.owners[row][col]...),
				IsStart:     isStart,
				Number:      number,
			}
		}
	}
	return &model.Crossword{
		Size:  g.size,
		Cells: cells,
		Words: g.Words(),
	}
}
