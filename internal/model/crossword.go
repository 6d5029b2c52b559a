package model

// CrosswordCell is a single square of a crossword grid
type CrosswordCell struct {
	Position
	Letter      rune  // Solution letter, 0 for a blank spacer
	OwningWords []int // Indices into Crossword.Words, empty when blank
	IsStart     bool  // First letter of at least one word
	Number      int   // Clue number, 0 when the cell starts no word

	// Play state
	UserValue   rune
	IsCorrect   bool
	IsIncorrect bool
}

// IsBlank returns true if no word passes through the cell
func (c *CrosswordCell) IsBlank() bool {
	return c.Letter == 0
}

// IsFilled returns true if the player has entered a letter
func (c *CrosswordCell) IsFilled() bool {
	return c.UserValue != 0
}

// PlacedWord is a word committed to a crossword grid
type PlacedWord struct {
	Word        string
	Clue        string
	Start       Position
	Direction   Direction
	Number      int
	IsCompleted bool
}

// Cells returns the positions spelled by the word in reading order
func (w *PlacedWord) Cells() []Position {
	return Path(w.Start, w.Direction, len([]rune(w.Word)))
}

// Crossword is a generated crossword puzzle together with its play state
type Crossword struct {
	Size  int
	Cells [][]CrosswordCell // Row-major: Cells[row][col]
	Words []PlacedWord
}

// Cell returns the cell at the given position, or nil when out of bounds
func (c *Crossword) Cell(pos Position) *CrosswordCell {
	if !pos.InBounds(c.Size) {
		return nil
	}
	return &c.Cells[pos.Row][pos.Col]
}

// CompletedCount returns the number of completed words
func (c *Crossword) CompletedCount() int {
	count := 0
	for _, w := range c.Words {
		if w.IsCompleted {
			count++
		}
	}
	return count
}

// IsComplete returns true once every word has been completed
func (c *Crossword) IsComplete() bool {
	return len(c.Words) > 0 && c.CompletedCount() == len(c.Words)
}
