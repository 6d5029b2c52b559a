package model

// SearchWord is an answer hidden in a word-search grid
type SearchWord struct {
	Question  string
	Answer    string
	Start     Position
	Direction Direction
	Found     bool
}

// Cells returns the positions covered by the answer
func (w *SearchWord) Cells() []Position {
	return Path(w.Start, w.Direction, len([]rune(w.Answer)))
}

// WordSearch is a generated word-search puzzle together with its play state
type WordSearch struct {
	Size    int
	Letters [][]rune // Fully filled, Letters[row][col]
	Words   []SearchWord

	// FoundCells are highlighted permanently once their word is found
	FoundCells []Position
}

// LetterAt returns the letter at the given position, or 0 when out of bounds
func (w *WordSearch) LetterAt(pos Position) rune {
	if !pos.InBounds(w.Size) {
		return 0
	}
	return w.Letters[pos.Row][pos.Col]
}

// FoundCount returns the number of words found so far
func (w *WordSearch) FoundCount() int {
	count := 0
	for _, word := range w.Words {
		if word.Found {
			count++
		}
	}
	return count
}

// IsComplete returns true once every word has been found
func (w *WordSearch) IsComplete() bool {
	return len(w.Words) > 0 && w.FoundCount() == len(w.Words)
}
