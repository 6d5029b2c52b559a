package crossword

import (
	"unicode"

	"github.com/mcoot/flashpuzzle/internal/model"
)

// Rejection lists the wrongly filled cells of a fully filled word
type Rejection struct {
	WordIndex int
	Cells     []model.Position
}

// Outcome is what a single keystroke changed
type Outcome struct {
	Completed       []int // Words completed by this keystroke
	Rejected        []Rejection
	PuzzleCompleted bool
}

// ValidateLetter checks that a player's input is a single letter or digit
func ValidateLetter(letter rune) error {
	if !unicode.IsLetter(letter) && !unicode.IsDigit(letter) {
		return model.ErrInvalidLetter
	}
	return nil
}

// EnterLetter records a player's letter and validates every word through pos
func EnterLetter(cw *model.Crossword, pos model.Position, letter rune) (Outcome, error) {
	cell, err := playableCell(cw, pos)
	if err != nil {
		return Outcome{}, err
	}
	if err := ValidateLetter(letter); err != nil {
		return Outcome{}, err
	}
	if cell.IsCorrect {
		// Completed cells keep their value
		return Outcome{}, nil
	}

	cell.UserValue = unicode.ToUpper(letter)
	cell.IsIncorrect = false

	return validateWords(cw, cell.OwningWords), nil
}

// ClearLetter removes a player's letter from pos
func ClearLetter(cw *model.Crossword, pos model.Position) error {
	cell, err := playableCell(cw, pos)
	if err != nil {
		return err
	}
	if cell.IsCorrect {
		return nil
	}
	cell.UserValue = 0
	cell.IsIncorrect = false
	return nil
}

// ClearIncorrect erases input from the given cells that are still flagged
// incorrect. Cells corrected in the meantime are left alone.
func ClearIncorrect(cw *model.Crossword, cells []model.Position) int {
	cleared := 0
	for _, pos := range cells {
		cell := cw.Cell(pos)
		if cell == nil || !cell.IsIncorrect {
			continue
		}
		cell.UserValue = 0
		cell.IsIncorrect = false
		cleared++
	}
	return cleared
}

func playableCell(cw *model.Crossword, pos model.Position) (*model.CrosswordCell, error) {
	cell := cw.Cell(pos)
	if cell == nil {
		return nil, model.ErrInvalidPosition
	}
	if cell.IsBlank() {
		return nil, model.ErrBlankCell
	}
	return cell, nil
}

// validateWords checks each listed word once it is fully filled
func validateWords(cw *model.Crossword, wordIndices []int) Outcome {
	var out Outcome

	for _, idx := range wordIndices {
		word := &cw.Words[idx]
		if word.IsCompleted {
			continue
		}

		cells := word.Cells()
		filled := true
		var wrong []model.Position
		for _, pos := range cells {
			cell := cw.Cell(pos)
			if !cell.IsFilled() {
				filled = false
				break
			}
			if cell.UserValue != cell.Letter {
				wrong = append(wrong, pos)
			}
		}
		if !filled {
			continue
		}

		if len(wrong) == 0 {
			word.IsCompleted = true
			for _, pos := range cells {
				c := cw.Cell(pos)
				c.IsCorrect = true
				c.IsIncorrect = false
			}
			out.Completed = append(out.Completed, idx)
			continue
		}

		for _, pos := range wrong {
			cw.Cell(pos).IsIncorrect = true
		}
		out.Rejected = append(out.Rejected, Rejection{WordIndex: idx, Cells: wrong})
	}

	out.PuzzleCompleted = len(out.Completed) > 0 && cw.IsComplete()
	return out
}
