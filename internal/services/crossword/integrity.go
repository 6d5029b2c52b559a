package crossword

import (
	"fmt"
	"slices"

	"github.com/mcoot/flashpuzzle/internal/model"
)

// CheckIntegrity verifies the structural invariants of a generated crossword:
// every word is spelled by its cells, lettered cells are owned, blank cells
// are not, and no word runs flush into another letter at either end.
func CheckIntegrity(cw *model.Crossword) error {
	owned := make(map[model.Position]int)

	for idx, w := range cw.Words {
		runes := []rune(w.Word)
		for i, pos := range w.Cells() {
			cell := cw.Cell(pos)
			if cell == nil {
				return fmt.Errorf("word %d (%s) leaves the grid at %v", idx, w.Word, pos)
			}
			if cell.Letter != runes[i] {
				return fmt.Errorf("word %d (%s) expects %q at %v, grid has %q", idx, w.Word, runes[i], pos, cell.Letter)
			}
			if !slices.Contains(cell.OwningWords, idx) {
				return fmt.Errorf("cell %v does not list owner %d", pos, idx)
			}
			owned[pos]++
		}

		dr, dc := w.Direction.Delta()
		before := w.Start.Add(-dr, -dc)
		after := w.Start.Add(dr*len(runes), dc*len(runes))
		for _, pos := range []model.Position{before, after} {
			if c := cw.Cell(pos); c != nil && !c.IsBlank() {
				return fmt.Errorf("word %d (%s) runs into a letter at %v", idx, w.Word, pos)
			}
		}

		start := cw.Cell(w.Start)
		if !start.IsStart || start.Number != w.Number {
			return fmt.Errorf("word %d (%s) start cell not numbered %d", idx, w.Word, w.Number)
		}
	}

	for row := range cw.Cells {
		for col := range cw.Cells[row] {
			cell := &cw.Cells[row][col]
			if cell.OwningWords == nil {
				return fmt.Errorf("cell %v has nil owners", cell.Position)
			}
			if !cell.IsBlank() && owned[cell.Position] == 0 {
				return fmt.Errorf("cell %v holds %q but no word", cell.Position, cell.Letter)
			}
			if cell.IsBlank() && len(cell.OwningWords) > 0 {
				return fmt.Errorf("blank cell %v has owners", cell.Position)
			}
		}
	}

	return nil
}

