package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcoot/flashpuzzle/internal/api/response"
	"github.com/mcoot/flashpuzzle/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Deck:
		o.printDeck(v)
	case response.DeckList:
		o.printDeckList(v)
	case response.Session:
		o.printSession(v)
	case response.SessionUpdate:
		o.printSessionUpdate(v)
	case response.Health:
		o.printHealth(v)
	case GeneratedPuzzle:
		o.printGeneratedPuzzle(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printDeck(d response.Deck) {
	fmt.Fprintf(o.w, "Deck: %s (%s)\n", d.Name, d.ID)
	fmt.Fprintf(o.w, "Cards (%d):\n", len(d.Cards))
	for _, c := range d.Cards {
		fmt.Fprintf(o.w, "  - %s => %s\n", c.Front, c.Back)
	}
}

func (o *Output) printDeckList(l response.DeckList) {
	if len(l.Decks) == 0 {
		fmt.Fprintln(o.w, "No decks")
		return
	}
	for _, d := range l.Decks {
		fmt.Fprintf(o.w, "%s  %s (%d cards)\n", d.ID, d.Name, d.CardCount)
	}
}

func (o *Output) printSession(s response.Session) {
	fmt.Fprintf(o.w, "Session: %s\n", s.ID)
	fmt.Fprintf(o.w, "Kind: %s\n", s.Kind)
	fmt.Fprintf(o.w, "State: %s\n", s.State)
	fmt.Fprintf(o.w, "Seed: %d (generation %d)\n", s.Seed, s.Generation)
	fmt.Fprintf(o.w, "Placed: %d of %d\n", s.Placed, s.Target)

	if s.Crossword != nil {
		o.printCrossword(s.Crossword)
	}
	if s.WordSearch != nil {
		o.printWordSearch(s.WordSearch, s.Rejected)
	}
}

func (o *Output) printSessionUpdate(u response.SessionUpdate) {
	for _, e := range u.Events {
		fmt.Fprintf(o.w, "* %s\n", describeUpdateEvent(e))
	}
	if len(u.Events) > 0 {
		fmt.Fprintln(o.w)
	}
	o.printSession(u.Session)
}

// describeUpdateEvent summarises an event returned inside a SessionUpdate
func describeUpdateEvent(e response.Event) string {
	data, err := json.Marshal(e)
	if err != nil {
		return e.Type
	}
	return e.Type + ": " + describeEvent(e.Type, string(data))
}

func (o *Output) printCrossword(cw *response.Crossword) {
	fmt.Fprintln(o.w)
	o.printGrid(cw.Size, func(row, col int) string {
		cell := cw.Cells[row][col]
		switch {
		case cell.Blank:
			return "#"
		case cell.Value != "" && cell.IsIncorrect:
			return strings.ToLower(cell.Value)
		case cell.Value != "":
			return cell.Value
		default:
			return "."
		}
	})

	printClues := func(title string, clues []response.Clue) {
		if len(clues) == 0 {
			return
		}
		fmt.Fprintf(o.w, "\n%s:\n", title)
		for _, c := range clues {
			status := ""
			if c.Completed {
				status = fmt.Sprintf(" [%s]", c.Answer)
			}
			fmt.Fprintf(o.w, "  %d. %s (%d)%s\n", c.Number, c.Clue, c.Length, status)
		}
	}
	printClues("Across", cw.Across)
	printClues("Down", cw.Down)
}

func (o *Output) printWordSearch(ws *response.WordSearch, rejected *response.Rejected) {
	found := make(map[model.Position]bool, len(ws.FoundCells))
	for _, p := range ws.FoundCells {
		found[p] = true
	}

	fmt.Fprintln(o.w)
	o.printGrid(ws.Size, func(row, col int) string {
		letter := string([]rune(ws.Letters[row])[col])
		if found[model.Position{Row: row, Col: col}] {
			return letter
		}
		return strings.ToLower(letter)
	})

	fmt.Fprintln(o.w, "\nWords:")
	for _, w := range ws.Words {
		mark := "[ ]"
		answer := ""
		if w.Found {
			mark = "[x]"
			answer = " - " + w.Answer
		}
		fmt.Fprintf(o.w, "  %s %s (%d)%s\n", mark, w.Question, w.Length, answer)
	}

	if rejected != nil {
		fmt.Fprintf(o.w, "\nRejected selection of %d cells\n", len(rejected.Path))
	}
}

// printGrid draws a bordered grid with row and column headers
func (o *Output) printGrid(size int, cell func(row, col int) string) {
	fmt.Fprint(o.w, "    ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(o.w, "%2d ", col)
	}
	fmt.Fprintln(o.w)

	border := "   +" + strings.Repeat("---", size) + "+"
	fmt.Fprintln(o.w, border)
	for row := 0; row < size; row++ {
		fmt.Fprintf(o.w, "%2d |", row)
		for col := 0; col < size; col++ {
			fmt.Fprintf(o.w, " %s ", cell(row, col))
		}
		fmt.Fprintln(o.w, "|")
	}
	fmt.Fprintln(o.w, border)
}

func (o *Output) printGeneratedPuzzle(p GeneratedPuzzle) {
	fmt.Fprintf(o.w, "%s (seed %d)\n\n", p.Kind, p.Seed)
	o.printGrid(p.Size, func(row, col int) string {
		return string([]rune(p.Grid[row])[col])
	})

	fmt.Fprintln(o.w)
	for _, w := range p.Words {
		if w.Number > 0 {
			fmt.Fprintf(o.w, "%2d %-6s %s: %s\n", w.Number, w.Direction, w.Clue, w.Answer)
		} else {
			fmt.Fprintf(o.w, "(%d,%d) %-10s %s: %s\n", w.Start.Row, w.Start.Col, w.Direction, w.Clue, w.Answer)
		}
	}
	if len(p.Unplaced) > 0 {
		fmt.Fprintf(o.w, "\nCould not place: %s\n", strings.Join(p.Unplaced, ", "))
	}
}

func (o *Output) printHealth(h response.Health) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Storage != "" {
		fmt.Fprintf(o.w, "Storage: %s\n", h.Storage)
	}
}
