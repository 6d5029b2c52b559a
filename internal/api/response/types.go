package response

import (
	"time"

	"github.com/mcoot/flashpuzzle/internal/model"
)

// Flashcard represents a card in API responses
type Flashcard struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Deck represents a deck in API responses
type Deck struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Cards     []Flashcard `json:"cards"`
	CreatedAt time.Time   `json:"created_at"`
}

// DeckFromModel converts model.Deck
func DeckFromModel(d *model.Deck) Deck {
	cards := make([]Flashcard, len(d.Cards))
	for i, c := range d.Cards {
		cards[i] = Flashcard{ID: c.ID, Front: c.FrontContent, Back: c.BackContent}
	}
	return Deck{
		ID:        string(d.ID),
		Name:      d.Name,
		Cards:     cards,
		CreatedAt: d.CreatedAt,
	}
}

// DeckSummary is a deck without its cards
type DeckSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CardCount int       `json:"card_count"`
	CreatedAt time.Time `json:"created_at"`
}

// DeckList is the response for listing decks
type DeckList struct {
	Decks []DeckSummary `json:"decks"`
}

// DeckListFromModel converts a slice of decks
func DeckListFromModel(decks []*model.Deck) DeckList {
	out := make([]DeckSummary, len(decks))
	for i, d := range decks {
		out[i] = DeckSummary{
			ID:        string(d.ID),
			Name:      d.Name,
			CardCount: len(d.Cards),
			CreatedAt: d.CreatedAt,
		}
	}
	return DeckList{Decks: out}
}

// CrosswordCell is one cell of a crossword grid. Solution letters are never
// sent; Blank marks spacer cells.
type CrosswordCell struct {
	Blank       bool   `json:"blank,omitempty"`
	Number      int    `json:"number,omitempty"`
	Value       string `json:"value,omitempty"`
	IsCorrect   bool   `json:"is_correct,omitempty"`
	IsIncorrect bool   `json:"is_incorrect,omitempty"`
}

// Clue is one crossword clue
type Clue struct {
	Number    int            `json:"number"`
	Direction string         `json:"direction"`
	Clue      string         `json:"clue"`
	Length    int            `json:"length"`
	Start     model.Position `json:"start"`
	Completed bool           `json:"completed"`
	Answer    string         `json:"answer,omitempty"`
}

// Crossword is the player view of a crossword
type Crossword struct {
	Size   int               `json:"size"`
	Cells  [][]CrosswordCell `json:"cells"`
	Across []Clue            `json:"across"`
	Down   []Clue            `json:"down"`
}

// CrosswordFromModel converts model.Crossword. Answers are only revealed for
// completed words.
func CrosswordFromModel(c *model.Crossword) *Crossword {
	cells := make([][]CrosswordCell, c.Size)
	for row := range cells {
		cells[row] = make([]CrosswordCell, c.Size)
		for col := range cells[row] {
			cell := &c.Cells[row][col]
			if cell.IsBlank() {
				cells[row][col] = CrosswordCell{Blank: true}
				continue
			}
			out := CrosswordCell{
				Number:      cell.Number,
				IsCorrect:   cell.IsCorrect,
				IsIncorrect: cell.IsIncorrect,
			}
			if cell.IsFilled() {
				out.Value = string(cell.UserValue)
			}
			cells[row][col] = out
		}
	}

	across := []Clue{}
	down := []Clue{}
	for _, w := range c.Words {
		clue := Clue{
			Number:    w.Number,
			Direction: string(w.Direction),
			Clue:      w.Clue,
			Length:    len([]rune(w.Word)),
			Start:     w.Start,
			Completed: w.IsCompleted,
		}
		if w.IsCompleted {
			clue.Answer = w.Word
		}
		if w.Direction == model.DirectionAcross {
			across = append(across, clue)
		} else {
			down = append(down, clue)
		}
	}

	return &Crossword{Size: c.Size, Cells: cells, Across: across, Down: down}
}

// SearchWord is one word-search entry
type SearchWord struct {
	Question string `json:"question"`
	Length   int    `json:"length"`
	Found    bool   `json:"found"`
	Answer   string `json:"answer,omitempty"`
}

// WordSearch is the player view of a word search
type WordSearch struct {
	Size       int              `json:"size"`
	Letters    []string         `json:"letters"`
	Words      []SearchWord     `json:"words"`
	FoundCells []model.Position `json:"found_cells"`
}

// WordSearchFromModel converts model.WordSearch. Answers are only revealed
// once found.
func WordSearchFromModel(ws *model.WordSearch) *WordSearch {
	letters := make([]string, ws.Size)
	for row := range letters {
		letters[row] = string(ws.Letters[row])
	}
	words := make([]SearchWord, len(ws.Words))
	for i, w := range ws.Words {
		words[i] = SearchWord{
			Question: w.Question,
			Length:   len([]rune(w.Answer)),
			Found:    w.Found,
		}
		if w.Found {
			words[i].Answer = w.Answer
		}
	}
	found := ws.FoundCells
	if found == nil {
		found = []model.Position{}
	}
	return &WordSearch{Size: ws.Size, Letters: letters, Words: words, FoundCells: found}
}

// Rejected is a highlighted selection waiting to be cleared
type Rejected struct {
	Path    []model.Position `json:"path"`
	ClearAt time.Time        `json:"clear_at"`
}

// PendingClear is a set of incorrect cells waiting to be cleared
type PendingClear struct {
	Cells   []model.Position `json:"cells"`
	ClearAt time.Time        `json:"clear_at"`
}

// Session represents a puzzle session in API responses
type Session struct {
	ID            string         `json:"id"`
	DeckID        string         `json:"deck_id"`
	Kind          string         `json:"kind"`
	State         string         `json:"state"`
	Seed          uint64         `json:"seed"`
	Generation    int            `json:"generation"`
	Target        int            `json:"target"`
	Placed        int            `json:"placed"`
	Crossword     *Crossword     `json:"crossword,omitempty"`
	WordSearch    *WordSearch    `json:"wordsearch,omitempty"`
	PendingClears []PendingClear `json:"pending_clears,omitempty"`
	Rejected      *Rejected      `json:"rejected,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
}

// SessionFromModel converts model.Session
func SessionFromModel(s *model.Session) Session {
	out := Session{
		ID:          string(s.ID),
		DeckID:      string(s.DeckID),
		Kind:        string(s.Kind),
		State:       string(s.State),
		Seed:        s.Seed,
		Generation:  s.Generation,
		Target:      s.Target,
		Placed:      s.Placed,
		CreatedAt:   s.CreatedAt,
		CompletedAt: s.CompletedAt,
	}
	if s.Crossword != nil {
		out.Crossword = CrosswordFromModel(s.Crossword)
	}
	if s.WordSearch != nil {
		out.WordSearch = WordSearchFromModel(s.WordSearch)
	}
	for _, pc := range s.PendingClears {
		out.PendingClears = append(out.PendingClears, PendingClear{Cells: pc.Cells, ClearAt: pc.ClearAt})
	}
	if s.Rejected != nil {
		out.Rejected = &Rejected{Path: s.Rejected.Path, ClearAt: s.Rejected.ClearAt}
	}
	return out
}

// Event is a session event as pushed to SSE clients and returned from
// mutating endpoints
type Event struct {
	Type      string    `json:"type"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// WordCompleted is the payload of a word_completed event
type WordCompleted struct {
	WordIndex int    `json:"word_index"`
	Word      string `json:"word"`
	Number    int    `json:"number"`
	Direction string `json:"direction"`
}

// CellsRejected is the payload of a cells_rejected event
type CellsRejected struct {
	WordIndex int              `json:"word_index"`
	Cells     []model.Position `json:"cells"`
	ClearAt   time.Time        `json:"clear_at"`
}

// WordFound is the payload of a word_found event
type WordFound struct {
	WordIndex int              `json:"word_index"`
	Answer    string           `json:"answer"`
	Path      []model.Position `json:"path"`
}

// SelectionRejected is the payload of a selection_rejected event
type SelectionRejected struct {
	Path    []model.Position `json:"path"`
	ClearAt time.Time        `json:"clear_at"`
}

// PuzzleCompleted is the payload of a puzzle_completed event
type PuzzleCompleted struct {
	Kind      string `json:"kind"`
	WordCount int    `json:"word_count"`
}

// PuzzleRestarted is the payload of a puzzle_restarted event
type PuzzleRestarted struct {
	Generation int    `json:"generation"`
	Seed       uint64 `json:"seed"`
	Placed     int    `json:"placed"`
	Target     int    `json:"target"`
}

// EventFromModel converts model.Event
func EventFromModel(e model.Event) Event {
	out := Event{
		Type:      string(e.Type),
		SessionID: string(e.SessionID),
		Timestamp: e.Timestamp,
	}
	switch p := e.Payload.(type) {
	case model.WordCompletedPayload:
		out.Payload = WordCompleted{p.WordIndex, p.Word, p.Number, string(p.Direction)}
	case model.CellsRejectedPayload:
		out.Payload = CellsRejected{p.WordIndex, p.Cells, p.ClearAt}
	case model.WordFoundPayload:
		out.Payload = WordFound{p.WordIndex, p.Answer, p.Path}
	case model.SelectionRejectedPayload:
		out.Payload = SelectionRejected{p.Path, p.ClearAt}
	case model.PuzzleCompletedPayload:
		out.Payload = PuzzleCompleted{string(p.Kind), p.WordCount}
	case model.PuzzleRestartedPayload:
		out.Payload = PuzzleRestarted{p.Generation, p.Seed, p.Placed, p.Target}
	}
	return out
}

// EventsFromModel converts a slice of events, never returning nil
func EventsFromModel(events []model.Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = EventFromModel(e)
	}
	return out
}

// SessionUpdate is the response for mutating session endpoints
type SessionUpdate struct {
	Session Session `json:"session"`
	Events  []Event `json:"events"`
}

// Health is the response for the health endpoint
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
