package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/flashpuzzle/internal/dependencies/mocks"
	"github.com/mcoot/flashpuzzle/internal/model"
	"github.com/mcoot/flashpuzzle/internal/services/crossword"
	"github.com/mcoot/flashpuzzle/internal/services/selection"
	"github.com/mcoot/flashpuzzle/internal/services/wordsearch"
	"github.com/mcoot/flashpuzzle/internal/storage/memory"
	"github.com/mcoot/flashpuzzle/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	controller *Controller
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.ctx = context.Background()

	logger := testutil.NopLogger()
	s.controller = NewController(
		s.storage,
		selection.New(selection.DefaultConfig()),
		crossword.New(crossword.DefaultConfig(), logger),
		wordsearch.New(wordsearch.DefaultConfig(), logger),
		s.clock,
		s.random,
		DefaultConfig(),
		logger,
	)

	s.saveDeck("pets", "Pets",
		"Feline", "Cat",
		"Vehicle", "Car",
	)
	s.saveDeck("animals", "Animals",
		"Says meow", "Cat",
		"Says woof", "Dog",
		"Has a mane", "Horse",
		"Gives milk", "Goat",
	)
}

// saveDeck stores a deck from alternating front/back pairs
func (s *ControllerSuite) saveDeck(id, name string, pairs ...string) {
	deck := &model.Deck{ID: model.DeckID(id), Name: name, CreatedAt: s.clock.Now()}
	for i := 0; i+1 < len(pairs); i += 2 {
		deck.Cards = append(deck.Cards, model.Flashcard{
			ID:           pairs[i+1],
			FrontContent: pairs[i],
			BackContent:  pairs[i+1],
		})
	}
	s.Require().NoError(s.storage.SaveDeck(s.ctx, deck))
}

func seed(n uint64) *uint64 {
	return &n
}

func eventTypes(events []model.Event) []model.EventType {
	types := make([]model.EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

// fillWord types the solution of a crossword word and collects the events
func (s *ControllerSuite) fillWord(id model.SessionID, word model.PlacedWord) []model.Event {
	var events []model.Event
	runes := []rune(word.Word)
	for i, pos := range word.Cells() {
		_, evs, err := s.controller.EnterLetter(s.ctx, id, pos, runes[i])
		s.Require().NoError(err)
		events = append(events, evs...)
	}
	return events
}

// Create tests

func (s *ControllerSuite) TestCreateCrossword() {
	session, err := s.controller.Create(s.ctx, "pets", model.KindCrossword, seed(7))
	s.Require().NoError(err)

	s.NotEmpty(session.ID)
	s.Equal(model.DeckID("pets"), session.DeckID)
	s.Equal(model.SessionStatePlaying, session.State)
	s.Equal(uint64(7), session.Seed)
	s.Equal(0, session.Generation)
	s.Equal(2, session.Target)
	s.Equal(2, session.Placed)
	s.Require().NotNil(session.Crossword)
	s.Nil(session.WordSearch)
	s.Len(session.Pool, 2)
	s.NoError(crossword.CheckIntegrity(session.Crossword))

	stored, err := s.controller.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(session.ID, stored.ID)
}

func (s *ControllerSuite) TestCreateWordSearch() {
	session, err := s.controller.Create(s.ctx, "animals", model.KindWordSearch, seed(3))
	s.Require().NoError(err)

	s.Equal(model.SessionStatePlaying, session.State)
	s.Require().NotNil(session.WordSearch)
	s.Nil(session.Crossword)
	s.Equal(4, session.Target)
	s.Equal(4, session.Placed)
	s.Equal(10, session.WordSearch.Size)
}

func (s *ControllerSuite) TestCreateDrawsSeedWhenMissing() {
	s.random.QueueUint64(99)

	session, err := s.controller.Create(s.ctx, "pets", model.KindCrossword, nil)
	s.Require().NoError(err)
	s.Equal(uint64(99), session.Seed)
}

func (s *ControllerSuite) TestCreateIsReproducible() {
	a, err := s.controller.Create(s.ctx, "animals", model.KindWordSearch, seed(11))
	s.Require().NoError(err)
	b, err := s.controller.Create(s.ctx, "animals", model.KindWordSearch, seed(11))
	s.Require().NoError(err)

	s.NotEqual(a.ID, b.ID)
	s.Equal(a.WordSearch.Letters, b.WordSearch.Letters)
}

func (s *ControllerSuite) TestCreateErrors() {
	_, err := s.controller.Create(s.ctx, "pets", model.PuzzleKind("sudoku"), nil)
	s.ErrorIs(err, model.ErrInvalidKind)

	_, err = s.controller.Create(s.ctx, "missing", model.KindCrossword, nil)
	s.ErrorIs(err, model.ErrDeckNotFound)

	s.saveDeck("blank", "Blank", "Nothing", " - ")
	_, err = s.controller.Create(s.ctx, "blank", model.KindCrossword, nil)
	s.ErrorIs(err, model.ErrEmptyInput)
}

func (s *ControllerSuite) TestWordSearchDropsLongAnswers() {
	s.saveDeck("long", "Long", "Big river animal", "Hippopotamuses", "Says meow", "Cat")

	session, err := s.controller.Create(s.ctx, "long", model.KindWordSearch, seed(1))
	s.Require().NoError(err)
	s.Require().Len(session.WordSearch.Words, 1)
	s.Equal("CAT", session.WordSearch.Words[0].Answer)

	s.saveDeck("only-long", "Only long", "Big river animal", "Hippopotamuses")
	_, err = s.controller.Create(s.ctx, "only-long", model.KindWordSearch, seed(1))
	s.ErrorIs(err, model.ErrEmptyInput)
}

// Crossword play tests

func (s *ControllerSuite) TestSolveCrossword() {
	session, err := s.controller.Create(s.ctx, "pets", model.KindCrossword, seed(7))
	s.Require().NoError(err)

	first := s.fillWord(session.ID, session.Crossword.Words[0])
	s.Equal([]model.EventType{model.EventWordCompleted}, eventTypes(first))
	s.Equal(0, first[0].Payload.(model.WordCompletedPayload).WordIndex)
	s.Equal(session.ID, first[0].SessionID)

	last := s.fillWord(session.ID, session.Crossword.Words[1])
	s.Equal([]model.EventType{model.EventWordCompleted, model.EventPuzzleCompleted}, eventTypes(last))

	completed := last[1].Payload.(model.PuzzleCompletedPayload)
	s.Equal(model.KindCrossword, completed.Kind)
	s.Equal(2, completed.WordCount)

	stored, err := s.controller.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.SessionStateCompleted, stored.State)
	s.Require().NotNil(stored.CompletedAt)
	s.Equal(s.clock.Now(), *stored.CompletedAt)

	_, _, err = s.controller.EnterLetter(s.ctx, session.ID, session.Crossword.Words[0].Start, 'Z')
	s.ErrorIs(err, model.ErrSessionCompleted)
}

func (s *ControllerSuite) TestWrongLetterClearedAfterDelay() {
	session, err := s.controller.Create(s.ctx, "pets", model.KindCrossword, seed(7))
	s.Require().NoError(err)

	word := session.Crossword.Words[0]
	cells := word.Cells()
	runes := []rune(word.Word)
	last := len(cells) - 1

	for i := 0; i < last; i++ {
		_, _, err := s.controller.EnterLetter(s.ctx, session.ID, cells[i], runes[i])
		s.Require().NoError(err)
	}
	wrong := 'X'
	if runes[last] == wrong {
		wrong = 'Y'
	}
	_, events, err := s.controller.EnterLetter(s.ctx, session.ID, cells[last], wrong)
	s.Require().NoError(err)

	s.Require().Equal([]model.EventType{model.EventCellsRejected}, eventTypes(events))
	payload := events[0].Payload.(model.CellsRejectedPayload)
	s.Equal([]model.Position{cells[last]}, payload.Cells)
	s.Equal(s.clock.Now().Add(800*time.Millisecond), payload.ClearAt)

	s.clock.Advance(500 * time.Millisecond)
	stored, err := s.controller.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.True(stored.Crossword.Cell(cells[last]).IsIncorrect)
	s.Equal(wrong, stored.Crossword.Cell(cells[last]).UserValue)

	s.clock.Advance(300 * time.Millisecond)
	stored, err = s.controller.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Empty(stored.PendingClears)
	s.False(stored.Crossword.Cell(cells[last]).IsIncorrect)
	s.Equal(rune(0), stored.Crossword.Cell(cells[last]).UserValue)
	for i := 0; i < last; i++ {
		s.Equal(runes[i], stored.Crossword.Cell(cells[i]).UserValue)
	}
}

func (s *ControllerSuite) TestRetypedWrongLetterKeepsItsOwnDelay() {
	session, err := s.controller.Create(s.ctx, "pets", model.KindCrossword, seed(7))
	s.Require().NoError(err)

	word := session.Crossword.Words[0]
	cells := word.Cells()
	runes := []rune(word.Word)
	last := len(cells) - 1

	for i := 0; i < last; i++ {
		_, _, err := s.controller.EnterLetter(s.ctx, session.ID, cells[i], runes[i])
		s.Require().NoError(err)
	}
	var wrong []rune
	for _, r := range "XYZ" {
		if r != runes[last] {
			wrong = append(wrong, r)
		}
	}

	_, _, err = s.controller.EnterLetter(s.ctx, session.ID, cells[last], wrong[0])
	s.Require().NoError(err)

	s.clock.Advance(500 * time.Millisecond)
	_, events, err := s.controller.EnterLetter(s.ctx, session.ID, cells[last], wrong[1])
	s.Require().NoError(err)
	s.Require().Equal([]model.EventType{model.EventCellsRejected}, eventTypes(events))

	// The first rejection's deadline passes without touching the new letter
	s.clock.Advance(300 * time.Millisecond)
	stored, err := s.controller.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(wrong[1], stored.Crossword.Cell(cells[last]).UserValue)
	s.True(stored.Crossword.Cell(cells[last]).IsIncorrect)
	s.Len(stored.PendingClears, 1)

	s.clock.Advance(500 * time.Millisecond)
	stored, err = s.controller.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Empty(stored.PendingClears)
	s.Equal(rune(0), stored.Crossword.Cell(cells[last]).UserValue)
}

func (s *ControllerSuite) TestClearLetterDropsPendingClear() {
	session, err := s.controller.Create(s.ctx, "pets", model.KindCrossword, seed(7))
	s.Require().NoError(err)

	word := session.Crossword.Words[0]
	cells := word.Cells()
	runes := []rune(word.Word)
	last := len(cells) - 1

	for i := 0; i < last; i++ {
		_, _, err := s.controller.EnterLetter(s.ctx, session.ID, cells[i], runes[i])
		s.Require().NoError(err)
	}
	wrong := 'X'
	if runes[last] == wrong {
		wrong = 'Y'
	}
	_, _, err = s.controller.EnterLetter(s.ctx, session.ID, cells[last], wrong)
	s.Require().NoError(err)

	cleared, err := s.controller.ClearLetter(s.ctx, session.ID, cells[last])
	s.Require().NoError(err)
	s.Empty(cleared.PendingClears)
}

func (s *ControllerSuite) TestCorrectedLetterSurvivesClear() {
	session, err := s.controller.Create(s.ctx, "pets", model.KindCrossword, seed(7))
	s.Require().NoError(err)

	word := session.Crossword.Words[0]
	cells := word.Cells()
	runes := []rune(word.Word)
	last := len(cells) - 1

	for i := 0; i < last; i++ {
		_, _, err := s.controller.EnterLetter(s.ctx, session.ID, cells[i], runes[i])
		s.Require().NoError(err)
	}
	wrong := 'X'
	if runes[last] == wrong {
		wrong = 'Y'
	}
	_, _, err = s.controller.EnterLetter(s.ctx, session.ID, cells[last], wrong)
	s.Require().NoError(err)

	_, events, err := s.controller.EnterLetter(s.ctx, session.ID, cells[last], runes[last])
	s.Require().NoError(err)
	s.Contains(eventTypes(events), model.EventWordCompleted)

	s.clock.Advance(time.Second)
	stored, err := s.controller.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(runes[last], stored.Crossword.Cell(cells[last]).UserValue)
	s.True(stored.Crossword.Words[0].IsCompleted)
}

func (s *ControllerSuite) TestClearLetter() {
	session, err := s.controller.Create(s.ctx, "pets", model.KindCrossword, seed(7))
	s.Require().NoError(err)

	pos := session.Crossword.Words[1].Cells()[1]
	_, _, err = s.controller.EnterLetter(s.ctx, session.ID, pos, 'Q')
	s.Require().NoError(err)

	updated, err := s.controller.ClearLetter(s.ctx, session.ID, pos)
	s.Require().NoError(err)
	s.False(updated.Crossword.Cell(pos).IsFilled())
}

func (s *ControllerSuite) TestCrosswordInputErrors() {
	session, err := s.controller.Create(s.ctx, "pets", model.KindCrossword, seed(7))
	s.Require().NoError(err)

	_, _, err = s.controller.EnterLetter(s.ctx, session.ID, model.Position{Row: 99, Col: 0}, 'A')
	s.ErrorIs(err, model.ErrInvalidPosition)

	_, _, err = s.controller.EnterLetter(s.ctx, session.ID, session.Crossword.Words[0].Start, '?')
	s.ErrorIs(err, model.ErrInvalidLetter)

	_, _, err = s.controller.Select(s.ctx, session.ID, model.Position{}, model.Position{})
	s.ErrorIs(err, model.ErrWrongPuzzleKind)

	_, _, err = s.controller.EnterLetter(s.ctx, "missing", model.Position{}, 'A')
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Word-search play tests

func (s *ControllerSuite) TestSolveWordSearch() {
	session, err := s.controller.Create(s.ctx, "animals", model.KindWordSearch, seed(3))
	s.Require().NoError(err)

	words := session.WordSearch.Words
	for i, w := range words {
		cells := w.Cells()
		_, events, err := s.controller.Select(s.ctx, session.ID, cells[0], cells[len(cells)-1])
		s.Require().NoError(err)

		s.Equal(model.EventWordFound, events[0].Type)
		found := events[0].Payload.(model.WordFoundPayload)
		s.Equal(i, found.WordIndex)
		s.Equal(w.Answer, found.Answer)
		s.Equal(cells, found.Path)

		if i == len(words)-1 {
			s.Equal([]model.EventType{model.EventWordFound, model.EventPuzzleCompleted}, eventTypes(events))
		} else {
			s.Len(events, 1)
		}
	}

	stored, err := s.controller.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.SessionStateCompleted, stored.State)
	s.True(stored.WordSearch.IsComplete())
}

func (s *ControllerSuite) TestRejectedSelectionClears() {
	session, err := s.controller.Create(s.ctx, "animals", model.KindWordSearch, seed(3))
	s.Require().NoError(err)

	start := model.Position{Row: 0, Col: 0}
	end := model.Position{Row: 1, Col: 2}
	updated, events, err := s.controller.Select(s.ctx, session.ID, start, end)
	s.Require().NoError(err)

	s.Equal([]model.EventType{model.EventSelectionRejected}, eventTypes(events))
	s.Require().NotNil(updated.Rejected)
	s.Equal([]model.Position{start, end}, updated.Rejected.Path)

	s.clock.Advance(999 * time.Millisecond)
	stored, err := s.controller.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.NotNil(stored.Rejected)

	s.clock.Advance(time.Millisecond)
	stored, err = s.controller.Get(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Nil(stored.Rejected)
}

func (s *ControllerSuite) TestWordSearchInputErrors() {
	session, err := s.controller.Create(s.ctx, "animals", model.KindWordSearch, seed(3))
	s.Require().NoError(err)

	_, _, err = s.controller.Select(s.ctx, session.ID, model.Position{}, model.Position{Row: 10, Col: 0})
	s.ErrorIs(err, model.ErrInvalidPosition)

	_, _, err = s.controller.EnterLetter(s.ctx, session.ID, model.Position{}, 'A')
	s.ErrorIs(err, model.ErrWrongPuzzleKind)

	_, err = s.controller.ClearLetter(s.ctx, session.ID, model.Position{})
	s.ErrorIs(err, model.ErrWrongPuzzleKind)
}

// Restart and delete tests

func (s *ControllerSuite) TestRestart() {
	session, err := s.controller.Create(s.ctx, "pets", model.KindCrossword, seed(7))
	s.Require().NoError(err)
	s.fillWord(session.ID, session.Crossword.Words[0])

	restarted, events, err := s.controller.Restart(s.ctx, session.ID, seed(8))
	s.Require().NoError(err)

	s.Equal(1, restarted.Generation)
	s.Equal(uint64(8), restarted.Seed)
	s.Equal(model.SessionStatePlaying, restarted.State)
	s.Equal(0, restarted.Crossword.CompletedCount())
	s.Require().Equal([]model.EventType{model.EventPuzzleRestarted}, eventTypes(events))

	payload := events[0].Payload.(model.PuzzleRestartedPayload)
	s.Equal(1, payload.Generation)
	s.Equal(uint64(8), payload.Seed)
	s.Equal(restarted.Placed, payload.Placed)
}

func (s *ControllerSuite) TestRestartAfterCompletion() {
	session, err := s.controller.Create(s.ctx, "pets", model.KindCrossword, seed(7))
	s.Require().NoError(err)
	s.fillWord(session.ID, session.Crossword.Words[0])
	s.fillWord(session.ID, session.Crossword.Words[1])

	s.random.QueueUint64(1234)
	restarted, _, err := s.controller.Restart(s.ctx, session.ID, nil)
	s.Require().NoError(err)

	s.Equal(model.SessionStatePlaying, restarted.State)
	s.Nil(restarted.CompletedAt)
	s.Equal(uint64(1234), restarted.Seed)
}

func (s *ControllerSuite) TestDelete() {
	session, err := s.controller.Create(s.ctx, "pets", model.KindCrossword, seed(7))
	s.Require().NoError(err)

	s.Require().NoError(s.controller.Delete(s.ctx, session.ID))

	_, err = s.controller.Get(s.ctx, session.ID)
	s.ErrorIs(err, model.ErrSessionNotFound)

	s.ErrorIs(s.controller.Delete(s.ctx, session.ID), model.ErrSessionNotFound)
}
