package deck

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/flashpuzzle/internal/dependencies/mocks"
	"github.com/mcoot/flashpuzzle/internal/model"
	"github.com/mcoot/flashpuzzle/internal/storage/memory"
	"github.com/mcoot/flashpuzzle/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	clock   *mocks.MockClock
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = NewService(memory.New(), s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func capitals() []model.Flashcard {
	return []model.Flashcard{
		{FrontContent: "Capital of France", BackContent: "Paris"},
		{ID: "jp", FrontContent: "Capital of Japan", BackContent: "Tokyo"},
	}
}

func (s *ServiceSuite) TestCreateDeck() {
	deck, err := s.service.CreateDeck(s.ctx, "  Capitals ", capitals())
	s.Require().NoError(err)

	s.NotEmpty(deck.ID)
	s.Equal("Capitals", deck.Name)
	s.Equal(s.clock.Now(), deck.CreatedAt)
	s.Require().Len(deck.Cards, 2)
	s.NotEmpty(deck.Cards[0].ID)
	s.Equal("jp", deck.Cards[1].ID)

	stored, err := s.service.GetDeck(s.ctx, deck.ID)
	s.Require().NoError(err)
	s.Equal(deck.Cards, stored.Cards)
}

func (s *ServiceSuite) TestCreateDeckValidation() {
	_, err := s.service.CreateDeck(s.ctx, " ", capitals())
	s.ErrorIs(err, model.ErrInvalidDeck)

	_, err = s.service.CreateDeck(s.ctx, "Empty", nil)
	s.ErrorIs(err, model.ErrEmptyInput)
}

func (s *ServiceSuite) TestCreateDeckDoesNotMutateInput() {
	cards := capitals()
	_, err := s.service.CreateDeck(s.ctx, "Capitals", cards)
	s.Require().NoError(err)
	s.Empty(cards[0].ID)
}

func (s *ServiceSuite) TestListDecks() {
	first, err := s.service.CreateDeck(s.ctx, "First", capitals())
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	second, err := s.service.CreateDeck(s.ctx, "Second", capitals())
	s.Require().NoError(err)

	decks, err := s.service.ListDecks(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(decks, 2)
	s.Equal(first.ID, decks[0].ID)
	s.Equal(second.ID, decks[1].ID)
}

func (s *ServiceSuite) TestDeleteDeck() {
	deck, err := s.service.CreateDeck(s.ctx, "Capitals", capitals())
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteDeck(s.ctx, deck.ID))

	_, err = s.service.GetDeck(s.ctx, deck.ID)
	s.ErrorIs(err, model.ErrDeckNotFound)

	s.ErrorIs(s.service.DeleteDeck(s.ctx, deck.ID), model.ErrDeckNotFound)
}

func (s *ServiceSuite) TestLoadFromFile() {
	path := filepath.Join(s.T().TempDir(), "animals.yaml")
	content := `name: Animals
cards:
  - front: Says meow
    back: Cat
  - id: dog
    front: Says woof
    back: Dog
`
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	deck, err := s.service.LoadFromFile(s.ctx, path)
	s.Require().NoError(err)
	s.Equal("Animals", deck.Name)
	s.Require().Len(deck.Cards, 2)
	s.Equal("Says meow", deck.Cards[0].FrontContent)
	s.Equal("Cat", deck.Cards[0].BackContent)
	s.Equal("dog", deck.Cards[1].ID)
}

func (s *ServiceSuite) TestLoadFromMissingFile() {
	_, err := s.service.LoadFromFile(s.ctx, filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Error(err)
}

func (s *ServiceSuite) TestParseJSON() {
	f, err := Parse(strings.NewReader(`{"name": "Capitals", "cards": [{"front": "Capital of Italy", "back": "Rome"}]}`))
	s.Require().NoError(err)
	s.Equal("Capitals", f.Name)
	s.Equal([]model.Flashcard{{FrontContent: "Capital of Italy", BackContent: "Rome"}}, f.Flashcards())
}

func (s *ServiceSuite) TestParseInvalid() {
	_, err := Parse(strings.NewReader("name: [unterminated"))
	s.Error(err)
}
