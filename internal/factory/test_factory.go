package factory

import (
	"context"
	"time"

	"github.com/mcoot/flashpuzzle/internal/dependencies/mocks"
	"github.com/mcoot/flashpuzzle/internal/model"
	"github.com/mcoot/flashpuzzle/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, Config{}.withDefaults())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// CreateCapitalsDeck stores a small deck of capital cities for testing
func (t *TestApp) CreateCapitalsDeck(ctx context.Context) (*model.Deck, error) {
	return t.DeckService.CreateDeck(ctx, "Capitals", []model.Flashcard{
		{FrontContent: "Capital of France", BackContent: "Paris"},
		{FrontContent: "Capital of Japan", BackContent: "Tokyo"},
		{FrontContent: "Capital of Italy", BackContent: "Rome"},
		{FrontContent: "Capital of Peru", BackContent: "Lima"},
		{FrontContent: "Capital of Norway", BackContent: "Oslo"},
	})
}
