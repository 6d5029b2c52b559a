package deck

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mcoot/flashpuzzle/internal/dependencies/clock"
	"github.com/mcoot/flashpuzzle/internal/model"
	"github.com/mcoot/flashpuzzle/internal/storage"
)

// Service manages flashcard decks
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewService creates a new deck Service
func NewService(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// CreateDeck stores a new deck, assigning IDs to the deck and to any card
// without one
func (s *Service) CreateDeck(ctx context.Context, name string, cards []model.Flashcard) (*model.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrInvalidDeck
	}
	if len(cards) == 0 {
		return nil, model.ErrEmptyInput
	}

	deck := &model.Deck{
		ID:        model.DeckID(uuid.NewString()),
		Name:      name,
		Cards:     make([]model.Flashcard, len(cards)),
		CreatedAt: s.clock.Now(),
	}
	for i, c := range cards {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		deck.Cards[i] = c
	}

	if err := s.storage.SaveDeck(ctx, deck); err != nil {
		s.logger.Error("failed to save deck",
			slog.String("deck_id", string(deck.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("deck created",
		slog.String("deck_id", string(deck.ID)),
		slog.String("name", deck.Name),
		slog.Int("card_count", len(deck.Cards)),
	)

	return deck, nil
}

// LoadFromFile creates a deck from a YAML or JSON file
func (s *Service) LoadFromFile(ctx context.Context, path string) (*model.Deck, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.CreateDeck(ctx, f.Name, f.Flashcards())
}

// GetDeck retrieves a deck by ID
func (s *Service) GetDeck(ctx context.Context, id model.DeckID) (*model.Deck, error) {
	return s.storage.GetDeck(ctx, id)
}

// ListDecks returns every stored deck, oldest first
func (s *Service) ListDecks(ctx context.Context) ([]*model.Deck, error) {
	return s.storage.ListDecks(ctx)
}

// DeleteDeck removes a deck. Sessions already generated from it keep their
// snapshot.
func (s *Service) DeleteDeck(ctx context.Context, id model.DeckID) error {
	if _, err := s.storage.GetDeck(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteDeck(ctx, id); err != nil {
		return err
	}

	s.logger.Info("deck deleted", slog.String("deck_id", string(id)))
	return nil
}
