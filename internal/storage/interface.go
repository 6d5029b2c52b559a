package storage

import (
	"context"

	"github.com/mcoot/flashpuzzle/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Deck operations
	SaveDeck(ctx context.Context, deck *model.Deck) error
	GetDeck(ctx context.Context, id model.DeckID) (*model.Deck, error)
	ListDecks(ctx context.Context) ([]*model.Deck, error)
	DeleteDeck(ctx context.Context, id model.DeckID) error

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
}
