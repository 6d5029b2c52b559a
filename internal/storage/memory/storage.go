package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mcoot/flashpuzzle/internal/model"
	"github.com/mcoot/flashpuzzle/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are held encoded so callers never share state with the store
// or with each other, matching the redis backend.
type Storage struct {
	mu sync.RWMutex

	decks    map[model.DeckID][]byte
	sessions map[model.SessionID][]byte
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		decks:    make(map[model.DeckID][]byte),
		sessions: make(map[model.SessionID][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Deck operations

func (s *Storage) SaveDeck(ctx context.Context, deck *model.Deck) error {
	data, err := json.Marshal(deck)
	if err != nil {
		return fmt.Errorf("failed to marshal deck: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks[deck.ID] = data
	return nil
}

func (s *Storage) GetDeck(ctx context.Context, id model.DeckID) (*model.Deck, error) {
	s.mu.RLock()
	data, ok := s.decks[id]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrDeckNotFound
	}
	return decodeDeck(data)
}

func (s *Storage) ListDecks(ctx context.Context) ([]*model.Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	decks := make([]*model.Deck, 0, len(s.decks))
	for _, data := range s.decks {
		deck, err := decodeDeck(data)
		if err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}
	storage.SortDecks(decks)
	return decks, nil
}

func (s *Storage) DeleteDeck(ctx context.Context, id model.DeckID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.decks, id)
	return nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = data
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	data, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrSessionNotFound
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func decodeDeck(data []byte) (*model.Deck, error) {
	var deck model.Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deck: %w", err)
	}
	return &deck, nil
}
