package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/flashpuzzle/internal/model"
	"github.com/mcoot/flashpuzzle/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Deck operations

func (s *Storage) SaveDeck(ctx context.Context, deck *model.Deck) error {
	data, err := json.Marshal(deck)
	if err != nil {
		return err
	}

	key := deckKey(deck.ID)

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0) // No TTL
	pipe.SAdd(ctx, deckIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetDeck(ctx context.Context, id model.DeckID) (*model.Deck, error) {
	data, err := s.client.Get(ctx, deckKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDeckNotFound
		}
		return nil, err
	}

	var deck model.Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

func (s *Storage) ListDecks(ctx context.Context) ([]*model.Deck, error) {
	keys, err := s.client.SMembers(ctx, deckIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Deck{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	decks := make([]*model.Deck, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Deleted outside the index
		}
		var deck model.Deck
		if err := json.Unmarshal([]byte(val.(string)), &deck); err != nil {
			continue // Skip invalid data
		}
		decks = append(decks, &deck)
	}

	storage.SortDecks(decks)
	return decks, nil
}

func (s *Storage) DeleteDeck(ctx context.Context, id model.DeckID) error {
	key := deckKey(id)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, deckIndexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, sessionKey(session.ID), data, s.cfg.SessionTTL).Err()
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}
