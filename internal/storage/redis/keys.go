package redis

import (
	"fmt"

	"github.com/mcoot/flashpuzzle/internal/model"
)

// Key prefix for all puzzle data
const keyPrefix = "flashpuzzle"

// deckKey returns the Redis key for a Deck
func deckKey(id model.DeckID) string {
	return fmt.Sprintf("%s:deck:%s", keyPrefix, id)
}

// deckIndexKey returns the Redis key for the SET of all deck keys
func deckIndexKey() string {
	return fmt.Sprintf("%s:idx:decks", keyPrefix)
}

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}
