package storage

import (
	"cmp"
	"slices"

	"github.com/mcoot/flashpuzzle/internal/model"
)

// SortDecks orders decks oldest first, breaking ties by ID
func SortDecks(decks []*model.Deck) {
	slices.SortFunc(decks, func(a, b *model.Deck) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
