package model

import "time"

// DeckID uniquely identifies a flashcard deck
type DeckID string

// Flashcard is a single card supplied by the data layer
type Flashcard struct {
	ID           string
	FrontContent string // Question or definition, becomes the clue
	BackContent  string // Answer, becomes the hidden word
}

// Deck is a read-only snapshot of a flashcard collection
type Deck struct {
	ID        DeckID
	Name      string
	Cards     []Flashcard
	CreatedAt time.Time
}

// WordEntry is a normalized answer and its clue, ready for placement
type WordEntry struct {
	Word string // Upper-case answer
	Clue string
}
