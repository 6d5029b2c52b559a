package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Crossword events
	EventWordCompleted EventType = "word_completed"
	EventCellsRejected EventType = "cells_rejected"

	// Word-search events
	EventWordFound         EventType = "word_found"
	EventSelectionRejected EventType = "selection_rejected"

	// Session events
	EventPuzzleCompleted EventType = "puzzle_completed"
	EventPuzzleRestarted EventType = "puzzle_restarted"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	SessionID SessionID
	Payload   any // Type-specific data
}

// WordCompletedPayload contains data for word completed events
type WordCompletedPayload struct {
	WordIndex int
	Word      string
	Number    int
	Direction Direction
}

// CellsRejectedPayload contains data for cells rejected events
type CellsRejectedPayload struct {
	WordIndex int
	Cells     []Position
	ClearAt   time.Time
}

// WordFoundPayload contains data for word found events
type WordFoundPayload struct {
	WordIndex int
	Answer    string
	Path      []Position
}

// SelectionRejectedPayload contains data for selection rejected events
type SelectionRejectedPayload struct {
	Path    []Position
	ClearAt time.Time
}

// PuzzleCompletedPayload contains data for puzzle completed events
type PuzzleCompletedPayload struct {
	Kind      PuzzleKind
	WordCount int
}

// PuzzleRestartedPayload contains data for puzzle restarted events
type PuzzleRestartedPayload struct {
	Generation int
	Seed       uint64
	Placed     int
	Target     int
}
