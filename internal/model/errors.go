package model

import "errors"

// Common errors used across the application
var (
	// Input errors
	ErrEmptyInput = errors.New("no usable flashcards supplied")

	// Deck errors
	ErrDeckNotFound = errors.New("deck not found")
	ErrInvalidDeck  = errors.New("deck needs a name")

	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrWrongPuzzleKind  = errors.New("operation not supported for this puzzle kind")
	ErrSessionCompleted = errors.New("session is already completed")
	ErrNotPlaying       = errors.New("session is not accepting input")
	ErrInvalidKind      = errors.New("invalid puzzle kind")

	// Input validation errors
	ErrInvalidLetter   = errors.New("invalid letter")
	ErrInvalidPosition = errors.New("invalid grid position")
	ErrBlankCell       = errors.New("cell is not part of any word")
)
