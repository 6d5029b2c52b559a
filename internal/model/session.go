package model

import "time"

// SessionID uniquely identifies a puzzle session
type SessionID string

// PuzzleKind selects which generator backs a session
type PuzzleKind string

const (
	KindCrossword  PuzzleKind = "crossword"
	KindWordSearch PuzzleKind = "wordsearch"
)

// IsValid returns true for the supported puzzle kinds
func (k PuzzleKind) IsValid() bool {
	return k == KindCrossword || k == KindWordSearch
}

// SessionState represents the current phase of a puzzle session
type SessionState string

const (
	SessionStateLoading    SessionState = "loading"    // Fetching the deck snapshot
	SessionStateGenerating SessionState = "generating" // Building the grid
	SessionStatePlaying    SessionState = "playing"    // Accepting input
	SessionStateCompleted  SessionState = "completed"  // Every word solved
)

// PendingClear erases incorrect crossword input once ClearAt has passed
type PendingClear struct {
	Cells   []Position
	ClearAt time.Time
}

// RejectedSelection is a word-search path shown as incorrect until ClearAt
type RejectedSelection struct {
	Path    []Position
	ClearAt time.Time
}

// Session is a single play-through of a generated puzzle
type Session struct {
	ID     SessionID
	DeckID DeckID
	Kind   PuzzleKind
	State  SessionState

	// Pool is every usable entry of the deck, re-sampled on restart
	Pool []WordEntry

	// Generation bookkeeping
	Seed       uint64
	Generation int // Incremented on every restart
	Target     int // Words the generator tried to place
	Placed     int // Words actually placed

	Crossword  *Crossword
	WordSearch *WordSearch

	PendingClears []PendingClear
	Rejected      *RejectedSelection

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// IsPlaying returns true if the session accepts input
func (s *Session) IsPlaying() bool {
	return s.State == SessionStatePlaying
}
