package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/flashpuzzle/internal/dependencies/clock"
	"github.com/mcoot/flashpuzzle/internal/dependencies/random"
	"github.com/mcoot/flashpuzzle/internal/metrics"
	"github.com/mcoot/flashpuzzle/internal/model"
	"github.com/mcoot/flashpuzzle/internal/services/crossword"
	"github.com/mcoot/flashpuzzle/internal/services/selection"
	"github.com/mcoot/flashpuzzle/internal/services/wordsearch"
	"github.com/mcoot/flashpuzzle/internal/storage"
)

// Config holds the gameplay timings of a session
type Config struct {
	// IncorrectCellDelay is how long wrong crossword letters stay visible
	IncorrectCellDelay time.Duration
	// IncorrectSelectionDelay is how long a rejected word-search path stays visible
	IncorrectSelectionDelay time.Duration
}

// DefaultConfig returns the session defaults
func DefaultConfig() Config {
	return Config{
		IncorrectCellDelay:      800 * time.Millisecond,
		IncorrectSelectionDelay: time.Second,
	}
}

// Controller manages the session state machine and gameplay input
type Controller struct {
	storage      storage.Storage
	selector     *selection.Selector
	crosswords   *crossword.Generator
	wordSearches *wordsearch.Generator
	clock        clock.Clock
	random       random.Random
	cfg          Config
	logger       *slog.Logger
	locks        *keyedMutex
}

// NewController creates a new session Controller
func NewController(
	storage storage.Storage,
	selector *selection.Selector,
	crosswords *crossword.Generator,
	wordSearches *wordsearch.Generator,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		selector:     selector,
		crosswords:   crosswords,
		wordSearches: wordSearches,
		clock:        clock,
		random:       random,
		cfg:          cfg,
		logger:       logger,
		locks:        newKeyedMutex(),
	}
}

// Create snapshots a deck and generates a puzzle of the given kind.
// A nil seed draws a fresh one.
func (c *Controller) Create(ctx context.Context, deckID model.DeckID, kind model.PuzzleKind, seed *uint64) (*model.Session, error) {
	if !kind.IsValid() {
		return nil, model.ErrInvalidKind
	}

	now := c.clock.Now()
	session := &model.Session{
		ID:        model.SessionID(uuid.NewString()),
		DeckID:    deckID,
		Kind:      kind,
		State:     model.SessionStateLoading,
		CreatedAt: now,
		UpdatedAt: now,
	}

	deck, err := c.storage.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	pool, err := selection.Entries(deck.Cards)
	if err != nil {
		return nil, err
	}
	if kind == model.KindWordSearch {
		fitted := selection.FitTo(pool, c.wordSearches.Size())
		if dropped := len(pool) - len(fitted); dropped > 0 {
			c.logger.Warn("answers too long for word search grid",
				slog.String("deck_id", string(deckID)),
				slog.Int("dropped", dropped),
			)
		}
		if len(fitted) == 0 {
			return nil, model.ErrEmptyInput
		}
		pool = fitted
	}
	session.Pool = pool

	if err := c.generate(ctx, session, c.pickSeed(seed)); err != nil {
		return nil, err
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(session.ID)),
		slog.String("deck_id", string(deckID)),
		slog.String("kind", string(kind)),
		slog.Int("placed", session.Placed),
		slog.Int("target", session.Target),
	)

	return session, nil
}

// Get retrieves a session, applying any delayed clears that are due
func (c *Controller) Get(ctx context.Context, id model.SessionID) (*model.Session, error) {
	unlock := c.locks.Lock(id)
	defer unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.settle(session) {
		session.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveSession(ctx, session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

// EnterLetter records a crossword keystroke and validates the words through it
func (c *Controller) EnterLetter(ctx context.Context, id model.SessionID, pos model.Position, letter rune) (*model.Session, []model.Event, error) {
	unlock := c.locks.Lock(id)
	defer unlock()

	session, err := c.loadPlayable(ctx, id, model.KindCrossword)
	if err != nil {
		return nil, nil, err
	}

	out, err := crossword.EnterLetter(session.Crossword, pos, letter)
	if err != nil {
		return nil, nil, err
	}
	dropPendingCell(session, pos)

	now := c.clock.Now()
	var events []model.Event

	for _, idx := range out.Completed {
		word := session.Crossword.Words[idx]
		events = append(events, c.event(session, model.EventWordCompleted, now, model.WordCompletedPayload{
			WordIndex: idx,
			Word:      word.Word,
			Number:    word.Number,
			Direction: word.Direction,
		}))
	}

	clearAt := now.Add(c.cfg.IncorrectCellDelay)
	for _, rej := range out.Rejected {
		session.PendingClears = append(session.PendingClears, model.PendingClear{
			Cells:   rej.Cells,
			ClearAt: clearAt,
		})
		events = append(events, c.event(session, model.EventCellsRejected, now, model.CellsRejectedPayload{
			WordIndex: rej.WordIndex,
			Cells:     rej.Cells,
			ClearAt:   clearAt,
		}))
	}

	if out.PuzzleCompleted {
		events = append(events, c.complete(session, now, len(session.Crossword.Words)))
	}

	session.UpdatedAt = now
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}
	return session, events, nil
}

// ClearLetter removes a crossword letter
func (c *Controller) ClearLetter(ctx context.Context, id model.SessionID, pos model.Position) (*model.Session, error) {
	unlock := c.locks.Lock(id)
	defer unlock()

	session, err := c.loadPlayable(ctx, id, model.KindCrossword)
	if err != nil {
		return nil, err
	}

	if err := crossword.ClearLetter(session.Crossword, pos); err != nil {
		return nil, err
	}
	dropPendingCell(session, pos)

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Select checks a word-search selection from start to end
func (c *Controller) Select(ctx context.Context, id model.SessionID, start, end model.Position) (*model.Session, []model.Event, error) {
	unlock := c.locks.Lock(id)
	defer unlock()

	session, err := c.loadPlayable(ctx, id, model.KindWordSearch)
	if err != nil {
		return nil, nil, err
	}

	res, err := wordsearch.Match(session.WordSearch, start, end)
	if err != nil {
		return nil, nil, err
	}

	now := c.clock.Now()
	var events []model.Event

	if res.Found {
		session.Rejected = nil
		events = append(events, c.event(session, model.EventWordFound, now, model.WordFoundPayload{
			WordIndex: res.WordIndex,
			Answer:    session.WordSearch.Words[res.WordIndex].Answer,
			Path:      res.Path,
		}))
		if res.PuzzleCompleted {
			events = append(events, c.complete(session, now, len(session.WordSearch.Words)))
		}
	} else {
		clearAt := now.Add(c.cfg.IncorrectSelectionDelay)
		session.Rejected = &model.RejectedSelection{Path: res.Path, ClearAt: clearAt}
		events = append(events, c.event(session, model.EventSelectionRejected, now, model.SelectionRejectedPayload{
			Path:    res.Path,
			ClearAt: clearAt,
		}))
	}

	session.UpdatedAt = now
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}
	return session, events, nil
}

// Restart regenerates the puzzle from the session's word pool with a new seed.
// A nil seed draws a fresh one.
func (c *Controller) Restart(ctx context.Context, id model.SessionID, seed *uint64) (*model.Session, []model.Event, error) {
	unlock := c.locks.Lock(id)
	defer unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if session.State != model.SessionStatePlaying && session.State != model.SessionStateCompleted {
		return nil, nil, model.ErrNotPlaying
	}

	if err := c.generate(ctx, session, c.pickSeed(seed)); err != nil {
		return nil, nil, err
	}
	session.Generation++

	now := c.clock.Now()
	session.UpdatedAt = now
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	c.logger.Info("session restarted",
		slog.String("session_id", string(session.ID)),
		slog.Int("generation", session.Generation),
	)

	return session, []model.Event{
		c.event(session, model.EventPuzzleRestarted, now, model.PuzzleRestartedPayload{
			Generation: session.Generation,
			Seed:       session.Seed,
			Placed:     session.Placed,
			Target:     session.Target,
		}),
	}, nil
}

// Delete removes a session
func (c *Controller) Delete(ctx context.Context, id model.SessionID) error {
	unlock := c.locks.Lock(id)
	defer unlock()

	if _, err := c.storage.GetSession(ctx, id); err != nil {
		return err
	}
	if err := c.storage.DeleteSession(ctx, id); err != nil {
		return err
	}

	c.logger.Info("session deleted", slog.String("session_id", string(id)))
	return nil
}

// generate builds a fresh puzzle into session. The session is only modified
// once generation succeeds.
func (c *Controller) generate(ctx context.Context, session *model.Session, seed uint64) error {
	previous := session.State
	session.State = model.SessionStateGenerating

	rnd := random.NewSeeded(seed)
	entries, err := c.selector.Select(session.Pool, session.Kind, rnd)
	if err != nil {
		session.State = previous
		return err
	}

	var (
		cw     *model.Crossword
		ws     *model.WordSearch
		placed int
	)

	switch session.Kind {
	case model.KindCrossword:
		res, err := c.crosswords.Generate(ctx, entries, rnd)
		var exhausted *crossword.PlacementExhaustedError
		if errors.As(err, &exhausted) {
			c.logger.Warn("crossword generated with fewer words",
				slog.String("session_id", string(session.ID)),
				slog.Int("placed", exhausted.Placed),
				slog.Int("target", exhausted.Target),
			)
		} else if err != nil {
			session.State = previous
			return err
		}
		cw = res.Crossword
		placed = res.Placed

	case model.KindWordSearch:
		res, err := c.wordSearches.Generate(ctx, entries, rnd)
		if err != nil {
			session.State = previous
			return err
		}
		ws = res.WordSearch
		placed = len(ws.Words)
	}

	session.Seed = rnd.Seed()
	session.Target = len(entries)
	session.Placed = placed
	session.Crossword = cw
	session.WordSearch = ws
	session.PendingClears = nil
	session.Rejected = nil
	session.CompletedAt = nil
	session.State = model.SessionStatePlaying
	return nil
}

// loadPlayable fetches a session, settles due clears and checks it accepts
// input for the given puzzle kind
func (c *Controller) loadPlayable(ctx context.Context, id model.SessionID, kind model.PuzzleKind) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Kind != kind {
		return nil, model.ErrWrongPuzzleKind
	}

	c.settle(session)

	switch session.State {
	case model.SessionStateCompleted:
		return nil, model.ErrSessionCompleted
	case model.SessionStatePlaying:
		return session, nil
	default:
		return nil, model.ErrNotPlaying
	}
}

// settle applies delayed clears whose deadline has passed. It reports whether
// anything changed.
func (c *Controller) settle(session *model.Session) bool {
	changed := false

	if len(session.PendingClears) > 0 {
		remaining := session.PendingClears[:0]
		for _, pc := range session.PendingClears {
			if !clock.Reached(c.clock, pc.ClearAt) {
				remaining = append(remaining, pc)
				continue
			}
			if session.Crossword != nil {
				crossword.ClearIncorrect(session.Crossword, pc.Cells)
			}
			changed = true
		}
		if len(remaining) == 0 {
			remaining = nil
		}
		session.PendingClears = remaining
	}

	if session.Rejected != nil && clock.Reached(c.clock, session.Rejected.ClearAt) {
		session.Rejected = nil
		changed = true
	}

	return changed
}

// dropPendingCell removes a retyped cell from earlier delayed clears, so an
// old deadline cannot wipe the new value
func dropPendingCell(session *model.Session, pos model.Position) {
	remaining := session.PendingClears[:0]
	for _, pc := range session.PendingClears {
		cells := make([]model.Position, 0, len(pc.Cells))
		for _, cell := range pc.Cells {
			if cell != pos {
				cells = append(cells, cell)
			}
		}
		if len(cells) == 0 {
			continue
		}
		pc.Cells = cells
		remaining = append(remaining, pc)
	}
	if len(remaining) == 0 {
		remaining = nil
	}
	session.PendingClears = remaining
}

// complete moves the session to completed and returns the completion event
func (c *Controller) complete(session *model.Session, now time.Time, wordCount int) model.Event {
	session.State = model.SessionStateCompleted
	session.CompletedAt = &now
	session.PendingClears = nil
	session.Rejected = nil

	metrics.SessionCompleted(string(session.Kind))
	c.logger.Info("puzzle completed",
		slog.String("session_id", string(session.ID)),
		slog.String("kind", string(session.Kind)),
		slog.Duration("elapsed", now.Sub(session.CreatedAt)),
	)

	return c.event(session, model.EventPuzzleCompleted, now, model.PuzzleCompletedPayload{
		Kind:      session.Kind,
		WordCount: wordCount,
	})
}

func (c *Controller) event(session *model.Session, typ model.EventType, now time.Time, payload any) model.Event {
	return model.Event{
		Type:      typ,
		Timestamp: now,
		SessionID: session.ID,
		Payload:   payload,
	}
}

func (c *Controller) pickSeed(seed *uint64) uint64 {
	if seed != nil {
		return *seed
	}
	return c.random.Uint64()
}
