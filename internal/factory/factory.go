package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/flashpuzzle/internal/dependencies/clock"
	"github.com/mcoot/flashpuzzle/internal/dependencies/random"
	"github.com/mcoot/flashpuzzle/internal/services/crossword"
	"github.com/mcoot/flashpuzzle/internal/services/deck"
	"github.com/mcoot/flashpuzzle/internal/services/selection"
	"github.com/mcoot/flashpuzzle/internal/services/session"
	"github.com/mcoot/flashpuzzle/internal/services/wordsearch"
	"github.com/mcoot/flashpuzzle/internal/storage"
	"github.com/mcoot/flashpuzzle/internal/storage/memory"
	redisstorage "github.com/mcoot/flashpuzzle/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage     storage.Storage
	StorageType string

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DeckService         *deck.Service
	Selector            *selection.Selector
	CrosswordGenerator  *crossword.Generator
	WordSearchGenerator *wordsearch.Generator
	SessionController   *session.Controller
}

// Config holds configuration for the application factory. Zero-valued
// sub-configs fall back to their package defaults.
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config

	Crossword  crossword.Config
	WordSearch wordsearch.Config
	Selection  selection.Config
	Session    session.Config
}

// withDefaults fills zero-valued sub-configs
func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if c.StorageType == "" {
		c.StorageType = StorageTypeMemory
	}
	if c.Crossword == (crossword.Config{}) {
		c.Crossword = crossword.DefaultConfig()
	}
	if c.WordSearch == (wordsearch.Config{}) {
		c.WordSearch = wordsearch.DefaultConfig()
	}
	if c.Selection == (selection.Config{}) {
		c.Selection = selection.DefaultConfig()
	}
	if c.Session == (session.Config{}) {
		c.Session = session.DefaultConfig()
	}
	return c
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	cfg = cfg.withDefaults()

	// Create storage based on type
	var store storage.Storage
	switch cfg.StorageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config) *App {
	logger := cfg.Logger

	deckService := deck.NewService(store, clk, logger)
	selector := selection.New(cfg.Selection)
	crosswords := crossword.New(cfg.Crossword, logger)
	wordSearches := wordsearch.New(cfg.WordSearch, logger)
	sessions := session.NewController(store, selector, crosswords, wordSearches, clk, rnd, cfg.Session, logger)

	return &App{
		Storage:             store,
		StorageType:         cfg.StorageType,
		Clock:               clk,
		Random:              rnd,
		DeckService:         deckService,
		Selector:            selector,
		CrosswordGenerator:  crosswords,
		WordSearchGenerator: wordSearches,
		SessionController:   sessions,
	}
}
