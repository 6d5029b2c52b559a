package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcoot/flashpuzzle/internal/api/handler"
	"github.com/mcoot/flashpuzzle/internal/api/middleware"
	"github.com/mcoot/flashpuzzle/internal/api/sse"
	"github.com/mcoot/flashpuzzle/internal/services/deck"
	"github.com/mcoot/flashpuzzle/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	StorageType       string
	DeckService       *deck.Service
	SessionController *session.Controller
	HubManager        *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}
	broadcaster := sse.NewBroadcaster(hubManager, cfg.Logger)

	// Create handlers
	deckHandler := handler.NewDeckHandler(cfg.DeckService)
	sessionHandler := handler.NewSessionHandler(cfg.SessionController, hubManager, broadcaster)
	healthHandler := handler.NewHealthHandler(cfg.StorageType)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Recovery(cfg.Logger))

	// Deck routes
	api.HandleFunc("/decks", deckHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/decks", deckHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/decks/{id}", deckHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/decks/{id}", deckHandler.Delete).Methods(http.MethodDelete)

	// Session routes
	api.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", sessionHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/letters", sessionHandler.Letter).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/selections", sessionHandler.Select).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/restart", sessionHandler.Restart).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/events", sessionHandler.Events).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	// Prometheus scrape endpoint, outside the logged API prefix
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}
