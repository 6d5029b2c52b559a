package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/flashpuzzle/internal/api/request"
	"github.com/mcoot/flashpuzzle/internal/api/response"
	"github.com/mcoot/flashpuzzle/internal/api/sse"
	"github.com/mcoot/flashpuzzle/internal/model"
	"github.com/mcoot/flashpuzzle/internal/services/session"
)

// SessionHandler handles puzzle session endpoints
type SessionHandler struct {
	sessions    *session.Controller
	hubManager  *sse.HubManager
	broadcaster *sse.Broadcaster
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Controller, hubManager *sse.HubManager, broadcaster *sse.Broadcaster) *SessionHandler {
	return &SessionHandler{
		sessions:    sessions,
		hubManager:  hubManager,
		broadcaster: broadcaster,
	}
}

func sessionID(r *http.Request) model.SessionID {
	return model.SessionID(mux.Vars(r)["id"])
}

// respond publishes events to watchers and writes the updated session
func (h *SessionHandler) respond(w http.ResponseWriter, s *model.Session, events []model.Event) {
	h.broadcaster.Publish(events)
	response.JSON(w, http.StatusOK, response.SessionUpdate{
		Session: response.SessionFromModel(s),
		Events:  response.EventsFromModel(events),
	})
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := request.Decode(r, &req, false); err != nil {
		WriteError(w, r, err)
		return
	}

	s, err := h.sessions.Create(r.Context(), model.DeckID(req.DeckID), model.PuzzleKind(req.Kind), req.Seed)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	response.Created(w, response.SessionFromModel(s))
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(s))
}

// Letter handles POST /api/v1/sessions/{id}/letters. An empty letter clears
// the cell.
func (h *SessionHandler) Letter(w http.ResponseWriter, r *http.Request) {
	var req request.LetterRequest
	if err := request.Decode(r, &req, false); err != nil {
		WriteError(w, r, err)
		return
	}
	letter, err := req.Rune()
	if err != nil {
		WriteError(w, r, err)
		return
	}

	var (
		s      *model.Session
		events []model.Event
	)
	if letter == 0 {
		s, err = h.sessions.ClearLetter(r.Context(), sessionID(r), req.Position())
	} else {
		s, events, err = h.sessions.EnterLetter(r.Context(), sessionID(r), req.Position(), letter)
	}
	if err != nil {
		WriteError(w, r, err)
		return
	}

	h.respond(w, s, events)
}

// Select handles POST /api/v1/sessions/{id}/selections
func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req request.SelectionRequest
	if err := request.Decode(r, &req, false); err != nil {
		WriteError(w, r, err)
		return
	}

	s, events, err := h.sessions.Select(r.Context(), sessionID(r), req.Start.Position(), req.End.Position())
	if err != nil {
		WriteError(w, r, err)
		return
	}

	h.respond(w, s, events)
}

// Restart handles POST /api/v1/sessions/{id}/restart
func (h *SessionHandler) Restart(w http.ResponseWriter, r *http.Request) {
	var req request.RestartRequest
	if err := request.Decode(r, &req, true); err != nil {
		WriteError(w, r, err)
		return
	}

	s, events, err := h.sessions.Restart(r.Context(), sessionID(r), req.Seed)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	h.respond(w, s, events)
}

// Delete handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if err := h.sessions.Delete(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}

	h.broadcaster.Close(id)
	response.NoContent(w)
}

// Events handles GET /api/v1/sessions/{id}/events as a server-sent event stream
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if _, err := h.sessions.Get(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}

	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(id))
}
