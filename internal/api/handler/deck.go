package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/flashpuzzle/internal/api/request"
	"github.com/mcoot/flashpuzzle/internal/api/response"
	"github.com/mcoot/flashpuzzle/internal/model"
	"github.com/mcoot/flashpuzzle/internal/services/deck"
)

// DeckHandler handles deck endpoints
type DeckHandler struct {
	decks *deck.Service
}

// NewDeckHandler creates a new deck handler
func NewDeckHandler(decks *deck.Service) *DeckHandler {
	return &DeckHandler{decks: decks}
}

// Create handles POST /api/v1/decks
func (h *DeckHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDeckRequest
	if err := request.Decode(r, &req, false); err != nil {
		WriteError(w, r, err)
		return
	}

	d, err := h.decks.CreateDeck(r.Context(), req.Name, req.Flashcards())
	if err != nil {
		WriteError(w, r, err)
		return
	}

	response.Created(w, response.DeckFromModel(d))
}

// List handles GET /api/v1/decks
func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	decks, err := h.decks.ListDecks(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DeckListFromModel(decks))
}

// Get handles GET /api/v1/decks/{id}
func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.DeckID(mux.Vars(r)["id"])

	d, err := h.decks.GetDeck(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DeckFromModel(d))
}

// Delete handles DELETE /api/v1/decks/{id}
func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.DeckID(mux.Vars(r)["id"])

	if err := h.decks.DeleteDeck(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}

	response.NoContent(w)
}
