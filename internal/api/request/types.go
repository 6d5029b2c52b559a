package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/mcoot/flashpuzzle/internal/api/apierr"
	"github.com/mcoot/flashpuzzle/internal/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// CardRequest is one flashcard in a deck creation request
type CardRequest struct {
	ID    string `json:"id,omitempty" validate:"omitempty,max=64"`
	Front string `json:"front" validate:"required"`
	Back  string `json:"back" validate:"required"`
}

// CreateDeckRequest is the request body for creating a deck
type CreateDeckRequest struct {
	Name  string        `json:"name" validate:"required,max=200"`
	Cards []CardRequest `json:"cards" validate:"required,min=1,dive"`
}

// Flashcards converts the request cards into model cards
func (r *CreateDeckRequest) Flashcards() []model.Flashcard {
	cards := make([]model.Flashcard, len(r.Cards))
	for i, c := range r.Cards {
		cards[i] = model.Flashcard{ID: c.ID, FrontContent: c.Front, BackContent: c.Back}
	}
	return cards
}

// CreateSessionRequest is the request body for starting a puzzle session
type CreateSessionRequest struct {
	DeckID string  `json:"deck_id" validate:"required"`
	Kind   string  `json:"kind" validate:"required,oneof=crossword wordsearch"`
	Seed   *uint64 `json:"seed,omitempty"`
}

// PositionRequest is a grid coordinate
type PositionRequest struct {
	Row int `json:"row" validate:"gte=0"`
	Col int `json:"col" validate:"gte=0"`
}

// Position converts to model.Position
func (p PositionRequest) Position() model.Position {
	return model.Position{Row: p.Row, Col: p.Col}
}

// LetterRequest is the request body for entering a letter. An empty letter
// clears the cell.
type LetterRequest struct {
	PositionRequest
	Letter string `json:"letter"`
}

// Rune returns the entered letter, or 0 for a clear
func (r *LetterRequest) Rune() (rune, error) {
	if r.Letter == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(r.Letter) != 1 {
		return 0, model.ErrInvalidLetter
	}
	ch, _ := utf8.DecodeRuneInString(r.Letter)
	return ch, nil
}

// SelectionRequest is the request body for a word-search selection
type SelectionRequest struct {
	Start PositionRequest `json:"start"`
	End   PositionRequest `json:"end"`
}

// RestartRequest is the request body for restarting a session
type RestartRequest struct {
	Seed *uint64 `json:"seed,omitempty"`
}

// Decode reads a JSON body into dst and validates it. An empty body is
// allowed when allowEmpty is set, leaving dst at its zero value.
func Decode(r *http.Request, dst any, allowEmpty bool) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return apierr.NewInvalidRequestError("Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return apierr.NewInvalidRequestError(describe(err))
	}
	return nil
}

// describe flattens validation errors into a readable message
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Param() != "" {
			parts[i] = fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
		} else {
			parts[i] = fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}
