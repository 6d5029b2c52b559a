package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/flashpuzzle/internal/model"
	"github.com/mcoot/flashpuzzle/internal/services/wordsearch"
)

// APIError represents an API error response
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidKind       = "INVALID_KIND"
	CodeInvalidLetter     = "INVALID_LETTER"
	CodeInvalidPosition   = "INVALID_POSITION"
	CodeBlankCell         = "BLANK_CELL"
	CodeDeckNotFound      = "DECK_NOT_FOUND"
	CodeSessionNotFound   = "SESSION_NOT_FOUND"
	CodeEmptyDeck         = "EMPTY_DECK"
	CodeUnplaceableWord   = "UNPLACEABLE_WORD"
	CodeWrongPuzzleKind   = "WRONG_PUZZLE_KIND"
	CodeSessionCompleted  = "SESSION_COMPLETED"
	CodeNotPlaying        = "NOT_PLAYING"
	CodeGenerationTimeout = "GENERATION_TIMEOUT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	WriteRequestError(w, err, "")
}

// WriteRequestError writes an error response that echoes the request ID
func WriteRequestError(w http.ResponseWriter, err error, requestID string) {
	he := toHTTPError(err)
	body := he.apiError
	body.RequestID = requestID

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: body})
}

// StatusCode returns the HTTP status an error maps to
func StatusCode(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var unplaceable *wordsearch.UnplaceableWordError
	if errors.As(err, &unplaceable) {
		return &httpError{http.StatusUnprocessableEntity, APIError{Code: CodeUnplaceableWord, Message: unplaceable.Error()}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrDeckNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeDeckNotFound, Message: "Deck not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeSessionNotFound, Message: "Session not found"}}
	case errors.Is(err, model.ErrEmptyInput):
		return &httpError{http.StatusUnprocessableEntity, APIError{Code: CodeEmptyDeck, Message: "Deck has no usable flashcards"}}
	case errors.Is(err, model.ErrInvalidDeck):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: "Deck needs a name"}}
	case errors.Is(err, model.ErrInvalidKind):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidKind, Message: "Kind must be crossword or wordsearch"}}
	case errors.Is(err, model.ErrWrongPuzzleKind):
		return &httpError{http.StatusConflict, APIError{Code: CodeWrongPuzzleKind, Message: "Operation not supported for this puzzle kind"}}
	case errors.Is(err, model.ErrSessionCompleted):
		return &httpError{http.StatusConflict, APIError{Code: CodeSessionCompleted, Message: "Puzzle is already completed"}}
	case errors.Is(err, model.ErrNotPlaying):
		return &httpError{http.StatusConflict, APIError{Code: CodeNotPlaying, Message: "Session is not accepting input"}}
	case errors.Is(err, model.ErrInvalidLetter):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidLetter, Message: "Letter must be a single letter or digit"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidPosition, Message: "Invalid grid position"}}
	case errors.Is(err, model.ErrBlankCell):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeBlankCell, Message: "Cell is not part of any word"}}
	case errors.Is(err, context.DeadlineExceeded):
		return &httpError{http.StatusServiceUnavailable, APIError{Code: CodeGenerationTimeout, Message: "Puzzle generation timed out"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
