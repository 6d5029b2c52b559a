package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/flashpuzzle/internal/api/apierr"
	"github.com/mcoot/flashpuzzle/internal/model"
)

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeCreateDeck(t *testing.T) {
	var req CreateDeckRequest
	err := Decode(newRequest(`{"name":"Capitals","cards":[{"front":"France","back":"Paris"}]}`), &req, false)
	require.NoError(t, err)

	assert.Equal(t, "Capitals", req.Name)
	assert.Equal(t, []model.Flashcard{{FrontContent: "France", BackContent: "Paris"}}, req.Flashcards())
}

func TestDecodeValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		dst  any
	}{
		{"malformed json", `{"name":`, &CreateDeckRequest{}},
		{"missing name", `{"cards":[{"front":"a","back":"b"}]}`, &CreateDeckRequest{}},
		{"no cards", `{"name":"x","cards":[]}`, &CreateDeckRequest{}},
		{"card without back", `{"name":"x","cards":[{"front":"a"}]}`, &CreateDeckRequest{}},
		{"unknown kind", `{"deck_id":"d","kind":"sudoku"}`, &CreateSessionRequest{}},
		{"negative row", `{"row":-1,"col":0,"letter":"A"}`, &LetterRequest{}},
		{"negative selection", `{"start":{"row":0,"col":0},"end":{"row":0,"col":-2}}`, &SelectionRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decode(newRequest(tt.body), tt.dst, false)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apierr.StatusCode(err))
		})
	}
}

func TestDecodeEmptyBody(t *testing.T) {
	var req RestartRequest
	assert.NoError(t, Decode(newRequest(""), &req, true))
	assert.Nil(t, req.Seed)

	assert.Error(t, Decode(newRequest(""), &req, false))
}

func TestDecodeSeed(t *testing.T) {
	var req CreateSessionRequest
	require.NoError(t, Decode(newRequest(`{"deck_id":"d","kind":"crossword","seed":42}`), &req, false))
	require.NotNil(t, req.Seed)
	assert.Equal(t, uint64(42), *req.Seed)
}

func TestLetterRune(t *testing.T) {
	r := LetterRequest{Letter: "q"}
	ch, err := r.Rune()
	require.NoError(t, err)
	assert.Equal(t, 'q', ch)

	r = LetterRequest{}
	ch, err = r.Rune()
	require.NoError(t, err)
	assert.Equal(t, rune(0), ch)

	r = LetterRequest{Letter: "ab"}
	_, err = r.Rune()
	assert.ErrorIs(t, err, model.ErrInvalidLetter)
}
