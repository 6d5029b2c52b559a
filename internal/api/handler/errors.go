package handler

import (
	"net/http"

	"github.com/mcoot/flashpuzzle/internal/api/apierr"
	"github.com/mcoot/flashpuzzle/internal/middleware"
)

// WriteError writes an error response tagged with the request's ID
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	apierr.WriteRequestError(w, err, middleware.RequestID(r.Context()))
}
