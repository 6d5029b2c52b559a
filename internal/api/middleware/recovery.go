// Package middleware assembles the shared HTTP middleware for the JSON API.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/flashpuzzle/internal/api/apierr"
	"github.com/mcoot/flashpuzzle/internal/middleware"
)

// Recovery answers handler panics with a JSON INTERNAL_ERROR body
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, r *http.Request, _ any) {
		apierr.WriteRequestError(w, apierr.NewInternalError(), middleware.RequestID(r.Context()))
	})
}

// Logging tags, logs and measures every API request
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}
