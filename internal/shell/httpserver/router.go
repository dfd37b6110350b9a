// Package httpserver exposes the offline shell over HTTP.
//
// Every request is routed through the cache registration except the status
// endpoint, which reports the installed cache generations.
package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/agrilink/internal/logging"
	"github.com/dmitrijs2005/agrilink/internal/offline"
	"github.com/go-chi/chi/v5"
)

// StatusPath serves the registration snapshot.
const StatusPath = "/__offline/status"

// Shell is the part of *offline.Registration the router needs.
type Shell interface {
	http.Handler
	Status(ctx context.Context) (offline.Status, error)
}

// NewRouter builds the chi router for the shell server.
func NewRouter(shell Shell, logger logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Nop()
	}

	r := chi.NewRouter()

	r.Use(withRequestID)
	r.Use(accessLog(logger))
	r.Use(recoverer(logger))

	r.Get(StatusPath, statusHandler(shell, logger))
	r.Handle("/*", shell)

	return r
}

func statusHandler(shell Shell, logger logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := shell.Status(r.Context())
		if err != nil {
			logger.Error(r.Context(), "status failed", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(st); err != nil {
			logger.Warn(r.Context(), "status write failed", "error", err)
		}
	}
}
