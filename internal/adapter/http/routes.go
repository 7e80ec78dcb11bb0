package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers, handleWS http.HandlerFunc) {
	r.Get("/health", h.Health)

	r.Get("/ws/{session_id}", handleWS)

	r.Route("/files", func(r chi.Router) {
		r.Get("/", h.ListFiles)
		r.Get("/{file_id}", h.GetFile)
		r.Get("/{file_id}/info", h.GetFileInfo)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})
		r.Get("/agents", h.ListAgents)
	})
}
