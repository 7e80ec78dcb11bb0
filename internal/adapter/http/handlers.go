package http

import (
	"net/http"
	"strconv"

	"github.com/mhollis/agentcare/internal/adapter/ws"
	"github.com/mhollis/agentcare/internal/domain/agent"
	"github.com/mhollis/agentcare/internal/port/artifactstore"
)

// Handlers holds the HTTP endpoint implementations.
type Handlers struct {
	artifacts artifactstore.Store
	hub       *ws.Hub
	roster    []agent.Definition
}

// NewHandlers creates the handler set.
func NewHandlers(artifacts artifactstore.Store, hub *ws.Hub, roster []agent.Definition) *Handlers {
	return &Handlers{
		artifacts: artifacts,
		hub:       hub,
		roster:    roster,
	}
}

// Health serves GET /health.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "healthy",
		"active_sessions": h.hub.ConnectionCount(),
	})
}

// GetFile serves GET /files/{file_id}: the raw artifact bytes with a
// best-effort media type.
func (h *Handlers) GetFile(w http.ResponseWriter, r *http.Request) {
	fileID := urlParam(r, "file_id")

	info, err := h.artifacts.GetInfo(r.Context(), fileID)
	if err != nil {
		writeDomainError(w, err, "file not found")
		return
	}

	if info.MimeType != "" {
		w.Header().Set("Content-Type", info.MimeType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Disposition", `inline; filename="`+info.FileID+`"`)
	http.ServeFile(w, r, info.Path)
}

// GetFileInfo serves GET /files/{file_id}/info.
func (h *Handlers) GetFileInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.artifacts.GetInfo(r.Context(), urlParam(r, "file_id"))
	if err != nil {
		writeDomainError(w, err, "file not found")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// ListFiles serves GET /files with optional type and limit query
// parameters, newest first.
func (h *Handlers) ListFiles(w http.ResponseWriter, r *http.Request) {
	fileType := r.URL.Query().Get("type")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	infos, err := h.artifacts.List(r.Context(), fileType, limit)
	if err != nil {
		writeDomainError(w, err, "failed to list files")
		return
	}
	if infos == nil {
		infos = []artifactstore.Info{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": infos})
}

// agentSummary is the public shape of one roster agent.
type agentSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tools       []string `json:"tools"`
}

// ListAgents serves GET /api/v1/agents.
func (h *Handlers) ListAgents(w http.ResponseWriter, _ *http.Request) {
	summaries := make([]agentSummary, 0, len(h.roster))
	for _, a := range h.roster {
		tools := a.Tools
		if tools == nil {
			tools = []string{}
		}
		summaries = append(summaries, agentSummary{
			Name:        a.Name,
			Description: a.Description,
			Tools:       tools,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"agents": summaries})
}
