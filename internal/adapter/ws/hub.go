// Package ws implements the WebSocket adapter: one conversation per
// connected session, with typed events flowing back to the client.
package ws

import (
	"sync"
)

// Hub tracks all live sessions.
type Hub struct {
	mu       sync.RWMutex
	sessions map[*Session]struct{}
}

// NewHub creates an empty session registry.
func NewHub() *Hub {
	return &Hub{sessions: make(map[*Session]struct{})}
}

func (h *Hub) add(s *Session) {
	h.mu.Lock()
	h.sessions[s] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s)
	h.mu.Unlock()
}

// ConnectionCount returns the number of active sessions.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// CloseAll cancels every live session, used at shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.sessions {
		s.cancel()
	}
}
