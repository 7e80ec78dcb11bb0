package ws

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/coder/websocket"
)

// outboundQueueSize bounds the per-session send queue. A client that
// cannot keep up loses events rather than stalling the turn.
const outboundQueueSize = 64

// Session is one connected client. It implements the event sink port:
// SendEvent enqueues and a single pump goroutine owns the socket writes.
type Session struct {
	ID string

	ws     *websocket.Conn
	out    chan []byte
	cancel context.CancelFunc
}

func newSession(id string, conn *websocket.Conn, cancel context.CancelFunc) *Session {
	return &Session{
		ID:     id,
		ws:     conn,
		out:    make(chan []byte, outboundQueueSize),
		cancel: cancel,
	}
}

// SendEvent marshals one event as a flat JSON object with its "type"
// field and enqueues it. Delivery is best-effort: the frame is dropped
// when the queue is full.
func (s *Session) SendEvent(_ context.Context, eventType string, payload any) {
	frame, err := encodeEvent(eventType, payload)
	if err != nil {
		slog.Error("marshal ws event", "type", eventType, "error", err)
		return
	}
	select {
	case s.out <- frame:
	default:
		slog.Warn("ws send queue full, dropping event", "session", s.ID, "type", eventType)
	}
}

// writePump drains the outbound queue onto the socket until the session
// context ends.
func (s *Session) writePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-s.out:
			if err := s.ws.Write(ctx, websocket.MessageText, frame); err != nil {
				slog.Debug("ws write failed", "session", s.ID, "error", err)
				s.cancel()
				return
			}
		}
	}
}

// encodeEvent flattens the payload's fields next to the type
// discriminator, matching the client protocol.
func encodeEvent(eventType string, payload any) ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
	}
	typeRaw, err := json.Marshal(eventType)
	if err != nil {
		return nil, err
	}
	fields["type"] = typeRaw
	return json.Marshal(fields)
}
