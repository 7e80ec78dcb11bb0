package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/semaphore"

	"github.com/mhollis/agentcare/internal/domain"
	"github.com/mhollis/agentcare/internal/domain/conversation"
	"github.com/mhollis/agentcare/internal/domain/widget"
	"github.com/mhollis/agentcare/internal/port/eventsink"
	"github.com/mhollis/agentcare/internal/service"
)

// ConversationFactory builds a fresh conversation engine for one
// session. Each session gets its own routing state and transcript.
type ConversationFactory func(sessionID string) (*service.ConversationService, error)

// Handler upgrades connections and runs the chat protocol: the client
// sends chat_message frames, the handler answers with the typed event
// stream of the resulting turn.
type Handler struct {
	hub     *Hub
	convos  ConversationFactory
	refs    *service.ReferenceService
	working map[string]string
}

// NewHandler creates the WebSocket handler.
func NewHandler(hub *Hub, convos ConversationFactory, refs *service.ReferenceService) *Handler {
	return &Handler{
		hub:    hub,
		convos: convos,
		refs:   refs,
		working: map[string]string{
			"BillingAgent": " (analyzing billing data)",
			"PlanAgent":    " (checking plans and roaming options)",
			"SupportAgent": " (handling support request)",
		},
	}
}

// HandleWS serves GET /ws/{session_id}.
func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS handled by middleware
	})
	if err != nil {
		slog.Error("websocket accept failed", "session", sessionID, "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	sess := newSession(sessionID, conn, cancel)
	h.hub.add(sess)
	defer func() {
		h.hub.remove(sess)
		_ = conn.Close(websocket.StatusNormalClosure, "")
		slog.Info("websocket disconnected", "session", sessionID)
	}()
	go sess.writePump(ctx)

	slog.Info("websocket connected", "session", sessionID, "remote", r.RemoteAddr)

	convo, err := h.convos(sessionID)
	if err != nil {
		slog.Error("conversation setup failed", "session", sessionID, "error", err)
		sess.SendEvent(ctx, EventError, ErrorEvent{Content: fmt.Sprintf("Failed to initialize agents: %v", err)})
		return
	}
	convo.SetSessionID(sessionID)
	sess.SendEvent(ctx, EventSystem, SystemEvent{Content: "Agents initialized successfully. Ready to chat!"})

	// One outstanding turn per session; further chat frames are refused
	// until the running turn finishes.
	turns := semaphore.NewWeighted(1)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sess.SendEvent(ctx, EventError, ErrorEvent{Content: "Invalid message format"})
			continue
		}
		if msg.Type != inboundChatMessage {
			continue
		}

		if !turns.TryAcquire(1) {
			sess.SendEvent(ctx, EventError, ErrorEvent{Content: "A request is already being processed. Please wait."})
			continue
		}
		go func(task string) {
			defer turns.Release(1)
			h.runTurn(ctx, sess, convo, task)
		}(msg.Content)
	}
}

func (h *Handler) runTurn(ctx context.Context, sess eventsink.Sink, convo *service.ConversationService, task string) {
	sess.SendEvent(ctx, EventUserMessage, UserMessageEvent{Content: task})

	_, err := convo.Run(ctx, task, func(m conversation.Message) {
		h.emit(ctx, sess, m)
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrTurnTimeout):
		sess.SendEvent(ctx, EventError, ErrorEvent{Content: "Request timed out. Please try again."})
	case errors.Is(err, domain.ErrRoutingLoop):
		sess.SendEvent(ctx, EventError, ErrorEvent{Content: "The conversation could not be routed to a specialist. Please try again."})
	case errors.Is(err, domain.ErrTurnInProgress):
		sess.SendEvent(ctx, EventError, ErrorEvent{Content: "A request is already being processed. Please wait."})
	default:
		slog.Error("turn failed", "error", err)
		sess.SendEvent(ctx, EventError, ErrorEvent{Content: fmt.Sprintf("Error processing message: %v", err)})
	}
}

// emit translates one transcript message into client events. Tool
// activity becomes tool_start/tool_complete pairs, text replies become
// agent_message frames with resolved references, and silent steps
// surface as agent_working.
func (h *Handler) emit(ctx context.Context, sess eventsink.Sink, m conversation.Message) {
	for _, tc := range m.ToolCalls {
		sess.SendEvent(ctx, EventToolStart, ToolEvent{
			Agent:   m.Agent,
			Tool:    tc.Name,
			Content: "Using tool: " + tc.Name,
		})
		if tc.Completed() {
			sess.SendEvent(ctx, EventToolComplete, ToolEvent{
				Agent:   m.Agent,
				Tool:    tc.Name,
				Content: "Completed tool: " + tc.Name,
			})
		}
	}

	if strings.TrimSpace(m.Content) == "" {
		if len(m.ToolCalls) == 0 {
			sess.SendEvent(ctx, EventAgentWorking, AgentWorkingEvent{
				Agent:   m.Agent,
				Content: fmt.Sprintf("%s is working%s...", m.Agent, h.working[m.Agent]),
			})
		}
		return
	}

	files := h.refs.Files(ctx, m.Content)
	if files == nil {
		files = []widget.FileReference{}
	}
	widgets := h.refs.Widgets(ctx, m.Content)
	if widgets == nil {
		widgets = []widget.Reference{}
	}
	sess.SendEvent(ctx, EventAgentMessage, AgentMessageEvent{
		Agent:   m.Agent,
		Content: m.Content,
		Files:   files,
		Widgets: widgets,
	})
}
