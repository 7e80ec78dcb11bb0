package ws

import "github.com/mhollis/agentcare/internal/domain/widget"

// Event type constants for WebSocket messages. Every outbound frame is a
// flat JSON object carrying "type" plus the event's fields.
const (
	EventSystem       = "system"
	EventError        = "error"
	EventUserMessage  = "user_message"
	EventAgentMessage = "agent_message"
	EventAgentWorking = "agent_working"
	EventToolStart    = "tool_start"
	EventToolComplete = "tool_complete"
)

// Inbound message types.
const (
	inboundChatMessage = "chat_message"
)

// SystemEvent announces session lifecycle changes.
type SystemEvent struct {
	Content string `json:"content"`
}

// ErrorEvent reports a failure the client should surface.
type ErrorEvent struct {
	Content string `json:"content"`
}

// UserMessageEvent echoes the accepted user message back to the client.
type UserMessageEvent struct {
	Content string `json:"content"`
}

// AgentMessageEvent carries one agent reply with its resolved file and
// widget references.
type AgentMessageEvent struct {
	Agent   string                 `json:"agent"`
	Content string                 `json:"content"`
	Files   []widget.FileReference `json:"files"`
	Widgets []widget.Reference     `json:"widgets"`
}

// AgentWorkingEvent signals that an agent produced no text yet and is
// still processing.
type AgentWorkingEvent struct {
	Agent   string `json:"agent"`
	Content string `json:"content"`
}

// ToolEvent reports tool activity, for both tool_start and
// tool_complete frames.
type ToolEvent struct {
	Agent   string `json:"agent"`
	Tool    string `json:"tool"`
	Content string `json:"content"`
}

// inboundMessage is the envelope clients send.
type inboundMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
