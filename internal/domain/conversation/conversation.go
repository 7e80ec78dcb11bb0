// Package conversation defines the transcript types emitted during a turn.
package conversation

import (
	"time"

	"github.com/mhollis/agentcare/internal/domain/agent"
)

// ToolCall records one tool invocation made by an agent, including its
// result once the tool has run.
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"`
	Result    string `json:"result,omitempty"`
}

// Completed reports whether the tool call has produced a result.
func (c ToolCall) Completed() bool {
	return c.Result != ""
}

// Message is one append-only transcript entry. Content may be empty when
// the turn step was pure tool use.
type Message struct {
	Agent     string     `json:"agent"`
	Role      agent.Role `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsToolActivity reports whether the message carries tool calls but no
// user-visible text.
func (m *Message) IsToolActivity() bool {
	return m.Content == "" && len(m.ToolCalls) > 0
}
