// Package agentruntime defines the port for the opaque agent capability:
// something that accepts instructions plus context and produces text,
// tool invocations and an optional handoff request.
package agentruntime

import (
	"context"
	"encoding/json"

	"github.com/mhollis/agentcare/internal/domain/agent"
	"github.com/mhollis/agentcare/internal/domain/conversation"
	"github.com/mhollis/agentcare/internal/domain/handoff"
)

// ToolSpec describes one tool to the underlying model.
type ToolSpec struct {
	Name        string
	Description string
	// Parameters is a JSON schema object describing the tool arguments.
	Parameters json.RawMessage
}

// ToolExecutor runs domain tools on behalf of an invoker. Execute must be
// atomic from the caller's perspective: a cancelled turn never observes a
// half-written artifact or half-created ticket.
type ToolExecutor interface {
	// Specs returns the tool schemas for the named tools, in order.
	// Unknown names are skipped.
	Specs(names []string) []ToolSpec

	// Execute runs the named tool and returns its textual result.
	Execute(ctx context.Context, name, arguments string) (string, error)
}

// Request is everything the invoker needs for one agent activation.
type Request struct {
	// Agent is the definition of the agent being activated.
	Agent agent.Definition

	// Task is the user message or system prompt driving the turn.
	Task string

	// History is the transcript accumulated so far, oldest first.
	History []conversation.Message

	// Handoffs are the legal transfer destinations for this agent,
	// surfaced to the model so it knows where it may route.
	Handoffs []handoff.Edge

	// Tools executes domain tools for this agent. Nil when the agent
	// has none.
	Tools ToolExecutor
}

// Result is the outcome of one agent activation.
type Result struct {
	// Messages are the transcript entries the activation produced, in
	// emission order: zero or more tool-activity messages followed by
	// at most one reply. Empty content with tool calls means the step
	// was pure tool use.
	Messages []conversation.Message

	// Handoffs are the agent names the activation requested control be
	// transferred to. Routing policy requires exactly one; validation
	// is the router's job, not the invoker's.
	Handoffs []string
}

// Invoker is the narrow interface over the long-latency external agent
// call. Implementations must honor ctx cancellation.
type Invoker interface {
	// Name identifies the backing runtime (e.g. "openai", "scripted").
	Name() string

	// Invoke activates the agent once and returns what it produced.
	Invoke(ctx context.Context, req Request) (*Result, error)
}
