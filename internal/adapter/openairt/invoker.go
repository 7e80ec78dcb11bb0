// Package openairt invokes agents through an OpenAI-compatible chat
// completion API, mapping domain tools and handoff edges onto function
// calling.
package openairt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/mhollis/agentcare/internal/domain/agent"
	"github.com/mhollis/agentcare/internal/domain/conversation"
	"github.com/mhollis/agentcare/internal/port/agentruntime"
)

// handoffPrefix names the synthetic functions that request a transfer.
const handoffPrefix = "transfer_to_"

// maxToolRounds bounds the tool loop within a single activation.
const maxToolRounds = 8

// Invoker drives one chat completion conversation per activation.
type Invoker struct {
	client *openai.Client
	model  string
}

// New creates an invoker. baseURL is optional and allows pointing at any
// OpenAI-compatible endpoint.
func New(apiKey, baseURL, model string) *Invoker {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Invoker{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (v *Invoker) Name() string { return "openai" }

// Invoke runs the activation's tool loop: the model may call domain
// tools any number of rounds, then either reply or request a transfer
// via a transfer_to_* function.
func (v *Invoker) Invoke(ctx context.Context, req agentruntime.Request) (*agentruntime.Result, error) {
	messages := v.seedMessages(req)
	tools := v.buildTools(req)

	result := &agentruntime.Result{}
	for round := 0; round < maxToolRounds; round++ {
		resp, err := v.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    v.model,
			Messages: messages,
			Tools:    tools,
		})
		if err != nil {
			return nil, fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("chat completion returned no choices")
		}
		msg := resp.Choices[0].Message

		if len(msg.ToolCalls) == 0 {
			result.Messages = append(result.Messages, conversation.Message{
				Agent:     req.Agent.Name,
				Role:      agent.RoleAgent,
				Content:   msg.Content,
				CreatedAt: time.Now(),
			})
			return result, nil
		}

		var domainCalls []openai.ToolCall
		for _, tc := range msg.ToolCalls {
			if target, ok := strings.CutPrefix(tc.Function.Name, handoffPrefix); ok {
				result.Handoffs = append(result.Handoffs, target)
			} else {
				domainCalls = append(domainCalls, tc)
			}
		}

		if len(domainCalls) == 0 {
			if msg.Content != "" {
				result.Messages = append(result.Messages, conversation.Message{
					Agent:     req.Agent.Name,
					Role:      agent.RoleAgent,
					Content:   msg.Content,
					CreatedAt: time.Now(),
				})
			}
			return result, nil
		}

		messages = append(messages, msg)
		activity := conversation.Message{
			Agent:     req.Agent.Name,
			Role:      agent.RoleAgent,
			CreatedAt: time.Now(),
		}
		for _, tc := range domainCalls {
			out, err := v.execute(ctx, req, tc)
			if err != nil {
				// Feed the failure back so the model can recover or
				// apologize instead of killing the turn.
				out = fmt.Sprintf(`{"error": %q}`, err.Error())
				slog.Warn("tool call failed", "agent", req.Agent.Name, "tool", tc.Function.Name, "error", err)
			}
			activity.ToolCalls = append(activity.ToolCalls, conversation.ToolCall{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
				Result:    out,
			})
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    out,
				ToolCallID: tc.ID,
			})
		}
		result.Messages = append(result.Messages, activity)

		if len(result.Handoffs) > 0 {
			return result, nil
		}
	}
	return nil, fmt.Errorf("agent %s exceeded %d tool rounds", req.Agent.Name, maxToolRounds)
}

func (v *Invoker) execute(ctx context.Context, req agentruntime.Request, tc openai.ToolCall) (string, error) {
	if req.Tools == nil {
		return "", fmt.Errorf("agent has no tool executor")
	}
	if !req.Agent.HasTool(tc.Function.Name) {
		return "", fmt.Errorf("tool %q is not available to agent %s", tc.Function.Name, req.Agent.Name)
	}
	return req.Tools.Execute(ctx, tc.Function.Name, tc.Function.Arguments)
}

// seedMessages builds the chat history: the agent's instructions plus
// the transcript so far. Pure tool activity entries are elided; the
// model only needs the text that was exchanged.
func (v *Invoker) seedMessages(req agentruntime.Request) []openai.ChatCompletionMessage {
	system := req.Agent.Instructions
	if len(req.Handoffs) > 0 {
		var b strings.Builder
		b.WriteString(system)
		b.WriteString("\n\nYou may transfer this conversation using the transfer functions:\n")
		for _, e := range req.Handoffs {
			fmt.Fprintf(&b, "- %s%s: %s\n", handoffPrefix, e.Target, e.Rationale)
		}
		system = b.String()
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
	}
	for _, m := range req.History {
		if m.Content == "" {
			continue
		}
		role := openai.ChatMessageRoleAssistant
		if m.Role == agent.RoleUser {
			role = openai.ChatMessageRoleUser
		}
		content := m.Content
		if m.Role != agent.RoleUser && m.Agent != req.Agent.Name {
			content = fmt.Sprintf("[%s] %s", m.Agent, m.Content)
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: content,
		})
	}
	return messages
}

// buildTools merges the agent's domain tools with one synthetic transfer
// function per legal handoff edge.
func (v *Invoker) buildTools(req agentruntime.Request) []openai.Tool {
	var tools []openai.Tool
	if req.Tools != nil {
		for _, spec := range req.Tools.Specs(req.Agent.Tools) {
			tools = append(tools, openai.Tool{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        spec.Name,
					Description: spec.Description,
					Parameters:  spec.Parameters,
				},
			})
		}
	}
	for _, e := range req.Handoffs {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        handoffPrefix + e.Target,
				Description: e.Rationale,
				Parameters:  json.RawMessage(`{"type": "object", "properties": {}}`),
			},
		})
	}
	return tools
}
