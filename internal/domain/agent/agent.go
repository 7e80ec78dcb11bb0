// Package agent defines the immutable identity and capability set of a
// support agent participating in handoff orchestration.
package agent

import (
	"fmt"

	"github.com/mhollis/agentcare/internal/domain"
)

// Role identifies the author kind of a transcript entry.
type Role string

const (
	RoleUser   Role = "user"
	RoleAgent  Role = "assistant"
	RoleSystem Role = "system"
	RoleTool   Role = "tool"
)

// Definition describes one agent: who it is, what it is instructed to do,
// which tools it may invoke and which peers it may hand off to.
// Definitions are immutable after registration.
type Definition struct {
	// Name uniquely identifies the agent within an orchestration.
	Name string `json:"name"`

	// Description is a short human-readable summary, surfaced to peers
	// when they consider a handoff.
	Description string `json:"description"`

	// Instructions is the system prompt handed to the underlying model.
	Instructions string `json:"instructions"`

	// Tools lists the names of domain tools this agent may invoke.
	Tools []string `json:"tools,omitempty"`
}

// Validate checks that a Definition has all required fields.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: agent name is required", domain.ErrValidation)
	}
	if d.Instructions == "" {
		return fmt.Errorf("%w: agent %q has no instructions", domain.ErrValidation, d.Name)
	}
	return nil
}

// HasTool reports whether the agent is allowed to invoke the named tool.
func (d *Definition) HasTool(name string) bool {
	for _, t := range d.Tools {
		if t == name {
			return true
		}
	}
	return false
}
