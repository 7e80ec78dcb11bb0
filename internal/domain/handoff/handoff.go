// Package handoff provides the directed edge table governing which agent
// may receive conversational control from which other agent.
package handoff

import (
	"fmt"

	"github.com/mhollis/agentcare/internal/domain"
)

// Edge is one legal transfer: source may hand off to target.
// Rationale is surfaced to the source agent so the model knows when the
// transfer is appropriate; the router only uses (Source, Target).
type Edge struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Rationale string `json:"rationale"`
}

// Table is the full set of legal handoff edges for one orchestration.
// It is built once at orchestration construction time and never mutated
// afterwards; the edge set is directed and need not be symmetric.
type Table struct {
	edges map[string][]Edge // keyed by source agent name
}

// NewTable returns an empty edge table.
func NewTable() *Table {
	return &Table{edges: make(map[string][]Edge)}
}

// Add appends one directed edge and returns the table for chaining.
func (t *Table) Add(source, target, rationale string) *Table {
	t.edges[source] = append(t.edges[source], Edge{
		Source:    source,
		Target:    target,
		Rationale: rationale,
	})
	return t
}

// AddMany appends one edge from source to every target in the map and
// returns the table for chaining.
func (t *Table) AddMany(source string, targets map[string]string) *Table {
	for target, rationale := range targets {
		t.Add(source, target, rationale)
	}
	return t
}

// Allowed reports whether source may hand off to target.
func (t *Table) Allowed(source, target string) bool {
	for _, e := range t.edges[source] {
		if e.Target == target {
			return true
		}
	}
	return false
}

// Targets returns the outgoing edges for the given source agent.
func (t *Table) Targets(source string) []Edge {
	return t.edges[source]
}

// Validate checks that every edge endpoint is a registered agent name.
func (t *Table) Validate(registered map[string]bool) error {
	for source, edges := range t.edges {
		if !registered[source] {
			return fmt.Errorf("%w: handoff source %q is not a registered agent", domain.ErrValidation, source)
		}
		for _, e := range edges {
			if !registered[e.Target] {
				return fmt.Errorf("%w: handoff target %q (from %q) is not a registered agent",
					domain.ErrValidation, e.Target, source)
			}
		}
	}
	return nil
}
