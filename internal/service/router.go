package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mhollis/agentcare/internal/domain"
	"github.com/mhollis/agentcare/internal/domain/agent"
	"github.com/mhollis/agentcare/internal/domain/handoff"
)

// DefaultHopLimit caps agent-to-agent transfers within a single turn.
const DefaultHopLimit = 10

// Router tracks which agent owns a conversation and enforces the
// handoff policy: transfers move along declared edges only, one
// destination at a time, bounded per turn. Rejected transfers leave the
// active agent unchanged.
type Router struct {
	agents   map[string]agent.Definition
	table    *handoff.Table
	hopLimit int

	mu     sync.Mutex
	active string
	hops   int
}

// NewRouter builds a router over the given agent set and handoff table.
// initial names the agent that receives the first message. hopLimit <= 0
// selects DefaultHopLimit.
func NewRouter(agents []agent.Definition, table *handoff.Table, initial string, hopLimit int) (*Router, error) {
	byName := make(map[string]agent.Definition, len(agents))
	registered := make(map[string]bool, len(agents))
	for _, a := range agents {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byName[a.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate agent %q", domain.ErrValidation, a.Name)
		}
		byName[a.Name] = a
		registered[a.Name] = true
	}
	if _, ok := byName[initial]; !ok {
		return nil, fmt.Errorf("%w: initial agent %q is not registered", domain.ErrValidation, initial)
	}
	if err := table.Validate(registered); err != nil {
		return nil, err
	}
	if hopLimit <= 0 {
		hopLimit = DefaultHopLimit
	}
	return &Router{
		agents:   byName,
		table:    table,
		hopLimit: hopLimit,
		active:   initial,
	}, nil
}

// Active returns the agent currently owning the conversation.
func (r *Router) Active() agent.Definition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.agents[r.active]
}

// Agent looks up a registered agent by name.
func (r *Router) Agent(name string) (agent.Definition, bool) {
	a, ok := r.agents[name]
	return a, ok
}

// Targets returns the agents the active agent may transfer to.
func (r *Router) Targets() []handoff.Edge {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.Targets(r.active)
}

// StartTurn resets the per-turn hop counter. Callers invoke it once per
// incoming user message before any Transfer.
func (r *Router) StartTurn() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hops = 0
}

// Transfer applies one handoff request. Zero targets means the active
// agent keeps the conversation. A request naming more than one target is
// rejected whole, as is any target without a declared edge from the
// active agent; both leave the active agent unchanged and return
// ok=false with a nil error. Exceeding the per-turn hop limit aborts
// with ErrRoutingLoop, also without changing the active agent.
func (r *Router) Transfer(ctx context.Context, targets []string) (agent.Definition, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(targets) == 0 {
		return agent.Definition{}, false, nil
	}
	if len(targets) > 1 {
		slog.Warn("handoff rejected: multiple targets in one turn",
			"source", r.active,
			"targets", targets,
		)
		return agent.Definition{}, false, nil
	}

	target := targets[0]
	next, registered := r.agents[target]
	if !registered || !r.table.Allowed(r.active, target) {
		slog.Warn("handoff rejected: no declared route",
			"source", r.active,
			"target", target,
		)
		return agent.Definition{}, false, nil
	}

	if r.hops+1 > r.hopLimit {
		slog.Error("handoff aborted: hop limit exceeded",
			"source", r.active,
			"target", target,
			"limit", r.hopLimit,
		)
		return agent.Definition{}, false, fmt.Errorf("%w (limit %d)", domain.ErrRoutingLoop, r.hopLimit)
	}

	r.hops++
	slog.Info("handoff accepted",
		"source", r.active,
		"target", target,
		"hop", r.hops,
	)
	r.active = target
	return next, true, nil
}
