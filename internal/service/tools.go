package service

import (
	"context"
	"fmt"
	"log/slog"

	acotel "github.com/mhollis/agentcare/internal/adapter/otel"
	"github.com/mhollis/agentcare/internal/domain"
	"github.com/mhollis/agentcare/internal/port/agentruntime"
)

// ToolFunc executes one tool. arguments is the raw JSON argument object
// produced by the model; the returned string is fed back verbatim.
type ToolFunc func(ctx context.Context, arguments string) (string, error)

// Tool pairs a model-facing schema with its executor.
type Tool struct {
	Spec agentruntime.ToolSpec
	Run  ToolFunc
}

// ToolRegistry holds every registered domain tool and implements the
// executor port handed to agent invokers. Registration happens at
// startup; lookups afterwards are lock-free.
type ToolRegistry struct {
	tools   map[string]Tool
	metrics *acotel.Metrics
}

// NewToolRegistry creates an empty registry. metrics may be nil.
func NewToolRegistry(metrics *acotel.Metrics) *ToolRegistry {
	return &ToolRegistry{
		tools:   make(map[string]Tool),
		metrics: metrics,
	}
}

// Register adds tools to the registry. Registering a duplicate name is a
// programming error and panics at startup.
func (r *ToolRegistry) Register(tools ...Tool) *ToolRegistry {
	for _, t := range tools {
		if t.Spec.Name == "" || t.Run == nil {
			panic("tool registration requires a name and an executor")
		}
		if _, dup := r.tools[t.Spec.Name]; dup {
			panic(fmt.Sprintf("duplicate tool %q", t.Spec.Name))
		}
		r.tools[t.Spec.Name] = t
	}
	return r
}

// Specs returns the schemas for the named tools, in order. Unknown names
// are skipped.
func (r *ToolRegistry) Specs(names []string) []agentruntime.ToolSpec {
	specs := make([]agentruntime.ToolSpec, 0, len(names))
	for _, name := range names {
		if t, ok := r.tools[name]; ok {
			specs = append(specs, t.Spec)
		}
	}
	return specs
}

// Execute runs the named tool.
func (r *ToolRegistry) Execute(ctx context.Context, name, arguments string) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: tool %q", domain.ErrNotFound, name)
	}

	ctx, span := acotel.StartToolCallSpan(ctx, name)
	defer span.End()
	if r.metrics != nil {
		r.metrics.ToolCalls.Add(ctx, 1)
	}

	out, err := t.Run(ctx, arguments)
	if err != nil {
		slog.Error("tool failed", "tool", name, "error", err)
		return "", fmt.Errorf("tool %s: %w", name, err)
	}
	slog.Debug("tool completed", "tool", name)
	return out, nil
}
