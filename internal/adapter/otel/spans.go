package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "agentcare"

// StartTurnSpan starts a span for one conversation turn.
func StartTurnSpan(ctx context.Context, sessionID, agent string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "turn",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("agent.name", agent),
		),
	)
}

// StartInvocationSpan starts a span for one agent activation within a turn.
func StartInvocationSpan(ctx context.Context, agent, runtime string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "invocation",
		trace.WithAttributes(
			attribute.String("agent.name", agent),
			attribute.String("runtime.name", runtime),
		),
	)
}

// StartToolCallSpan starts a span for a tool call within an activation.
func StartToolCallSpan(ctx context.Context, tool string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "toolcall",
		trace.WithAttributes(
			attribute.String("toolcall.tool", tool),
		),
	)
}
