package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "agentcare"

// Metrics holds all conversation metric instruments.
type Metrics struct {
	TurnsStarted      metric.Int64Counter
	TurnsCompleted    metric.Int64Counter
	TurnsFailed       metric.Int64Counter
	HandoffsAccepted  metric.Int64Counter
	HandoffsRejected  metric.Int64Counter
	RoutingLoopAborts metric.Int64Counter
	ToolCalls         metric.Int64Counter
	TurnDuration      metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.TurnsStarted, err = meter.Int64Counter("agentcare.turns.started",
		metric.WithDescription("Number of conversation turns started"))
	if err != nil {
		return nil, err
	}

	m.TurnsCompleted, err = meter.Int64Counter("agentcare.turns.completed",
		metric.WithDescription("Number of conversation turns completed"))
	if err != nil {
		return nil, err
	}

	m.TurnsFailed, err = meter.Int64Counter("agentcare.turns.failed",
		metric.WithDescription("Number of conversation turns failed"))
	if err != nil {
		return nil, err
	}

	m.HandoffsAccepted, err = meter.Int64Counter("agentcare.handoffs.accepted",
		metric.WithDescription("Number of accepted agent handoffs"))
	if err != nil {
		return nil, err
	}

	m.HandoffsRejected, err = meter.Int64Counter("agentcare.handoffs.rejected",
		metric.WithDescription("Number of rejected agent handoffs"))
	if err != nil {
		return nil, err
	}

	m.RoutingLoopAborts, err = meter.Int64Counter("agentcare.handoffs.loop_aborts",
		metric.WithDescription("Number of turns aborted at the handoff hop limit"))
	if err != nil {
		return nil, err
	}

	m.ToolCalls, err = meter.Int64Counter("agentcare.toolcalls",
		metric.WithDescription("Number of tool calls"))
	if err != nil {
		return nil, err
	}

	m.TurnDuration, err = meter.Float64Histogram("agentcare.turn.duration_seconds",
		metric.WithDescription("Turn duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
