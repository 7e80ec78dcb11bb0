// Package eventsink defines the port for delivering structured events to
// the presentation layer of one session.
package eventsink

import "context"

// Sink delivers typed events to a connected client. Delivery is
// best-effort: a failing or slow sink must never block turn progression,
// so implementations queue or drop rather than stall.
type Sink interface {
	// SendEvent marshals and delivers one event of the given type.
	SendEvent(ctx context.Context, eventType string, payload any)
}
