// Package ticket defines the support ticket record appended by the
// escalation agent's tooling.
package ticket

import "time"

// Priority is the urgency attached to a ticket at creation time.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the recognized priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// StatusOpen is the only status a ticket carries in this scope; tickets
// are never mutated after creation.
const StatusOpen = "open"

// Ticket is one support ticket. Records are append-only: no update or
// delete operations exist.
type Ticket struct {
	ID           string    `json:"ticket_id"`
	CreatedAt    time.Time `json:"created_at"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	PhoneNumber  string    `json:"phone_number"`
	IssueSummary string    `json:"issue_summary"`
	Priority     Priority  `json:"priority"`
	Status       string    `json:"status"`
	AssignedTo   string    `json:"assigned_to"`
}
