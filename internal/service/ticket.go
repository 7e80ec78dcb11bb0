package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mhollis/agentcare/internal/domain"
	"github.com/mhollis/agentcare/internal/domain/ticket"
)

// ticketIDPrefix is prepended to every generated ticket id.
const ticketIDPrefix = "CS-TICKET-"

// TicketService is the process-wide append-only registry of support
// tickets. It is injected into the escalation tooling and the widget
// resolver; there is no ambient singleton.
type TicketService struct {
	mu      sync.Mutex
	tickets []ticket.Ticket

	customerID   string
	customerName string
	phoneNumber  string
	now          func() time.Time
}

// NewTicketService creates an empty registry bound to the demo customer
// identity.
func NewTicketService(customerID, customerName, phoneNumber string) *TicketService {
	return &TicketService{
		customerID:   customerID,
		customerName: customerName,
		phoneNumber:  phoneNumber,
		now:          time.Now,
	}
}

// Create appends a new ticket. An empty priority defaults to medium;
// status always starts open. The append is atomic: a cancelled turn
// never observes a half-created ticket.
func (s *TicketService) Create(_ context.Context, issueSummary string, priority ticket.Priority) (ticket.Ticket, error) {
	if issueSummary == "" {
		return ticket.Ticket{}, fmt.Errorf("%w: issue summary is required", domain.ErrValidation)
	}
	if priority == "" {
		priority = ticket.PriorityMedium
	}
	if !priority.Valid() {
		return ticket.Ticket{}, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, priority)
	}

	t := ticket.Ticket{
		ID:           ticketIDPrefix + strings.ToUpper(uuid.NewString()[:8]),
		CreatedAt:    s.now(),
		CustomerID:   s.customerID,
		CustomerName: s.customerName,
		PhoneNumber:  s.phoneNumber,
		IssueSummary: issueSummary,
		Priority:     priority,
		Status:       ticket.StatusOpen,
		AssignedTo:   "Next available agent",
	}

	s.mu.Lock()
	s.tickets = append(s.tickets, t)
	total := len(s.tickets)
	s.mu.Unlock()

	slog.Info("support ticket created", "ticket_id", t.ID, "priority", t.Priority, "total", total)
	return t, nil
}

// FindByID returns the ticket with the given id. Linear scan: fine at
// demo scale, index by id if this ever grows.
func (s *TicketService) FindByID(_ context.Context, id string) (ticket.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return ticket.Ticket{}, fmt.Errorf("ticket %s: %w", id, domain.ErrNotFound)
}

// Count returns the number of tickets in the registry.
func (s *TicketService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickets)
}
