package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	acotel "github.com/mhollis/agentcare/internal/adapter/otel"
	"github.com/mhollis/agentcare/internal/domain"
	"github.com/mhollis/agentcare/internal/domain/agent"
	"github.com/mhollis/agentcare/internal/domain/conversation"
	"github.com/mhollis/agentcare/internal/port/agentruntime"
)

// MessageCallback observes each message an agent produces, in emission
// order. It is invoked exactly once per message; a panicking callback is
// contained and does not abort the turn.
type MessageCallback func(m conversation.Message)

// ConversationService drives one conversation: it owns the transcript,
// activates the routed agent, and follows accepted handoffs until an
// agent finishes its turn without requesting a transfer.
type ConversationService struct {
	router  *Router
	invoker agentruntime.Invoker
	tools   agentruntime.ToolExecutor
	metrics *acotel.Metrics
	timeout time.Duration
	session string

	mu      sync.Mutex
	turnMu  sync.Mutex
	history []conversation.Message
}

// NewConversationService creates the turn engine for one conversation.
// metrics may be nil; timeout <= 0 disables the per-turn deadline.
func NewConversationService(
	router *Router,
	invoker agentruntime.Invoker,
	tools agentruntime.ToolExecutor,
	metrics *acotel.Metrics,
	timeout time.Duration,
) *ConversationService {
	return &ConversationService{
		router:  router,
		invoker: invoker,
		tools:   tools,
		metrics: metrics,
		timeout: timeout,
	}
}

// SetSessionID tags the conversation's telemetry with the owning
// session. Call before the first Run.
func (s *ConversationService) SetSessionID(id string) {
	s.session = id
}

// Router exposes the routing state for the presentation layer.
func (s *ConversationService) Router() *Router {
	return s.router
}

// History returns a copy of the transcript accumulated so far.
func (s *ConversationService) History() []conversation.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]conversation.Message(nil), s.history...)
}

// Run processes one user message as a single turn and returns the
// messages the turn produced, in order. Only one turn may be outstanding
// per conversation; a second concurrent call fails with
// ErrTurnInProgress. A turn that outlives the configured deadline fails
// with ErrTurnTimeout; in both failure modes the routing state stays at
// the last committed agent and the transcript keeps everything produced
// before the abort.
func (s *ConversationService) Run(ctx context.Context, task string, onMessage MessageCallback) ([]conversation.Message, error) {
	if !s.turnMu.TryLock() {
		return nil, domain.ErrTurnInProgress
	}
	defer s.turnMu.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	active := s.router.Active()
	ctx, span := acotel.StartTurnSpan(ctx, s.session, active.Name)
	defer span.End()
	if s.metrics != nil {
		s.metrics.TurnsStarted.Add(ctx, 1)
	}

	s.router.StartTurn()
	s.append(conversation.Message{
		Agent:     "user",
		Role:      agent.RoleUser,
		Content:   task,
		CreatedAt: time.Now(),
	})

	var produced []conversation.Message
	for {
		res, err := s.invoke(ctx, active.Name, agentruntime.Request{
			Agent:    active,
			Task:     task,
			History:  s.History(),
			Handoffs: s.router.Targets(),
			Tools:    s.tools,
		})
		if err != nil {
			return produced, s.fail(ctx, started, fmt.Errorf("invoke %s: %w", active.Name, mapTimeout(ctx, err)))
		}

		for _, m := range res.Messages {
			if m.CreatedAt.IsZero() {
				m.CreatedAt = time.Now()
			}
			s.append(m)
			produced = append(produced, m)
			deliver(onMessage, m)
		}

		next, transferred, err := s.router.Transfer(ctx, res.Handoffs)
		if err != nil {
			if s.metrics != nil && errors.Is(err, domain.ErrRoutingLoop) {
				s.metrics.RoutingLoopAborts.Add(ctx, 1)
			}
			return produced, s.fail(ctx, started, err)
		}
		if !transferred {
			if s.metrics != nil {
				if len(res.Handoffs) > 0 {
					s.metrics.HandoffsRejected.Add(ctx, 1)
				}
				s.metrics.TurnsCompleted.Add(ctx, 1)
				s.metrics.TurnDuration.Record(ctx, time.Since(started).Seconds())
			}
			return produced, nil
		}
		if s.metrics != nil {
			s.metrics.HandoffsAccepted.Add(ctx, 1)
		}
		active = next
	}
}

func (s *ConversationService) invoke(ctx context.Context, name string, req agentruntime.Request) (*agentruntime.Result, error) {
	ctx, span := acotel.StartInvocationSpan(ctx, name, s.invoker.Name())
	defer span.End()
	return s.invoker.Invoke(ctx, req)
}

func (s *ConversationService) append(m conversation.Message) {
	s.mu.Lock()
	s.history = append(s.history, m)
	s.mu.Unlock()
}

func (s *ConversationService) fail(ctx context.Context, started time.Time, err error) error {
	if s.metrics != nil {
		s.metrics.TurnsFailed.Add(ctx, 1)
		s.metrics.TurnDuration.Record(ctx, time.Since(started).Seconds())
	}
	return err
}

// deliver invokes the callback once, containing any panic so one bad
// observer cannot abort the turn.
func deliver(cb MessageCallback, m conversation.Message) {
	if cb == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("message callback panicked", "agent", m.Agent, "panic", r)
		}
	}()
	cb(m)
}

// mapTimeout translates a deadline expiry into the domain timeout error.
func mapTimeout(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.ErrTurnTimeout
	}
	return err
}
