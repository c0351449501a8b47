// audit/service.go
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/model"
	"github.com/atriumhq/atrium/util"
)

// EventDeniedAccess is published on the event bus for every denied decision
// so alerting can react without polling the audit index.
const EventDeniedAccess = "audit.access_denied"

type Service interface {
	Record(event Event)
	RecordDecision(ctx context.Context, user model.UserContext, decision model.AccessDecision)
	QueryEvents(ctx context.Context, from, to time.Time, userID, resource string) ([]Event, error)
	Start(ctx context.Context)
	Close() error
}

// service buffers events in a channel drained by a worker pool, so recording
// never blocks the decision path. When the buffer is full events are dropped
// with a warning rather than stalling a request.
type service struct {
	repo     Repository
	eventBus *util.EventBus
	events   chan Event
	workers  int
	group    *errgroup.Group
	closed   sync.Once
}

// NewService creates an audit service writing through repo. eventBus may be
// nil. Start must be called before events are drained.
func NewService(repo Repository, eventBus *util.EventBus, bufferSize, workers int) Service {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	if workers <= 0 {
		workers = 4
	}
	return &service{
		repo:     repo,
		eventBus: eventBus,
		events:   make(chan Event, bufferSize),
		workers:  workers,
	}
}

// Start launches the worker pool. Workers run until Close is called and the
// buffer is drained.
func (s *service) Start(ctx context.Context) {
	s.group, ctx = errgroup.WithContext(ctx)
	for i := 0; i < s.workers; i++ {
		s.group.Go(func() error {
			for event := range s.events {
				if err := s.repo.IndexEvent(ctx, event); err != nil {
					logger.Error("Failed to index audit event",
						zap.String("eventID", event.ID),
						zap.String("type", string(event.Type)),
						zap.Error(err))
				}
			}
			return nil
		})
	}
}

// Record enqueues an event without blocking, filling in id and timestamp
// when the caller left them empty.
func (s *service) Record(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	select {
	case s.events <- event:
	default:
		logger.Warn("Audit buffer full, dropping event",
			zap.String("type", string(event.Type)),
			zap.String("userID", event.UserID))
	}
}

// RecordDecision satisfies the guard's recorder. Denied decisions also
// publish an alert on the event bus.
func (s *service) RecordDecision(ctx context.Context, user model.UserContext, decision model.AccessDecision) {
	event := NewDecisionEvent(user, decision)
	s.Record(event)

	if !decision.Allowed && s.eventBus != nil {
		s.eventBus.Publish(ctx, EventDeniedAccess, event)
	}
}

func (s *service) QueryEvents(ctx context.Context, from, to time.Time, userID, resource string) ([]Event, error) {
	return s.repo.QueryEvents(ctx, from, to, userID, resource)
}

// Close stops accepting events and waits for the workers to drain the
// buffer.
func (s *service) Close() error {
	s.closed.Do(func() {
		close(s.events)
	})
	if s.group == nil {
		return nil
	}
	return s.group.Wait()
}
