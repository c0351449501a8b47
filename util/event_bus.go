// util/event_bus.go

package util

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	logger "github.com/atriumhq/atrium/logging"
)

// Event is a message published on the bus.
type Event struct {
	Type    string
	Payload any
}

// EventHandler consumes one event. Handlers run on their own goroutine; a
// returned error is collected by the bus error loop.
type EventHandler func(context.Context, Event) error

// EventBus is a small in-process pub/sub that decouples alerting and
// notifications from the decision path.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]EventHandler
	errorChan   chan error
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]EventHandler),
		errorChan:   make(chan error, 100),
	}
}

// Subscribe registers a handler for an event type. Subscribers live for the
// process; there is no unsubscribe.
func (eb *EventBus) Subscribe(eventType string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers[eventType] = append(eb.subscribers[eventType], handler)
}

// Publish fans the event out to every subscriber of its type. Each handler
// runs asynchronously so publishers never wait.
func (eb *EventBus) Publish(ctx context.Context, eventType string, payload any) {
	eb.mu.RLock()
	handlers := eb.subscribers[eventType]
	eb.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	event := Event{Type: eventType, Payload: payload}
	for _, handler := range handlers {
		go func(h EventHandler) {
			if err := h(ctx, event); err != nil {
				select {
				case eb.errorChan <- fmt.Errorf("event handler error: %w", err):
				default:
					logger.Error("Event bus error channel full",
						zap.Error(err),
						zap.String("eventType", eventType))
				}
			}
		}(handler)
	}
}

// Start begins draining handler errors. It returns when ctx is done.
func (eb *EventBus) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case err := <-eb.errorChan:
				logger.Error("Event handler error", zap.Error(err))
			case <-ctx.Done():
				return
			}
		}
	}()
}
