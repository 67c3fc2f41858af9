package events

import (
	"context"
	"sync"

	"lookup_widget_backend/platform/logger"
)

// InMemoryBus is a process-local Bus implementation.
// Publish dispatches handlers on separate goroutines; PublishSync runs them
// inline and returns the first handler error.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the named event.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all subscribers asynchronously.
// Handler errors are logged, not propagated.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	for _, h := range b.subscribers(event.EventName()) {
		handler := h
		go func() {
			if err := handler.Handle(context.WithoutCancel(ctx), event); err != nil && b.log != nil {
				b.log.Error("event_handler_failed",
					"event", event.EventName(),
					"error", err.Error(),
				)
			}
		}()
	}
}

// PublishSync dispatches the event inline and returns the first error.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	for _, h := range b.subscribers(event.EventName()) {
		if err := h.Handle(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (b *InMemoryBus) subscribers(eventName string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Handler, len(b.handlers[eventName]))
	copy(out, b.handlers[eventName])
	return out
}

var _ Bus = (*InMemoryBus)(nil)
