// Package eventbus provides a synchronous in-process event bus for shop events.
package eventbus

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/patterns-shop/events"
	"github.com/go-monolith/mono/pkg/types"
)

// Handler reacts to a published event.
type Handler func(ctx context.Context, event events.Event) error

// EventBus dispatches events to handlers registered per event kind.
// Dispatch runs on the publisher's goroutine in registration order.
type EventBus struct {
	handlers map[events.Kind][]Handler
	logger   types.Logger
	mu       sync.RWMutex
}

// New creates a new EventBus.
func New(logger types.Logger) *EventBus {
	return &EventBus{
		handlers: make(map[events.Kind][]Handler),
		logger:   logger,
	}
}

// Subscribe appends a handler for a specific event kind. Registering the
// same handler twice results in two invocations per publish.
func (eb *EventBus) Subscribe(kind events.Kind, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers[kind] = append(eb.handlers[kind], handler)
	eb.logger.Debug("Subscribed handler", "event", kind, "handlers", len(eb.handlers[kind]))
}

// SubscribeAll registers a handler for every event kind.
func (eb *EventBus) SubscribeAll(handler Handler) {
	for _, kind := range events.Kinds() {
		eb.Subscribe(kind, handler)
	}
}

// Publish invokes every handler registered for event.Kind. The first handler
// error stops dispatch and is returned to the caller.
func (eb *EventBus) Publish(ctx context.Context, event events.Event) error {
	eb.mu.RLock()
	handlers := append([]Handler(nil), eb.handlers[event.Kind]...)
	eb.mu.RUnlock()

	eb.logger.Debug("Publishing event",
		"event", event.Kind,
		"productID", event.ProductID,
		"description", event.Description,
		"handlers", len(handlers))

	for i, h := range handlers {
		if err := h(ctx, event); err != nil {
			return fmt.Errorf("handler %d for %s failed: %w", i, event.Kind, err)
		}
	}
	return nil
}

// HandlerCount returns the number of handlers for a specific event kind.
func (eb *EventBus) HandlerCount(kind events.Kind) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[kind])
}
