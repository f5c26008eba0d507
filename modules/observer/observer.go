// Package observer provides the reactions registered on the shop event bus.
package observer

import (
	"context"

	"github.com/example/patterns-shop/events"
	"github.com/example/patterns-shop/modules/eventbus"
)

// ProductObserver reacts to product-related events.
type ProductObserver interface {
	OnProductEvent(ctx context.Context, productID int, description string) error
}

// Handler adapts an observer into an event bus handler.
func Handler(o ProductObserver) eventbus.Handler {
	return func(ctx context.Context, e events.Event) error {
		return o.OnProductEvent(ctx, e.ProductID, e.Description)
	}
}

// Register subscribes an observer to each of the given event kinds.
func Register(bus *eventbus.EventBus, o ProductObserver, kinds ...events.Kind) {
	h := Handler(o)
	for _, kind := range kinds {
		bus.Subscribe(kind, h)
	}
}
