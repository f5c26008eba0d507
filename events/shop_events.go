// Package events defines the shop's event kinds and payloads.
package events

import (
	"fmt"
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// Kind identifies an event variant. The set is closed.
type Kind string

const (
	// KindProductUpdated is published when a product is ingested or runs out of stock.
	KindProductUpdated Kind = "product.updated"
	// KindSaleCompleted is published once per unit sold.
	KindSaleCompleted Kind = "sale.completed"
	// KindOrderCompleted is published when a checkout produces an invoice.
	KindOrderCompleted Kind = "order.completed"
)

// Kinds lists every event kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindProductUpdated, KindSaleCompleted, KindOrderCompleted}
}

// Event descriptions carried by published events.
const (
	DescAddedToInventory = "added to inventory"
	DescSaleCompleted    = "sale completed"
	DescOutOfStock       = "out of stock"
)

// OrderCompletedDescription returns the description for an order event.
func OrderCompletedDescription(invoiceID int) string {
	return fmt.Sprintf("order #%d completed", invoiceID)
}

// Event is the payload delivered to bus handlers.
// ProductID is 0 for order events.
type Event struct {
	Kind        Kind      `json:"kind"`
	ProductID   int       `json:"product_id"`
	InvoiceID   int       `json:"invoice_id,omitempty"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewProductUpdated creates a product.updated event.
func NewProductUpdated(productID int, description string) Event {
	return Event{
		Kind:        KindProductUpdated,
		ProductID:   productID,
		Description: description,
		OccurredAt:  time.Now(),
	}
}

// NewSaleCompleted creates a sale.completed event for one unit.
func NewSaleCompleted(productID int) Event {
	return Event{
		Kind:        KindSaleCompleted,
		ProductID:   productID,
		Description: DescSaleCompleted,
		OccurredAt:  time.Now(),
	}
}

// NewOrderCompleted creates an order.completed event.
func NewOrderCompleted(invoiceID int) Event {
	return Event{
		Kind:        KindOrderCompleted,
		InvoiceID:   invoiceID,
		Description: OrderCompletedDescription(invoiceID),
		OccurredAt:  time.Now(),
	}
}

// OrderCompletedEvent is the payload republished on the mono event bus.
type OrderCompletedEvent struct {
	InvoiceID   int       `json:"invoice_id"`
	ClientID    int       `json:"client_id"`
	Total       float64   `json:"total"`
	CompletedAt time.Time `json:"completed_at"`
}

// OrderCompletedV1 is the typed event definition for completed orders.
// Subject: events.shop.v1.order-completed
var OrderCompletedV1 = helper.EventDefinition[OrderCompletedEvent](
	"shop", "OrderCompleted", "v1",
)
