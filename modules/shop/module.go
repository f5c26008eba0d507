package shop

import (
	"context"
	"sync"

	"github.com/example/patterns-shop/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// Module exposes the shop facade to other modules as request-reply services
// and republishes completed orders on the application event bus.
type Module struct {
	facade   *Facade
	eventBus mono.EventBus
	logger   types.Logger
	bridge   sync.Once
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.EventEmitterModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)

// NewModule creates a new shop module.
func NewModule(facade *Facade, logger types.Logger) *Module {
	return &Module{facade: facade, logger: logger}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "shop"
}

// SetEventBus is called by the framework to inject the event bus.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.OrderCompletedV1.ToBase(),
	}
}

// Start subscribes the order republisher.
func (m *Module) Start(_ context.Context) error {
	if m.eventBus == nil {
		m.logger.Warn("Event bus not set, completed orders will not be republished")
	}
	m.bridge.Do(func() {
		m.facade.c.Bus.Subscribe(events.KindOrderCompleted, m.republishOrder)
	})
	m.logger.Info("Shop module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Shop module stopped")
	return nil
}

// Health reports store counters.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	c := m.facade.c
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"products":      len(c.Products.List()),
			"invoices":      c.Store.InvoiceCount(),
			"audit_records": c.Audit.Len(),
		},
	}
}

// Facade returns the shop facade.
func (m *Module) Facade() *Facade {
	return m.facade
}

// republishOrder forwards a completed order to the mono event bus.
// Publishing is best-effort and never fails the checkout.
func (m *Module) republishOrder(_ context.Context, e events.Event) error {
	if m.eventBus == nil {
		return nil
	}

	invoice, ok := m.facade.c.Store.Invoice(e.InvoiceID)
	if !ok {
		m.logger.Warn("Completed order has no invoice", "invoiceID", e.InvoiceID)
		return nil
	}

	event := events.OrderCompletedEvent{
		InvoiceID:   invoice.ID,
		ClientID:    invoice.Client.ID,
		Total:       invoice.Total,
		CompletedAt: e.OccurredAt,
	}
	if err := events.OrderCompletedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish OrderCompleted event",
			"invoiceID", invoice.ID,
			"error", err)
	}
	return nil
}
