package eventbus

import (
	"context"

	"github.com/example/patterns-shop/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// Module exposes the EventBus lifecycle and subscriber counts to mono.
type Module struct {
	eventBus *EventBus
	logger   types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new EventBus module around bus.
func NewModule(bus *EventBus, logger types.Logger) *Module {
	return &Module{eventBus: bus, logger: logger}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "eventbus"
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("EventBus module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("EventBus module stopped")
	return nil
}

// Health reports the number of subscribers per event kind.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	details := make(map[string]any, len(events.Kinds()))
	for _, kind := range events.Kinds() {
		details[string(kind)] = m.eventBus.HandlerCount(kind)
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// GetEventBus returns the EventBus instance.
func (m *Module) GetEventBus() *EventBus {
	return m.eventBus
}
