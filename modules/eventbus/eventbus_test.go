package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/example/patterns-shop/events"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

func TestEventBus_PublishWithoutSubscribers(t *testing.T) {
	bus := New(&mockLogger{})

	err := bus.Publish(context.Background(), events.NewSaleCompleted(1))
	assert.NoError(t, err)
}

func TestEventBus_DispatchOrder(t *testing.T) {
	bus := New(&mockLogger{})
	var calls []string

	bus.Subscribe(events.KindSaleCompleted, func(_ context.Context, _ events.Event) error {
		calls = append(calls, "first")
		return nil
	})
	bus.Subscribe(events.KindSaleCompleted, func(_ context.Context, _ events.Event) error {
		calls = append(calls, "second")
		return nil
	})
	bus.Subscribe(events.KindProductUpdated, func(_ context.Context, _ events.Event) error {
		calls = append(calls, "other-kind")
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), events.NewSaleCompleted(1)))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestEventBus_DuplicateSubscription(t *testing.T) {
	bus := New(&mockLogger{})
	count := 0
	handler := func(_ context.Context, _ events.Event) error {
		count++
		return nil
	}

	bus.Subscribe(events.KindSaleCompleted, handler)
	bus.Subscribe(events.KindSaleCompleted, handler)

	require.NoError(t, bus.Publish(context.Background(), events.NewSaleCompleted(1)))
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, bus.HandlerCount(events.KindSaleCompleted))
}

func TestEventBus_HandlerErrorStopsDispatch(t *testing.T) {
	bus := New(&mockLogger{})
	errBoom := errors.New("boom")
	reached := false

	bus.Subscribe(events.KindProductUpdated, func(_ context.Context, _ events.Event) error {
		return errBoom
	})
	bus.Subscribe(events.KindProductUpdated, func(_ context.Context, _ events.Event) error {
		reached = true
		return nil
	})

	err := bus.Publish(context.Background(), events.NewProductUpdated(1, events.DescOutOfStock))
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, reached, "handlers after a failing one must not run")
}

func TestEventBus_SubscribeAll(t *testing.T) {
	bus := New(&mockLogger{})
	var seen []events.Kind

	bus.SubscribeAll(func(_ context.Context, e events.Event) error {
		seen = append(seen, e.Kind)
		return nil
	})

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, events.NewProductUpdated(1, events.DescAddedToInventory)))
	require.NoError(t, bus.Publish(ctx, events.NewSaleCompleted(1)))
	require.NoError(t, bus.Publish(ctx, events.NewOrderCompleted(1)))

	assert.Equal(t, events.Kinds(), seen)
}

func TestModule_Health(t *testing.T) {
	bus := New(&mockLogger{})
	bus.Subscribe(events.KindSaleCompleted, func(_ context.Context, _ events.Event) error { return nil })
	m := NewModule(bus, &mockLogger{})

	status := m.Health(context.Background())
	assert.True(t, status.Healthy)
	assert.Equal(t, 1, status.Details[string(events.KindSaleCompleted)])
	assert.Equal(t, 0, status.Details[string(events.KindOrderCompleted)])
	assert.Same(t, bus, m.GetEventBus())
}
