package observer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/patterns-shop/domain/shop"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// Notification is a user-facing message about a product.
type Notification struct {
	ID        string    `json:"id"`
	ProductID int       `json:"product_id"`
	Message   string    `json:"message"`
	Channel   string    `json:"channel"`
	Timestamp time.Time `json:"timestamp"`
}

// Sender delivers notifications. Delivery itself is outside the shop.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// Notifier turns product events into notifications.
type Notifier struct {
	store  *shop.Store
	sender Sender
}

// NewNotifier creates a notification observer.
func NewNotifier(store *shop.Store, sender Sender) *Notifier {
	return &Notifier{store: store, sender: sender}
}

// OnProductEvent sends a notification naming the product.
func (o *Notifier) OnProductEvent(ctx context.Context, productID int, description string) error {
	name := fmt.Sprintf("#%d", productID)
	if p, ok := o.store.Product(productID); ok {
		name = p.Name
	}

	return o.sender.Send(ctx, Notification{
		ID:        uuid.New().String(),
		ProductID: productID,
		Message:   fmt.Sprintf("'%s' -> %s", name, description),
		Channel:   "email/sms",
		Timestamp: time.Now(),
	})
}

// LogSender logs notifications and keeps them for inspection.
type LogSender struct {
	logger        types.Logger
	notifications []Notification
	mu            sync.RWMutex
}

// NewLogSender creates a sender backed by the application logger.
func NewLogSender(logger types.Logger) *LogSender {
	return &LogSender{
		logger:        logger,
		notifications: make([]Notification, 0),
	}
}

// Send records the notification.
func (s *LogSender) Send(_ context.Context, n Notification) error {
	s.mu.Lock()
	s.notifications = append(s.notifications, n)
	s.mu.Unlock()

	s.logger.Info("Notification sent", "channel", n.Channel, "message", n.Message)
	return nil
}

// Notifications returns a copy of every sent notification.
func (s *LogSender) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Notification, len(s.notifications))
	copy(result, s.notifications)
	return result
}
