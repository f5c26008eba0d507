package observer

import (
	"context"
	"sync"
	"time"

	"github.com/example/patterns-shop/domain/shop"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// AuditLog keeps an unbounded, ordered record of every event it receives.
type AuditLog struct {
	records []shop.AuditRecord
	logger  types.Logger
	now     func() time.Time
	mu      sync.RWMutex
}

// NewAuditLog creates an empty audit log.
func NewAuditLog(logger types.Logger) *AuditLog {
	return &AuditLog{
		records: make([]shop.AuditRecord, 0),
		logger:  logger,
		now:     time.Now,
	}
}

// OnProductEvent appends a timestamped record.
func (o *AuditLog) OnProductEvent(_ context.Context, productID int, description string) error {
	record := shop.AuditRecord{
		ID:        uuid.New().String(),
		ProductID: productID,
		Event:     description,
		Timestamp: o.now(),
	}

	o.mu.Lock()
	o.records = append(o.records, record)
	o.mu.Unlock()

	o.logger.Debug("Audit record appended",
		"productID", productID,
		"event", description,
		"timestamp", record.Timestamp.Format(time.RFC3339))
	return nil
}

// Records returns a copy of every record in insertion order.
func (o *AuditLog) Records() []shop.AuditRecord {
	o.mu.RLock()
	defer o.mu.RUnlock()

	result := make([]shop.AuditRecord, len(o.records))
	copy(result, o.records)
	return result
}

// Recent returns up to limit of the most recent records, oldest first.
func (o *AuditLog) Recent(limit int) []shop.AuditRecord {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if limit <= 0 || len(o.records) == 0 {
		return []shop.AuditRecord{}
	}

	start := 0
	if len(o.records) > limit {
		start = len(o.records) - limit
	}

	result := make([]shop.AuditRecord, len(o.records)-start)
	copy(result, o.records[start:])
	return result
}

// Len returns the number of records.
func (o *AuditLog) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.records)
}
