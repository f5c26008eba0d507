package observer

import (
	"context"
	"sync"

	"github.com/example/patterns-shop/domain/shop"
	"github.com/go-monolith/mono/pkg/types"
)

// SalesTally accumulates the unit price of every sold unit.
type SalesTally struct {
	store  *shop.Store
	logger types.Logger
	total  float64
	mu     sync.Mutex
}

// NewSalesTally creates an accounting observer.
func NewSalesTally(store *shop.Store, logger types.Logger) *SalesTally {
	return &SalesTally{store: store, logger: logger}
}

// OnProductEvent adds the product's current price to the running total.
// Events for unknown products are ignored.
func (o *SalesTally) OnProductEvent(_ context.Context, productID int, _ string) error {
	p, ok := o.store.Product(productID)
	if !ok {
		return nil
	}

	o.mu.Lock()
	o.total += p.Price
	total := o.total
	o.mu.Unlock()

	o.logger.Info("Sale recorded", "productID", productID, "amount", p.Price, "runningTotal", total)
	return nil
}

// Total returns the accumulated amount.
func (o *SalesTally) Total() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.total
}
