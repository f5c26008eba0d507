package observer

import (
	"context"
	"strings"

	"github.com/example/patterns-shop/domain/shop"
	"github.com/example/patterns-shop/events"
	"github.com/go-monolith/mono/pkg/types"
)

// CartSync keeps a single cart in line with inventory: when a product in it
// runs out of stock, its line items are removed. Each cart registers its own
// CartSync when it is created.
type CartSync struct {
	store  *shop.Store
	cartID int
	logger types.Logger
}

// NewCartSync creates the observer for one cart.
func NewCartSync(store *shop.Store, cartID int, logger types.Logger) *CartSync {
	return &CartSync{store: store, cartID: cartID, logger: logger}
}

// CartID returns the cart this observer maintains.
func (o *CartSync) CartID() int {
	return o.cartID
}

// OnProductEvent removes productID from the cart on out-of-stock events and
// reprices what is left.
func (o *CartSync) OnProductEvent(_ context.Context, productID int, description string) error {
	if !strings.Contains(strings.ToLower(description), events.DescOutOfStock) {
		return nil
	}
	removed := o.store.RemoveProductFromCart(o.cartID, productID)
	if removed == 0 {
		return nil
	}
	total, _ := o.store.RepriceCart(o.cartID)
	o.logger.Info("Removed out-of-stock product from cart",
		"cartID", o.cartID,
		"productID", productID,
		"lineItems", removed,
		"total", total)
	return nil
}
