// Package order orchestrates checkout across inventory, accounting and the
// payment gateway.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/example/patterns-shop/domain/shop"
	"github.com/example/patterns-shop/events"
	"github.com/example/patterns-shop/modules/accounting"
	"github.com/example/patterns-shop/modules/inventory"
	"github.com/example/patterns-shop/modules/product"
	"github.com/go-monolith/mono/pkg/types"
)

// Service runs the checkout sequence.
type Service struct {
	store      *shop.Store
	repo       *product.Repository
	inventory  *inventory.Service
	accounting *accounting.Service
	bus        inventory.Publisher
	gateway    PaymentGateway
	logger     types.Logger
	now        func() time.Time
}

// NewService creates a new order service.
func NewService(
	store *shop.Store,
	repo *product.Repository,
	inv *inventory.Service,
	acct *accounting.Service,
	bus inventory.Publisher,
	gateway PaymentGateway,
	logger types.Logger,
) *Service {
	return &Service{
		store:      store,
		repo:       repo,
		inventory:  inv,
		accounting: acct,
		bus:        bus,
		gateway:    gateway,
		logger:     logger,
		now:        time.Now,
	}
}

// RecalculateCart recomputes a cart's total from current prices and caches
// it on the cart. Line items whose product no longer exists count as zero.
func (s *Service) RecalculateCart(cartID int) (float64, error) {
	cart, ok := s.store.Cart(cartID)
	if !ok {
		return 0, fmt.Errorf("%w: cart %d", shop.ErrNotFound, cartID)
	}

	total := s.priceItems(cart.Items)
	s.store.SetCartTotal(cartID, total)
	s.logger.Debug("Cart total computed", "cartID", cartID, "total", total)
	return total, nil
}

// Checkout verifies stock, charges the cart, decrements stock, issues an invoice, records
// revenue, announces the order and empties the cart.
//
// Steps after the payment capture are not compensated: if one of them fails
// the charge stands and no invoice is created.
func (s *Service) Checkout(ctx context.Context, clientID, cartID int, payment PaymentInfo) (shop.Invoice, error) {
	cart, ok := s.store.Cart(cartID)
	if !ok || cart.IsEmpty() {
		return shop.Invoice{}, fmt.Errorf("%w: cart %d is empty or does not exist", shop.ErrInvalidState, cartID)
	}
	items := cart.Items

	total := s.priceItems(items)
	s.store.SetCartTotal(cartID, total)

	if err := s.checkAvailability(items); err != nil {
		return shop.Invoice{}, err
	}

	result, err := s.gateway.Charge(ctx, total, payment)
	if err != nil {
		return shop.Invoice{}, fmt.Errorf("%w: %v", shop.ErrPaymentRejected, err)
	}
	if !result.Approved {
		return shop.Invoice{}, fmt.Errorf("%w: charge of %.2f declined", shop.ErrPaymentRejected, total)
	}

	for _, item := range items {
		if err := s.inventory.Dispatch(ctx, item.ProductID, item.Quantity); err != nil {
			return shop.Invoice{}, fmt.Errorf("failed to dispatch product %d: %w", item.ProductID, err)
		}
	}

	client, ok := s.store.Client(clientID)
	if !ok {
		client = shop.DefaultClient(clientID)
	}
	invoice := shop.Invoice{
		ID:            s.store.NextInvoiceID(),
		Client:        client,
		Items:         append([]shop.LineItem(nil), items...),
		Total:         total,
		Authorization: result.Authorization,
		CreatedAt:     s.now(),
	}
	if !s.store.SaveInvoice(invoice) {
		return shop.Invoice{}, fmt.Errorf("%w: invoice %d already exists", shop.ErrInvalidState, invoice.ID)
	}
	s.logger.Info("Invoice created",
		"invoiceID", invoice.ID,
		"client", client.Name,
		"total", invoice.Total,
		"createdAt", invoice.CreatedAt.Format(time.RFC3339))

	s.accounting.RecordIncome(invoice)

	if err := s.bus.Publish(ctx, events.NewOrderCompleted(invoice.ID)); err != nil {
		return shop.Invoice{}, fmt.Errorf("failed to publish order completion: %w", err)
	}

	s.store.ClearCart(cartID)
	s.logger.Info("Cart emptied", "cartID", cartID)

	return invoice, nil
}

func (s *Service) priceItems(items []shop.LineItem) float64 {
	total := 0.0
	for _, item := range items {
		p, err := s.repo.GetByID(item.ProductID)
		if err != nil {
			continue
		}
		total += p.Price * float64(item.Quantity)
	}
	return total
}

// checkAvailability fails when current stock cannot cover the cart's total
// quantity of any product. Other carts may have taken stock since the items
// were added.
func (s *Service) checkAvailability(items []shop.LineItem) error {
	wanted := make(map[int]int, len(items))
	ids := make([]int, 0, len(items))
	for _, item := range items {
		if _, seen := wanted[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		wanted[item.ProductID] += item.Quantity
	}

	for _, id := range ids {
		p, err := s.repo.GetByID(id)
		if err != nil {
			return err
		}
		if !p.Available(wanted[id]) {
			return fmt.Errorf("%w: insufficient stock for product %d (have %d, want %d)",
				shop.ErrInvalidState, id, p.Stock, wanted[id])
		}
	}
	return nil
}
