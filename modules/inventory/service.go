// Package inventory adjusts product stock and announces the changes.
package inventory

import (
	"context"
	"fmt"

	"github.com/example/patterns-shop/domain/shop"
	"github.com/example/patterns-shop/events"
	"github.com/example/patterns-shop/modules/product"
	"github.com/go-monolith/mono/pkg/types"
)

// Publisher publishes shop events.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service adjusts stock through the product repository.
type Service struct {
	repo   *product.Repository
	bus    Publisher
	logger types.Logger
}

// NewService creates a new inventory service.
func NewService(repo *product.Repository, bus Publisher, logger types.Logger) *Service {
	return &Service{repo: repo, bus: bus, logger: logger}
}

// Ingest stores a product and announces it.
func (s *Service) Ingest(ctx context.Context, p shop.Product) error {
	if err := s.repo.Save(p); err != nil {
		return fmt.Errorf("failed to save product %d: %w", p.ID, err)
	}
	s.logger.Info("Product saved", "productID", p.ID, "name", p.Name, "stock", p.Stock)

	return s.bus.Publish(ctx, events.NewProductUpdated(p.ID, events.DescAddedToInventory))
}

// Dispatch removes quantity units from stock. One sale event is published
// per unit, followed by an out-of-stock event when nothing is left.
func (s *Service) Dispatch(ctx context.Context, productID, quantity int) error {
	stock, err := s.repo.AdjustStock(productID, -quantity)
	if err != nil {
		return err
	}
	s.logger.Info("Stock updated", "productID", productID, "stock", stock)

	for i := 0; i < quantity; i++ {
		if err := s.bus.Publish(ctx, events.NewSaleCompleted(productID)); err != nil {
			return err
		}
	}

	remaining, err := s.StockOf(productID)
	if err != nil {
		return err
	}
	if remaining <= 0 {
		return s.bus.Publish(ctx, events.NewProductUpdated(productID, events.DescOutOfStock))
	}
	return nil
}

// StockOf returns the current stock of a product.
func (s *Service) StockOf(productID int) (int, error) {
	p, err := s.repo.GetByID(productID)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}
