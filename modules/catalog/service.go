// Package catalog provides a read-only, filterable view over products.
package catalog

import (
	"strings"

	"github.com/example/patterns-shop/domain/shop"
	"github.com/example/patterns-shop/modules/product"
	"golang.org/x/sync/singleflight"
)

// Filters narrows a catalog listing. Nil bounds are not applied.
type Filters struct {
	MinPrice      *float64 `json:"min_price,omitempty"`
	MaxPrice      *float64 `json:"max_price,omitempty"`
	AvailableOnly bool     `json:"available_only,omitempty"`
}

// Matches reports whether p passes every filter.
func (f *Filters) Matches(p shop.Product) bool {
	if f == nil {
		return true
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.AvailableOnly && p.Stock <= 0 {
		return false
	}
	return true
}

// Service lists and searches products.
type Service struct {
	repo    *product.Repository
	sfGroup singleflight.Group // Coalesces concurrent identical searches
}

// NewService creates a new catalog service.
func NewService(repo *product.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the products matching filters. Nil filters return everything.
func (s *Service) List(filters *Filters) []shop.Product {
	all := s.repo.List()
	if filters == nil {
		return all
	}

	result := make([]shop.Product, 0, len(all))
	for _, p := range all {
		if filters.Matches(p) {
			result = append(result, p)
		}
	}
	return result
}

// Search returns products whose name or description contains query.
func (s *Service) Search(query string) []shop.Product {
	key := "search:" + strings.ToLower(query)
	val, _, _ := s.sfGroup.Do(key, func() (any, error) {
		return s.repo.Search(query), nil
	})

	// Callers sharing a flight must not share the backing array.
	shared := val.([]shop.Product)
	return append(make([]shop.Product, 0, len(shared)), shared...)
}
