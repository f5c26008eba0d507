// Package product provides access to the catalog's product records.
package product

import (
	"fmt"
	"strings"

	"github.com/example/patterns-shop/domain/shop"
)

// Repository provides access to product storage.
type Repository struct {
	store *shop.Store
}

// NewRepository creates a new product repository over store.
func NewRepository(store *shop.Store) *Repository {
	return &Repository{store: store}
}

// GetByID retrieves a product by its ID.
func (r *Repository) GetByID(id int) (shop.Product, error) {
	p, ok := r.store.Product(id)
	if !ok {
		return shop.Product{}, fmt.Errorf("%w: product %d", shop.ErrNotFound, id)
	}
	return p, nil
}

// Save inserts or fully replaces a product keyed by its ID.
func (r *Repository) Save(p shop.Product) error {
	r.store.PutProduct(p)
	return nil
}

// AdjustStock applies delta to a product's stock and returns the new stock.
// It does not clamp at zero.
func (r *Repository) AdjustStock(id, delta int) (int, error) {
	stock, ok := r.store.AddStock(id, delta)
	if !ok {
		return 0, fmt.Errorf("%w: product %d", shop.ErrNotFound, id)
	}
	return stock, nil
}

// Search returns products whose name or description contains query,
// ignoring case, in storage order.
func (r *Repository) Search(query string) []shop.Product {
	q := strings.ToLower(query)

	result := make([]shop.Product, 0)
	for _, p := range r.store.Products() {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			result = append(result, p)
		}
	}
	return result
}

// List returns all products in storage order.
func (r *Repository) List() []shop.Product {
	return r.store.Products()
}
