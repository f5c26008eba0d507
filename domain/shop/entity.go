// Package shop provides the domain records of the retail checkout flow and
// the Store that owns them.
package shop

import (
	"fmt"
	"time"
)

// Product is an item in the catalog.
type Product struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	Stock       int     `json:"stock" yaml:"stock"`
}

// Available reports whether at least qty units are in stock.
func (p Product) Available(qty int) bool {
	return p.Stock >= qty
}

// Client is the buyer owning a cart.
type Client struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// DefaultClient returns the placeholder record used when a client is first
// seen through a cart or checkout interaction.
func DefaultClient(id int) Client {
	return Client{
		ID:      id,
		Name:    fmt.Sprintf("Client %d", id),
		Address: "-",
		Phone:   "-",
	}
}

// LineItem is a (product, quantity) pair within a cart or invoice.
type LineItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Cart holds the line items a client intends to buy.
// Total is a cached value recomputed from current prices.
type Cart struct {
	ID       int        `json:"id"`
	ClientID int        `json:"client_id"`
	Items    []LineItem `json:"items"`
	Total    float64    `json:"total"`
}

// IsEmpty reports whether the cart has no line items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// QuantityOf sums the units of productID across all line items.
func (c Cart) QuantityOf(productID int) int {
	n := 0
	for _, item := range c.Items {
		if item.ProductID == productID {
			n += item.Quantity
		}
	}
	return n
}

// Invoice is the immutable record of a completed checkout.
type Invoice struct {
	ID            int        `json:"id"`
	Client        Client     `json:"client"`
	Items         []LineItem `json:"items"`
	Total         float64    `json:"total"`
	Authorization string     `json:"authorization"`
	CreatedAt     time.Time  `json:"created_at"`
}

// AuditRecord is one entry of the append-only audit log.
type AuditRecord struct {
	ID        string    `json:"id"`
	ProductID int       `json:"product_id"`
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
}

// User is a registered account able to log in.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
