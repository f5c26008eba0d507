package api

import (
	"time"

	domain "github.com/example/patterns-shop/domain/shop"
)

// ProductRequest is the body of POST /api/v1/products.
type ProductRequest struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// AddItemRequest is the body of POST /api/v1/carts/:id/items.
type AddItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// CheckoutRequest is the body of POST /api/v1/carts/:id/checkout.
type CheckoutRequest struct {
	Method string `json:"method"`
	Number string `json:"number"`
}

// ProductListResponse wraps a product listing.
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

// CartResponse is the HTTP representation of a cart.
type CartResponse struct {
	ID    int               `json:"id"`
	Items []domain.LineItem `json:"items"`
	Total float64           `json:"total"`
}

// InvoiceResponse is the HTTP representation of an invoice.
type InvoiceResponse struct {
	ID            int               `json:"id"`
	ClientID      int               `json:"client_id"`
	ClientName    string            `json:"client_name"`
	Items         []domain.LineItem `json:"items"`
	Total         float64           `json:"total"`
	Authorization string            `json:"authorization"`
	CreatedAt     time.Time         `json:"created_at"`
}

// AuditResponse wraps recent audit records.
type AuditResponse struct {
	Records []domain.AuditRecord `json:"records"`
	Count   int                  `json:"count"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func toCartResponse(c domain.Cart) CartResponse {
	return CartResponse{ID: c.ID, Items: c.Items, Total: c.Total}
}

func toInvoiceResponse(inv domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		ClientID:      inv.Client.ID,
		ClientName:    inv.Client.Name,
		Items:         inv.Items,
		Total:         inv.Total,
		Authorization: inv.Authorization,
		CreatedAt:     inv.CreatedAt,
	}
}
