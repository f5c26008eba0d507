package shop

import (
	"errors"

	domain "github.com/example/patterns-shop/domain/shop"
	"github.com/example/patterns-shop/modules/auth"
	"github.com/example/patterns-shop/modules/catalog"
	"github.com/example/patterns-shop/modules/order"
)

// Service names registered by the shop module.
const (
	ServiceListProducts  = "list-products"
	ServiceSearch        = "search-products"
	ServiceAddProduct    = "add-product"
	ServiceLogin         = "login"
	ServiceLogout        = "logout"
	ServiceValidateToken = "validate-token"
	ServiceGetCart       = "get-cart"
	ServiceAddToCart     = "add-to-cart"
	ServiceCheckout      = "checkout"
	ServiceBalance       = "get-balance"
	ServiceRecentAudit   = "recent-audit"
)

// Error kinds carried in replies so callers can match sentinel errors after
// the error has crossed the service boundary.
const (
	ErrKindNotFound           = "not_found"
	ErrKindInvalidState       = "invalid_state"
	ErrKindPaymentRejected    = "payment_rejected"
	ErrKindInvalidCredentials = "invalid_credentials"
	ErrKindUnauthorized       = "unauthorized"
	ErrKindInternal           = "internal"
)

// ReplyStatus is embedded in every reply. Handlers report business failures
// here instead of returning an error.
type ReplyStatus struct {
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Err rebuilds the failure described by the status, or nil on success.
func (s ReplyStatus) Err() error {
	if s.ErrorKind == "" {
		return nil
	}

	var kind error
	switch s.ErrorKind {
	case ErrKindNotFound:
		kind = domain.ErrNotFound
	case ErrKindInvalidState:
		kind = domain.ErrInvalidState
	case ErrKindPaymentRejected:
		kind = domain.ErrPaymentRejected
	case ErrKindInvalidCredentials:
		kind = auth.ErrInvalidCredentials
	case ErrKindUnauthorized:
		kind = auth.ErrInvalidToken
	}
	return &replyError{kind: kind, msg: s.Error}
}

// statusOf classifies err for a reply.
func statusOf(err error) ReplyStatus {
	if err == nil {
		return ReplyStatus{}
	}

	kind := ErrKindInternal
	switch {
	case errors.Is(err, domain.ErrNotFound):
		kind = ErrKindNotFound
	case errors.Is(err, domain.ErrInvalidState):
		kind = ErrKindInvalidState
	case errors.Is(err, domain.ErrPaymentRejected):
		kind = ErrKindPaymentRejected
	case errors.Is(err, auth.ErrInvalidCredentials):
		kind = ErrKindInvalidCredentials
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrRevokedToken):
		kind = ErrKindUnauthorized
	}
	return ReplyStatus{ErrorKind: kind, Error: err.Error()}
}

// replyError keeps the remote message and unwraps to the matching sentinel.
type replyError struct {
	kind error
	msg  string
}

func (e *replyError) Error() string {
	return e.msg
}

func (e *replyError) Unwrap() error {
	return e.kind
}

// ListProductsRequest asks for the catalog. Nil filters list everything.
type ListProductsRequest struct {
	Filters *catalog.Filters `json:"filters,omitempty"`
}

// SearchRequest asks for products matching a free-text query.
type SearchRequest struct {
	Query string `json:"query"`
}

// ProductsResponse carries a list of products.
type ProductsResponse struct {
	ReplyStatus
	Products []domain.Product `json:"products"`
}

// AddProductRequest ingests a product.
type AddProductRequest struct {
	Product domain.Product `json:"product"`
}

// EmptyResponse acknowledges a request with no payload.
type EmptyResponse struct {
	ReplyStatus
}

// LoginRequest carries user credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session.
type LoginResponse struct {
	ReplyStatus
	Token     string `json:"token,omitempty"`
	ExpiresIn int64  `json:"expires_in,omitempty"`
	TokenType string `json:"token_type,omitempty"`
}

// TokenRequest carries a session token.
type TokenRequest struct {
	Token string `json:"token"`
}

// ValidateTokenResponse reports the owner of a valid token.
type ValidateTokenResponse struct {
	ReplyStatus
	Valid  bool   `json:"valid"`
	UserID int    `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

// GetCartRequest asks for a cart.
type GetCartRequest struct {
	CartID int `json:"cart_id"`
}

// AddToCartRequest adds units of a product to a client's cart.
type AddToCartRequest struct {
	ClientID  int `json:"client_id"`
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// CartReply carries a cart snapshot.
type CartReply struct {
	ReplyStatus
	Cart domain.Cart `json:"cart"`
}

// CheckoutRequest finalizes a client's cart.
type CheckoutRequest struct {
	ClientID int               `json:"client_id"`
	CartID   int               `json:"cart_id"`
	Payment  order.PaymentInfo `json:"payment"`
}

// InvoiceReply carries the issued invoice.
type InvoiceReply struct {
	ReplyStatus
	Invoice domain.Invoice `json:"invoice"`
}

// BalanceRequest asks for the accounting balance.
type BalanceRequest struct{}

// BalanceReply carries the accounting balance.
type BalanceReply struct {
	ReplyStatus
	Balance Balance `json:"balance"`
}

// RecentAuditRequest asks for the newest audit records.
type RecentAuditRequest struct {
	Limit int `json:"limit"`
}

// AuditReply carries audit records, oldest first.
type AuditReply struct {
	ReplyStatus
	Records []domain.AuditRecord `json:"records"`
}
