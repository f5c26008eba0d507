package shop

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/patterns-shop/domain/shop"
	"github.com/example/patterns-shop/modules/auth"
	"github.com/example/patterns-shop/modules/catalog"
	"github.com/example/patterns-shop/modules/order"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ShopPort defines the shop operations other modules depend on.
// Errors match domain and auth sentinels with errors.Is.
type ShopPort interface {
	ListProducts(ctx context.Context, filters *catalog.Filters) ([]domain.Product, error)
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
	AddProduct(ctx context.Context, p domain.Product) error
	Login(ctx context.Context, email, password string) (auth.Session, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*auth.JWTClaims, error)
	Cart(ctx context.Context, cartID int) (domain.Cart, error)
	AddToCart(ctx context.Context, clientID, productID, quantity int) (domain.Cart, error)
	Checkout(ctx context.Context, clientID, cartID int, payment order.PaymentInfo) (domain.Invoice, error)
	Balance(ctx context.Context) (Balance, error)
	RecentAudit(ctx context.Context, limit int) ([]domain.AuditRecord, error)
}

// ShopAdapter implements ShopPort using the service container.
type ShopAdapter struct {
	container mono.ServiceContainer
}

var _ ShopPort = (*ShopAdapter)(nil)

// NewShopAdapter creates a new ShopAdapter.
func NewShopAdapter(container mono.ServiceContainer) *ShopAdapter {
	return &ShopAdapter{container: container}
}

func (a *ShopAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService[any, any](
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}

// ListProducts returns catalog products matching filters.
func (a *ShopAdapter) ListProducts(ctx context.Context, filters *catalog.Filters) ([]domain.Product, error) {
	var resp ProductsResponse
	if err := a.call(ctx, ServiceListProducts, &ListProductsRequest{Filters: filters}, &resp); err != nil {
		return nil, err
	}
	return resp.Products, resp.Err()
}

// SearchProducts returns products whose name or description contains query.
func (a *ShopAdapter) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	var resp ProductsResponse
	if err := a.call(ctx, ServiceSearch, &SearchRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	return resp.Products, resp.Err()
}

// AddProduct ingests a product.
func (a *ShopAdapter) AddProduct(ctx context.Context, p domain.Product) error {
	var resp EmptyResponse
	if err := a.call(ctx, ServiceAddProduct, &AddProductRequest{Product: p}, &resp); err != nil {
		return err
	}
	return resp.Err()
}

// Login exchanges credentials for a session.
func (a *ShopAdapter) Login(ctx context.Context, email, password string) (auth.Session, error) {
	var resp LoginResponse
	if err := a.call(ctx, ServiceLogin, &LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return auth.Session{}, err
	}
	if err := resp.Err(); err != nil {
		return auth.Session{}, err
	}
	return auth.Session{Token: resp.Token, ExpiresIn: resp.ExpiresIn, TokenType: resp.TokenType}, nil
}

// Logout revokes a session token.
func (a *ShopAdapter) Logout(ctx context.Context, token string) error {
	var resp EmptyResponse
	if err := a.call(ctx, ServiceLogout, &TokenRequest{Token: token}, &resp); err != nil {
		return err
	}
	return resp.Err()
}

// Authenticate validates a session token and returns its claims.
func (a *ShopAdapter) Authenticate(ctx context.Context, token string) (*auth.JWTClaims, error) {
	var resp ValidateTokenResponse
	if err := a.call(ctx, ServiceValidateToken, &TokenRequest{Token: token}, &resp); err != nil {
		return nil, err
	}
	return claimsFrom(resp)
}

// Cart returns a cart by id.
func (a *ShopAdapter) Cart(ctx context.Context, cartID int) (domain.Cart, error) {
	var resp CartReply
	if err := a.call(ctx, ServiceGetCart, &GetCartRequest{CartID: cartID}, &resp); err != nil {
		return domain.Cart{}, err
	}
	return resp.Cart, resp.Err()
}

// AddToCart adds units of a product to the client's cart.
func (a *ShopAdapter) AddToCart(ctx context.Context, clientID, productID, quantity int) (domain.Cart, error) {
	req := AddToCartRequest{ClientID: clientID, ProductID: productID, Quantity: quantity}
	var resp CartReply
	if err := a.call(ctx, ServiceAddToCart, &req, &resp); err != nil {
		return domain.Cart{}, err
	}
	return resp.Cart, resp.Err()
}

// Checkout finalizes the client's cart and returns the invoice.
func (a *ShopAdapter) Checkout(ctx context.Context, clientID, cartID int, payment order.PaymentInfo) (domain.Invoice, error) {
	req := CheckoutRequest{ClientID: clientID, CartID: cartID, Payment: payment}
	var resp InvoiceReply
	if err := a.call(ctx, ServiceCheckout, &req, &resp); err != nil {
		return domain.Invoice{}, err
	}
	return resp.Invoice, resp.Err()
}

// Balance reports the accounting figures.
func (a *ShopAdapter) Balance(ctx context.Context) (Balance, error) {
	var resp BalanceReply
	if err := a.call(ctx, ServiceBalance, &BalanceRequest{}, &resp); err != nil {
		return Balance{}, err
	}
	return resp.Balance, resp.Err()
}

// RecentAudit returns up to limit of the newest audit records.
func (a *ShopAdapter) RecentAudit(ctx context.Context, limit int) ([]domain.AuditRecord, error) {
	var resp AuditReply
	if err := a.call(ctx, ServiceRecentAudit, &RecentAuditRequest{Limit: limit}, &resp); err != nil {
		return nil, err
	}
	return resp.Records, resp.Err()
}

func claimsFrom(resp ValidateTokenResponse) (*auth.JWTClaims, error) {
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if !resp.Valid {
		return nil, fmt.Errorf("%w: rejected by shop", auth.ErrInvalidToken)
	}
	return &auth.JWTClaims{UserID: resp.UserID, Email: resp.Email}, nil
}
