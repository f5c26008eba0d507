package shop

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/example/patterns-shop/domain/shop"
	"github.com/example/patterns-shop/events"
	"github.com/example/patterns-shop/modules/auth"
	"github.com/example/patterns-shop/modules/catalog"
	"github.com/example/patterns-shop/modules/observer"
	"github.com/example/patterns-shop/modules/order"
	"github.com/go-monolith/mono/pkg/types"
)

// Facade is the single entry point used by the console demo and the HTTP API.
// Calls that change state are serialized. Catalog reads go straight to the
// store, which guards itself.
type Facade struct {
	c      *Components
	logger types.Logger
	mu     sync.Mutex
}

// NewFacade creates a facade over the given components.
func NewFacade(c *Components, logger types.Logger) *Facade {
	return &Facade{c: c, logger: logger}
}

// Components returns the services behind the facade.
func (f *Facade) Components() *Components {
	return f.c
}

// ViewCatalog lists products matching filters and logs each one.
func (f *Facade) ViewCatalog(filters *catalog.Filters) []domain.Product {
	items := f.c.Catalog.List(filters)
	for _, p := range items {
		f.logger.Info("Catalog item",
			"productID", p.ID,
			"name", p.Name,
			"price", fmt.Sprintf("%.2f", p.Price),
			"stock", p.Stock)
	}
	return items
}

// Search returns products whose name or description contains query.
// Concurrent identical queries share one catalog scan.
func (f *Facade) Search(query string) []domain.Product {
	return f.c.Catalog.Search(query)
}

// AddToCart appends quantity units of a product to the client's cart,
// creating the client and cart on first use, and returns the updated cart.
func (f *Facade) AddToCart(clientID, productID, quantity int) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if quantity <= 0 {
		return domain.Cart{}, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidState, quantity)
	}

	f.c.Store.EnsureClient(clientID)
	cart, created := f.c.Store.EnsureCart(clientID)
	if created {
		cartSync := observer.NewCartSync(f.c.Store, cart.ID, f.logger.WithModule("cart"))
		observer.Register(f.c.Bus, cartSync, events.KindProductUpdated)
	}

	p, err := f.c.Products.GetByID(productID)
	if err != nil {
		return domain.Cart{}, err
	}
	want := cart.QuantityOf(productID) + quantity
	if !p.Available(want) {
		return domain.Cart{}, fmt.Errorf("%w: insufficient stock for product %d (have %d, want %d)",
			domain.ErrInvalidState, productID, p.Stock, want)
	}

	f.c.Store.AppendLineItem(cart.ID, domain.LineItem{ProductID: productID, Quantity: quantity})
	if _, err := f.c.Orders.RecalculateCart(cart.ID); err != nil {
		return domain.Cart{}, err
	}
	f.logger.Info("Added to cart", "cartID", cart.ID, "product", p.Name, "quantity", quantity)

	updated, _ := f.c.Store.Cart(cart.ID)
	return updated, nil
}

// FinalizeCheckout runs checkout for the client's cart.
func (f *Facade) FinalizeCheckout(ctx context.Context, clientID, cartID int, payment order.PaymentInfo) (domain.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.c.Orders.Checkout(ctx, clientID, cartID, payment)
}

// AddProduct ingests a product through inventory.
func (f *Facade) AddProduct(ctx context.Context, p domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p.Price < 0 || p.Stock < 0 {
		return fmt.Errorf("%w: product %d has negative price or stock", domain.ErrInvalidState, p.ID)
	}
	f.logger.Info("Administrator adding product", "productID", p.ID, "name", p.Name)
	return f.c.Inventory.Ingest(ctx, p)
}

// Cart returns a cart by id.
func (f *Facade) Cart(cartID int) (domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cart, ok := f.c.Store.Cart(cartID)
	if !ok {
		return domain.Cart{}, fmt.Errorf("%w: cart %d", domain.ErrNotFound, cartID)
	}
	return cart, nil
}

// Balance is the accounting balance plus its parts.
type Balance struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
	// UnitSales is the price-per-unit tally kept by the sales observer.
	UnitSales float64 `json:"unit_sales"`
}

// Balance reports the current accounting figures.
func (f *Facade) Balance() Balance {
	f.mu.Lock()
	defer f.mu.Unlock()

	b := Balance{
		Income:    f.c.Accounting.Income(),
		Expenses:  f.c.Accounting.Expenses(),
		Balance:   f.c.Accounting.Balance(),
		UnitSales: f.c.Sales.Total(),
	}
	f.logger.Info("Accounting balance",
		"income", b.Income,
		"expenses", b.Expenses,
		"balance", b.Balance)
	return b
}

// RecentAudit returns up to limit of the newest audit records, oldest first.
func (f *Facade) RecentAudit(limit int) []domain.AuditRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.c.Audit.Recent(limit)
}

// Register creates a user account.
func (f *Facade) Register(user domain.User, password string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.c.Auth.Register(user, password)
}

// Login authenticates a user and returns a session token.
func (f *Facade) Login(email, password string) (auth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.c.Auth.Login(email, password)
}

// Logout revokes a session token.
func (f *Facade) Logout(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.c.Auth.Logout(token)
}

// Authenticate validates a session token.
func (f *Facade) Authenticate(token string) (*auth.JWTClaims, error) {
	return f.c.Auth.Validate(token)
}
