package shop

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	domain "github.com/example/patterns-shop/domain/shop"
	"github.com/example/patterns-shop/events"
	"github.com/example/patterns-shop/modules/auth"
	"github.com/example/patterns-shop/modules/catalog"
	"github.com/example/patterns-shop/modules/order"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

var seed = []domain.Product{
	{ID: 101, Name: "Running Shoes", Description: "Running pro", Price: 120000, Stock: 10},
	{ID: 102, Name: "Casual Shoes", Description: "Daily", Price: 95000, Stock: 5},
	{ID: 103, Name: "Urban Shoes", Description: "Street", Price: 130000, Stock: 2},
}

func newTestFacade(t *testing.T) *Facade {
	t.Helper()

	logger := &mockLogger{}
	c := Build(Options{
		JWT:        auth.JWTConfig{SecretKey: "test-secret", TokenDuration: time.Minute, Issuer: "test"},
		BcryptCost: bcrypt.MinCost,
	}, logger)
	f := NewFacade(c, logger)

	for _, p := range seed {
		require.NoError(t, f.AddProduct(context.Background(), p))
	}
	return f
}

func TestFacade_CheckoutFlow(t *testing.T) {
	f := newTestFacade(t)
	ctx := context.Background()

	_, err := f.AddToCart(1, 101, 2)
	require.NoError(t, err)
	cart, err := f.AddToCart(1, 102, 1)
	require.NoError(t, err)
	assert.Equal(t, 335000.0, cart.Total)
	assert.Len(t, cart.Items, 2)

	invoice, err := f.FinalizeCheckout(ctx, 1, 1, order.PaymentInfo{Method: "card", Number: "4111-****"})
	require.NoError(t, err)
	assert.Equal(t, 1, invoice.ID)
	assert.Equal(t, 335000.0, invoice.Total)

	balance := f.Balance()
	assert.Equal(t, 335000.0, balance.Income)
	assert.Equal(t, 335000.0, balance.Balance)
	// Per-unit tally: two units of 101 and one of 102.
	assert.Equal(t, 335000.0, balance.UnitSales)

	after, err := f.Cart(1)
	require.NoError(t, err)
	assert.Empty(t, after.Items)

	// 3 ingests, 3 sale units and 1 order completion.
	audit := f.Components().Audit.Records()
	require.Len(t, audit, 7)
	assert.Equal(t, "order #1 completed", audit[6].Event)

	recent := f.RecentAudit(5)
	require.Len(t, recent, 5)
	assert.Equal(t, audit[2:], recent)

	// One notification per ingest and per unit sold.
	assert.Len(t, f.Components().Notifications.Notifications(), 6)
}

func TestFacade_AddToCartErrors(t *testing.T) {
	tests := []struct {
		name      string
		productID int
		quantity  int
		wantErr   error
	}{
		{name: "unknown product", productID: 999, quantity: 1, wantErr: domain.ErrNotFound},
		{name: "insufficient stock", productID: 103, quantity: 3, wantErr: domain.ErrInvalidState},
		{name: "non-positive quantity", productID: 101, quantity: 0, wantErr: domain.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFacade(t)

			_, err := f.AddToCart(1, tt.productID, tt.quantity)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFacade_AddToCartCreatesClientAndCart(t *testing.T) {
	f := newTestFacade(t)

	_, err := f.AddToCart(7, 101, 1)
	require.NoError(t, err)

	client, ok := f.Components().Store.Client(7)
	require.True(t, ok)
	assert.Equal(t, "Client 7", client.Name)

	// Second add reuses the cart and its single cart observer.
	before := f.Components().Bus.HandlerCount(events.KindProductUpdated)
	_, err = f.AddToCart(7, 102, 1)
	require.NoError(t, err)
	assert.Equal(t, before, f.Components().Bus.HandlerCount(events.KindProductUpdated))
}

func TestFacade_OutOfStockRemovesFromOtherCarts(t *testing.T) {
	f := newTestFacade(t)
	ctx := context.Background()

	_, err := f.AddToCart(1, 103, 2)
	require.NoError(t, err)
	_, err = f.AddToCart(2, 103, 1)
	require.NoError(t, err)
	_, err = f.AddToCart(2, 101, 1)
	require.NoError(t, err)

	_, err = f.FinalizeCheckout(ctx, 1, 1, order.PaymentInfo{})
	require.NoError(t, err)

	other, err := f.Cart(2)
	require.NoError(t, err)
	require.Len(t, other.Items, 1)
	assert.Equal(t, 101, other.Items[0].ProductID)
	assert.Equal(t, 120000.0, other.Total, "total follows the removal")
}

func TestFacade_AddToCartCountsExistingQuantity(t *testing.T) {
	f := newTestFacade(t)

	_, err := f.AddToCart(1, 103, 2)
	require.NoError(t, err)

	_, err = f.AddToCart(1, 103, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	cart, err := f.Cart(1)
	require.NoError(t, err)
	assert.Equal(t, 2, cart.QuantityOf(103))
	assert.Equal(t, 260000.0, cart.Total)
}

func TestFacade_CheckoutNeverOversells(t *testing.T) {
	f := newTestFacade(t)
	ctx := context.Background()

	_, err := f.AddToCart(1, 102, 3)
	require.NoError(t, err)
	_, err = f.AddToCart(2, 102, 4)
	require.NoError(t, err)

	_, err = f.FinalizeCheckout(ctx, 1, 1, order.PaymentInfo{})
	require.NoError(t, err)

	_, err = f.FinalizeCheckout(ctx, 2, 2, order.PaymentInfo{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	stock, err := f.Components().Inventory.StockOf(102)
	require.NoError(t, err)
	assert.Equal(t, 2, stock)
	assert.Equal(t, 285000.0, f.Balance().Income)
}

func TestFacade_CheckoutEmptyCart(t *testing.T) {
	f := newTestFacade(t)

	_, err := f.FinalizeCheckout(context.Background(), 1, 1, order.PaymentInfo{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 0.0, f.Balance().Income)
}

func TestFacade_ViewCatalogFilters(t *testing.T) {
	f := newTestFacade(t)

	minPrice := 100000.0
	items := f.ViewCatalog(&catalog.Filters{MinPrice: &minPrice})
	require.Len(t, items, 2)
	for _, p := range items {
		assert.GreaterOrEqual(t, p.Price, minPrice)
	}

	assert.Len(t, f.ViewCatalog(nil), 3)
	assert.Len(t, f.Search("street"), 1)
}

func TestFacade_CatalogReadsDoNotWaitForWrites(t *testing.T) {
	f := newTestFacade(t)

	// Hold the write lock as a long checkout would.
	f.mu.Lock()
	defer f.mu.Unlock()

	done := make(chan int, 1)
	go func() {
		var wg sync.WaitGroup
		var found atomic.Int32
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				found.Add(int32(len(f.Search("shoes"))))
			}()
		}
		wg.Wait()
		done <- int(found.Load()) + len(f.ViewCatalog(nil))
	}()

	select {
	case n := <-done:
		assert.Equal(t, 8*3+3, n)
	case <-time.After(2 * time.Second):
		t.Fatal("catalog reads blocked behind the facade lock")
	}
}

func TestFacade_AddProductRejectsNegative(t *testing.T) {
	f := newTestFacade(t)

	err := f.AddProduct(context.Background(), domain.Product{ID: 200, Price: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestFacade_LoginLogout(t *testing.T) {
	f := newTestFacade(t)

	_, err := f.Register(domain.User{ID: 1, Name: "Yeison", Email: "yeison@shop.test"}, "password-1")
	require.NoError(t, err)

	session, err := f.Login("yeison@shop.test", "password-1")
	require.NoError(t, err)

	claims, err := f.Authenticate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)

	require.NoError(t, f.Logout(session.Token))
	_, err = f.Authenticate(session.Token)
	assert.ErrorIs(t, err, auth.ErrRevokedToken)

	_, err = f.Login("yeison@shop.test", "wrong-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
