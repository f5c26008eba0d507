package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	domain "github.com/example/patterns-shop/domain/shop"
	"github.com/example/patterns-shop/modules/auth"
	"github.com/example/patterns-shop/modules/catalog"
	"github.com/example/patterns-shop/modules/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// overTheWire encodes and decodes v the way the service container does.
func overTheWire[T any](t *testing.T, v T) T {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func newServiceModule(t *testing.T) *Module {
	t.Helper()

	f := newTestFacade(t)
	_, err := f.Register(domain.User{ID: 1, Name: "Yeison", Email: "yeison@shop.test"}, "password-1")
	require.NoError(t, err)
	return NewModule(f, &mockLogger{})
}

func TestReplyStatus_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
		wantIs   error
	}{
		{name: "not found", err: fmt.Errorf("%w: cart 9", domain.ErrNotFound), wantKind: ErrKindNotFound, wantIs: domain.ErrNotFound},
		{name: "invalid state", err: fmt.Errorf("%w: empty cart", domain.ErrInvalidState), wantKind: ErrKindInvalidState, wantIs: domain.ErrInvalidState},
		{name: "payment rejected", err: fmt.Errorf("%w: declined", domain.ErrPaymentRejected), wantKind: ErrKindPaymentRejected, wantIs: domain.ErrPaymentRejected},
		{name: "bad credentials", err: auth.ErrInvalidCredentials, wantKind: ErrKindInvalidCredentials, wantIs: auth.ErrInvalidCredentials},
		{name: "revoked token", err: auth.ErrRevokedToken, wantKind: ErrKindUnauthorized, wantIs: auth.ErrInvalidToken},
		{name: "other", err: errors.New("disk full"), wantKind: ErrKindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := overTheWire(t, statusOf(tt.err))
			assert.Equal(t, tt.wantKind, status.ErrorKind)

			err := status.Err()
			require.Error(t, err)
			assert.Equal(t, tt.err.Error(), err.Error())
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}

	assert.NoError(t, statusOf(nil).Err())
}

func TestServices_CartAndCheckout(t *testing.T) {
	m := newServiceModule(t)
	ctx := context.Background()

	cart, err := m.handleAddToCart(ctx, AddToCartRequest{ClientID: 1, ProductID: 101, Quantity: 2}, nil)
	require.NoError(t, err)
	cart = overTheWire(t, cart)
	require.NoError(t, cart.Err())
	assert.Equal(t, 240000.0, cart.Cart.Total)

	cart, err = m.handleAddToCart(ctx, AddToCartRequest{ClientID: 1, ProductID: 103, Quantity: 3}, nil)
	require.NoError(t, err, "business failures travel in the reply")
	assert.ErrorIs(t, overTheWire(t, cart).Err(), domain.ErrInvalidState)

	got, err := m.handleGetCart(ctx, GetCartRequest{CartID: 1}, nil)
	require.NoError(t, err)
	assert.Len(t, overTheWire(t, got).Cart.Items, 1)

	missing, err := m.handleGetCart(ctx, GetCartRequest{CartID: 42}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, overTheWire(t, missing).Err(), domain.ErrNotFound)

	invoice, err := m.handleCheckout(ctx, CheckoutRequest{ClientID: 1, CartID: 1, Payment: order.PaymentInfo{Method: "card"}}, nil)
	require.NoError(t, err)
	invoice = overTheWire(t, invoice)
	require.NoError(t, invoice.Err())
	assert.Equal(t, 1, invoice.Invoice.ID)
	assert.Equal(t, 240000.0, invoice.Invoice.Total)

	balance, err := m.handleBalance(ctx, BalanceRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 240000.0, overTheWire(t, balance).Balance.Income)

	audit, err := m.handleRecentAudit(ctx, RecentAuditRequest{Limit: 1}, nil)
	require.NoError(t, err)
	records := overTheWire(t, audit).Records
	require.Len(t, records, 1)
	assert.Equal(t, "order #1 completed", records[0].Event)
}

func TestServices_Catalog(t *testing.T) {
	m := newServiceModule(t)
	ctx := context.Background()

	list, err := m.handleListProducts(ctx, ListProductsRequest{}, nil)
	require.NoError(t, err)
	assert.Len(t, overTheWire(t, list).Products, 3)

	minPrice := 100000.0
	req := overTheWire(t, ListProductsRequest{Filters: &catalog.Filters{MinPrice: &minPrice}})
	list, err = m.handleListProducts(ctx, req, nil)
	require.NoError(t, err)
	assert.Len(t, list.Products, 2)

	found, err := m.handleSearch(ctx, SearchRequest{Query: "street"}, nil)
	require.NoError(t, err)
	require.Len(t, found.Products, 1)
	assert.Equal(t, 103, found.Products[0].ID)

	added, err := m.handleAddProduct(ctx, AddProductRequest{Product: domain.Product{ID: 104, Name: "Boots", Price: 150000, Stock: 3}}, nil)
	require.NoError(t, err)
	require.NoError(t, overTheWire(t, added).Err())

	rejected, err := m.handleAddProduct(ctx, AddProductRequest{Product: domain.Product{ID: 105, Price: -1}}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, overTheWire(t, rejected).Err(), domain.ErrInvalidState)
}

func TestServices_Sessions(t *testing.T) {
	m := newServiceModule(t)
	ctx := context.Background()

	bad, err := m.handleLogin(ctx, LoginRequest{Email: "yeison@shop.test", Password: "wrong-password"}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, overTheWire(t, bad).Err(), auth.ErrInvalidCredentials)

	login, err := m.handleLogin(ctx, LoginRequest{Email: "yeison@shop.test", Password: "password-1"}, nil)
	require.NoError(t, err)
	login = overTheWire(t, login)
	require.NoError(t, login.Err())
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "Bearer", login.TokenType)

	valid, err := m.handleValidateToken(ctx, TokenRequest{Token: login.Token}, nil)
	require.NoError(t, err)
	claims, err := claimsFrom(overTheWire(t, valid))
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "yeison@shop.test", claims.Email)

	out, err := m.handleLogout(ctx, TokenRequest{Token: login.Token}, nil)
	require.NoError(t, err)
	require.NoError(t, overTheWire(t, out).Err())

	revoked, err := m.handleValidateToken(ctx, TokenRequest{Token: login.Token}, nil)
	require.NoError(t, err)
	_, err = claimsFrom(overTheWire(t, revoked))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestNewShopAdapter(t *testing.T) {
	adapter := NewShopAdapter(nil)

	require.NotNil(t, adapter)
	assert.Nil(t, adapter.container)
}
