package shop

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListProducts, json.Unmarshal, json.Marshal, m.handleListProducts,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListProducts, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceSearch, json.Unmarshal, json.Marshal, m.handleSearch,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceSearch, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceAddProduct, json.Unmarshal, json.Marshal, m.handleAddProduct,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceAddProduct, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceLogin, json.Unmarshal, json.Marshal, m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceLogin, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceLogout, json.Unmarshal, json.Marshal, m.handleLogout,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceLogout, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceValidateToken, json.Unmarshal, json.Marshal, m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceValidateToken, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetCart, json.Unmarshal, json.Marshal, m.handleGetCart,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetCart, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceAddToCart, json.Unmarshal, json.Marshal, m.handleAddToCart,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceAddToCart, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCheckout, json.Unmarshal, json.Marshal, m.handleCheckout,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCheckout, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceBalance, json.Unmarshal, json.Marshal, m.handleBalance,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceBalance, err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceRecentAudit, json.Unmarshal, json.Marshal, m.handleRecentAudit,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceRecentAudit, err)
	}

	m.logger.Info("Registered shop services", "count", 11)
	return nil
}

// Business failures are reported in the reply status, not as handler errors,
// so the caller can tell them apart from transport failures.

func (m *Module) handleListProducts(_ context.Context, req ListProductsRequest, _ *mono.Msg) (ProductsResponse, error) {
	return ProductsResponse{Products: m.facade.ViewCatalog(req.Filters)}, nil
}

func (m *Module) handleSearch(_ context.Context, req SearchRequest, _ *mono.Msg) (ProductsResponse, error) {
	return ProductsResponse{Products: m.facade.Search(req.Query)}, nil
}

func (m *Module) handleAddProduct(ctx context.Context, req AddProductRequest, _ *mono.Msg) (EmptyResponse, error) {
	err := m.facade.AddProduct(ctx, req.Product)
	return EmptyResponse{ReplyStatus: statusOf(err)}, nil
}

func (m *Module) handleLogin(_ context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	session, err := m.facade.Login(req.Email, req.Password)
	if err != nil {
		return LoginResponse{ReplyStatus: statusOf(err)}, nil
	}
	return LoginResponse{
		Token:     session.Token,
		ExpiresIn: session.ExpiresIn,
		TokenType: session.TokenType,
	}, nil
}

func (m *Module) handleLogout(_ context.Context, req TokenRequest, _ *mono.Msg) (EmptyResponse, error) {
	err := m.facade.Logout(req.Token)
	return EmptyResponse{ReplyStatus: statusOf(err)}, nil
}

func (m *Module) handleValidateToken(_ context.Context, req TokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.facade.Authenticate(req.Token)
	if err != nil {
		return ValidateTokenResponse{ReplyStatus: statusOf(err)}, nil
	}
	return ValidateTokenResponse{
		Valid:  true,
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

func (m *Module) handleGetCart(_ context.Context, req GetCartRequest, _ *mono.Msg) (CartReply, error) {
	cart, err := m.facade.Cart(req.CartID)
	return CartReply{ReplyStatus: statusOf(err), Cart: cart}, nil
}

func (m *Module) handleAddToCart(_ context.Context, req AddToCartRequest, _ *mono.Msg) (CartReply, error) {
	cart, err := m.facade.AddToCart(req.ClientID, req.ProductID, req.Quantity)
	return CartReply{ReplyStatus: statusOf(err), Cart: cart}, nil
}

func (m *Module) handleCheckout(ctx context.Context, req CheckoutRequest, _ *mono.Msg) (InvoiceReply, error) {
	invoice, err := m.facade.FinalizeCheckout(ctx, req.ClientID, req.CartID, req.Payment)
	return InvoiceReply{ReplyStatus: statusOf(err), Invoice: invoice}, nil
}

func (m *Module) handleBalance(_ context.Context, _ BalanceRequest, _ *mono.Msg) (BalanceReply, error) {
	return BalanceReply{Balance: m.facade.Balance()}, nil
}

func (m *Module) handleRecentAudit(_ context.Context, req RecentAuditRequest, _ *mono.Msg) (AuditReply, error) {
	return AuditReply{Records: m.facade.RecentAudit(req.Limit)}, nil
}
