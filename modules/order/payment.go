package order

import (
	"context"
	"strings"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// PaymentInfo describes how a checkout is paid.
type PaymentInfo struct {
	Method string `json:"method"`
	Number string `json:"number"`
}

// PaymentResult is the gateway's answer to a charge.
type PaymentResult struct {
	Approved      bool    `json:"approved"`
	Authorization string  `json:"authorization,omitempty"`
	Amount        float64 `json:"amount"`
}

// PaymentGateway charges a payment method.
type PaymentGateway interface {
	Charge(ctx context.Context, amount float64, info PaymentInfo) (PaymentResult, error)
}

// StubGateway approves every charge.
type StubGateway struct {
	logger types.Logger
}

// NewStubGateway creates a gateway that always approves.
func NewStubGateway(logger types.Logger) *StubGateway {
	return &StubGateway{logger: logger}
}

// Charge approves the charge and returns a fresh authorization code.
func (g *StubGateway) Charge(_ context.Context, amount float64, info PaymentInfo) (PaymentResult, error) {
	auth := "AUTH-" + strings.ToUpper(uuid.New().String()[:8])
	g.logger.Info("Payment processed", "amount", amount, "method", info.Method, "authorization", auth)

	return PaymentResult{
		Approved:      true,
		Authorization: auth,
		Amount:        amount,
	}, nil
}
