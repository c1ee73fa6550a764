package payment

import (
	"context"
	"fmt"
	"sync/atomic"
)

// StubGateway is an in-process Gateway for tests and local
// development. It accepts any payment whose signature is the literal
// "valid" concatenated with the gateway order id.
type StubGateway struct {
	counter atomic.Int64
	// FailCreate forces CreateCheckout to fail when set
	FailCreate bool
}

// NewStubGateway creates a stub gateway
func NewStubGateway() *StubGateway {
	return &StubGateway{}
}

// CreateCheckout fabricates a gateway order id locally
func (g *StubGateway) CreateCheckout(_ context.Context, amountPaise int64, currency, receipt string, prefill Prefill) (*CheckoutSession, error) {
	if g.FailCreate {
		return nil, ErrGatewayUnavailable
	}
	if amountPaise <= 0 {
		return nil, fmt.Errorf("stub: amount must be positive, got %d", amountPaise)
	}
	if currency == "" {
		currency = "INR"
	}
	return &CheckoutSession{
		GatewayOrderID: fmt.Sprintf("order_stub_%d", g.counter.Add(1)),
		KeyID:          "stub_key",
		AmountPaise:    amountPaise,
		Currency:       currency,
		Receipt:        receipt,
		Prefill:        prefill,
	}, nil
}

// VerifyPayment accepts the stub signature scheme
func (g *StubGateway) VerifyPayment(gatewayOrderID, paymentID, signature string) error {
	if gatewayOrderID == "" || paymentID == "" {
		return ErrSignatureMismatch
	}
	if signature != StubSignature(gatewayOrderID) {
		return ErrSignatureMismatch
	}
	return nil
}

// StubSignature returns the signature the stub gateway accepts for an order
func StubSignature(gatewayOrderID string) string {
	return "valid" + gatewayOrderID
}

// Ensure StubGateway implements Gateway
var _ Gateway = (*StubGateway)(nil)
