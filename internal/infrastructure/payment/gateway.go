package payment

import (
	"context"

	"github.com/scentline/backend/internal/domain/shared"
)

// CheckoutSession holds the parameters the hosted payment widget needs
type CheckoutSession struct {
	GatewayOrderID string `json:"gateway_order_id"`
	KeyID          string `json:"key_id"`
	AmountPaise    int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	Prefill        Prefill `json:"prefill"`
}

// Prefill pre-populates the hosted widget's contact fields
type Prefill struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"contact"`
}

// Gateway abstracts the hosted checkout payment provider
type Gateway interface {
	// CreateCheckout opens a gateway order for the given amount in
	// minor units (paise) and returns the widget parameters.
	CreateCheckout(ctx context.Context, amountPaise int64, currency, receipt string, prefill Prefill) (*CheckoutSession, error)

	// VerifyPayment checks the signature the widget returns after a
	// successful payment.
	VerifyPayment(gatewayOrderID, paymentID, signature string) error
}

// Common gateway errors
var (
	ErrSignatureMismatch = shared.NewDomainError("PAYMENT_FAILED", "Payment signature verification failed")
	ErrGatewayUnavailable = shared.NewDomainError("GATEWAY_UNAVAILABLE", "Payment gateway is unavailable")
)
