package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scentline/backend/internal/domain/checkout"
	"github.com/scentline/backend/internal/domain/order"
	"github.com/scentline/backend/internal/domain/validation"
	"github.com/scentline/backend/internal/infrastructure/payment"
)

// WizardStateRequest carries the client's current checkout state.
// The wizard itself is stateless between requests; drafts persist it.
type WizardStateRequest struct {
	Step          int                     `json:"step" binding:"min=0,max=2"`
	Form          validation.ShippingForm `json:"form"`
	PaymentMethod string                  `json:"payment_method"`
	PromoCode     string                  `json:"promo_code"`
}

// WizardStateResponse is the checkout state after an operation
type WizardStateResponse struct {
	Step          int                     `json:"step"`
	StepName      string                  `json:"step_name"`
	Form          validation.ShippingForm `json:"form"`
	PaymentMethod string                  `json:"payment_method"`
	PromoCode     string                  `json:"promo_code"`
	Errors        validation.Errors       `json:"errors,omitempty"`
}

// QuoteResponse is the priced cart for the review step
type QuoteResponse struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Payable   decimal.Decimal `json:"payable"`
	PromoCode string          `json:"promo_code,omitempty"`
}

// StartPaymentRequest opens a gateway checkout session from the review step
type StartPaymentRequest struct {
	Form          validation.ShippingForm `json:"form"`
	PaymentMethod string                  `json:"payment_method" binding:"required"`
	PromoCode     string                  `json:"promo_code"`
}

// PaymentSessionResponse carries the widget parameters for the gateway
type PaymentSessionResponse struct {
	GatewayOrderID string          `json:"gateway_order_id"`
	KeyID          string          `json:"key_id"`
	AmountPaise    int64           `json:"amount_paise"`
	Currency       string          `json:"currency"`
	Receipt        string          `json:"receipt"`
	Prefill        payment.Prefill `json:"prefill"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	Payable        decimal.Decimal `json:"payable"`
}

// ConfirmPaymentRequest closes a gateway session after the widget
// succeeds. Receipt and promo code come from the stored payment
// session, not the client.
type ConfirmPaymentRequest struct {
	GatewayOrderID string                  `json:"gateway_order_id" binding:"required"`
	PaymentID      string                  `json:"payment_id" binding:"required"`
	Signature      string                  `json:"signature" binding:"required"`
	Form           validation.ShippingForm `json:"form"`
	PaymentMethod  string                  `json:"payment_method" binding:"required"`
}

// PlacedOrderResponse confirms a placed order
type PlacedOrderResponse struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	Discount    decimal.Decimal `json:"discount"`
	Payable     decimal.Decimal `json:"payable"`
}

func toWizardStateResponse(w *checkout.Wizard, errs validation.Errors) *WizardStateResponse {
	return &WizardStateResponse{
		Step:          int(w.Step),
		StepName:      w.Step.String(),
		Form:          w.Form,
		PaymentMethod: w.PaymentMethod,
		PromoCode:     w.PromoCode,
		Errors:        errs,
	}
}

func toPlacedOrderResponse(o *order.Order) *PlacedOrderResponse {
	return &PlacedOrderResponse{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
		Total:       o.Total.Amount(),
		Discount:    o.Discount.Amount(),
		Payable:     o.Payable.Amount(),
	}
}

func wizardFromRequest(req WizardStateRequest) *checkout.Wizard {
	w := checkout.NewWizard()
	if step := checkout.Step(req.Step); step.IsValid() {
		w.Step = step
	}
	w.Form = req.Form
	w.PaymentMethod = req.PaymentMethod
	w.PromoCode = req.PromoCode
	return w
}
