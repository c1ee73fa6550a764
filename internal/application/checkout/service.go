package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scentline/backend/internal/domain/cart"
	"github.com/scentline/backend/internal/domain/checkout"
	"github.com/scentline/backend/internal/domain/order"
	"github.com/scentline/backend/internal/domain/shared"
	"github.com/scentline/backend/internal/domain/shared/valueobject"
	"github.com/scentline/backend/internal/infrastructure/payment"
)

const (
	draftKeyPrefix   = "checkout:draft:"
	sessionKeyPrefix = "checkout:session:"
)

// Service drives the checkout wizard, drafts, promotions and payment
type Service struct {
	cartRepo  cart.Repository
	orderRepo order.Repository
	drafts    checkout.Store
	gateway   payment.Gateway
	promos    *checkout.Promotions
	draftTTL  time.Duration
	logger    *zap.Logger
}

// NewService creates a new checkout Service
func NewService(
	cartRepo cart.Repository,
	orderRepo order.Repository,
	drafts checkout.Store,
	gateway payment.Gateway,
	promos *checkout.Promotions,
	draftTTL time.Duration,
	logger *zap.Logger,
) *Service {
	if draftTTL <= 0 {
		draftTTL = checkout.DraftTTL
	}
	return &Service{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		drafts:    drafts,
		gateway:   gateway,
		promos:    promos,
		draftTTL:  draftTTL,
		logger:    logger,
	}
}

// Next advances the wizard one step. A failed shipping validation
// returns the full error map with the step unchanged.
func (s *Service) Next(req WizardStateRequest) (*WizardStateResponse, error) {
	w := wizardFromRequest(req)
	errs, err := w.Next()
	if err != nil {
		return nil, err
	}
	return toWizardStateResponse(w, errs), nil
}

// Back moves the wizard one step toward shipping, keeping entered data
func (s *Service) Back(req WizardStateRequest) (*WizardStateResponse, error) {
	w := wizardFromRequest(req)
	if err := w.Back(); err != nil {
		return nil, err
	}
	return toWizardStateResponse(w, nil), nil
}

// SaveDraft persists the in-progress checkout state with a TTL
func (s *Service) SaveDraft(ctx context.Context, userID uuid.UUID, req WizardStateRequest) error {
	draft := checkout.NewDraft(wizardFromRequest(req))
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.drafts.Set(ctx, draftKey(userID), string(data), s.draftTTL)
}

// RestoreDraft merges a stored draft into the client's current state.
// Stale or corrupted drafts are removed and the current state returned
// untouched; a draft saved under a different recipient name is ignored.
func (s *Service) RestoreDraft(ctx context.Context, userID uuid.UUID, profileName string, req WizardStateRequest) (*WizardStateResponse, error) {
	w := wizardFromRequest(req)

	raw, err := s.drafts.Get(ctx, draftKey(userID))
	if err != nil {
		if errors.Is(err, checkout.ErrKeyNotFound) {
			return toWizardStateResponse(w, nil), nil
		}
		return nil, err
	}

	var draft checkout.Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		s.logger.Warn("discarding corrupted checkout draft",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		s.removeDraft(ctx, userID)
		return toWizardStateResponse(w, nil), nil
	}

	if draft.IsStale(time.Now()) {
		s.removeDraft(ctx, userID)
		return toWizardStateResponse(w, nil), nil
	}

	if !draft.BelongsTo(profileName) {
		return toWizardStateResponse(w, nil), nil
	}

	draft.MergeInto(w)
	return toWizardStateResponse(w, nil), nil
}

// ClearDraft removes the stored draft
func (s *Service) ClearDraft(ctx context.Context, userID uuid.UUID) error {
	return s.drafts.Remove(ctx, draftKey(userID))
}

// Quote prices the user's cart with an optional promo code applied
func (s *Service) Quote(ctx context.Context, userID uuid.UUID, promoCode string) (*QuoteResponse, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			c = cart.NewCart(userID)
		} else {
			return nil, err
		}
	}
	subtotal, discount, payable, err := s.priceCart(c, promoCode)
	if err != nil {
		return nil, err
	}
	return &QuoteResponse{
		Subtotal:  subtotal.Amount(),
		Discount:  discount.Amount(),
		Payable:   payable.Amount(),
		PromoCode: promoCode,
	}, nil
}

func (s *Service) priceCart(c *cart.Cart, promoCode string) (subtotal, discount, payable valueobject.Money, err error) {
	subtotal = c.Subtotal()

	discount = valueobject.ZeroINR()
	if promoCode != "" {
		discount, err = s.promos.Discount(promoCode, subtotal)
		if err != nil {
			return
		}
	}

	payable, err = subtotal.Subtract(discount)
	return
}

// StartPayment opens a gateway checkout session for the payable amount.
// The shipping form must fully validate and the cart must not be empty.
// A gateway failure leaves the wizard on review; the client may retry.
func (s *Service) StartPayment(ctx context.Context, userID uuid.UUID, req StartPaymentRequest) (*PaymentSessionResponse, error) {
	if errs := req.Form.Validate(); !errs.Valid() {
		return nil, shared.NewDomainError("INVALID_SHIPPING_DETAILS", "Shipping details are incomplete")
	}

	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrCartEmpty
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.ErrCartEmpty
	}

	subtotal, discount, payable, err := s.priceCart(c, req.PromoCode)
	if err != nil {
		return nil, err
	}

	receipt := order.NewOrderNumber(time.Now())
	session, err := s.gateway.CreateCheckout(ctx, payable.Paise(), string(valueobject.INR), receipt, payment.Prefill{
		Name:  req.Form.Name,
		Email: req.Form.Email,
		Phone: req.Form.Phone,
	})
	if err != nil {
		return nil, err
	}

	// Snapshot the amount the gateway order was opened for. Confirm
	// reconciles against it, so the session must outlive the widget.
	snapshot := checkout.PaymentSession{
		UserID:      userID,
		AmountPaise: payable.Paise(),
		Receipt:     receipt,
		PromoCode:   req.PromoCode,
		CreatedAt:   time.Now(),
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	if err := s.drafts.Set(ctx, sessionKey(session.GatewayOrderID), string(data), checkout.SessionTTL); err != nil {
		return nil, err
	}

	return &PaymentSessionResponse{
		GatewayOrderID: session.GatewayOrderID,
		KeyID:          session.KeyID,
		AmountPaise:    session.AmountPaise,
		Currency:       session.Currency,
		Receipt:        receipt,
		Prefill:        session.Prefill,
		Subtotal:       subtotal.Amount(),
		Discount:       discount.Amount(),
		Payable:        payable.Amount(),
	}, nil
}

// ConfirmPayment verifies the gateway signature, reconciles the cart
// against the payment session opened at StartPayment, places the order,
// then clears the cart and any stored draft. Cleanup failures are
// logged, not surfaced; the order already exists.
func (s *Service) ConfirmPayment(ctx context.Context, userID uuid.UUID, req ConfirmPaymentRequest) (*PlacedOrderResponse, error) {
	if err := s.gateway.VerifyPayment(req.GatewayOrderID, req.PaymentID, req.Signature); err != nil {
		return nil, shared.ErrPaymentFailed
	}

	if errs := req.Form.Validate(); !errs.Valid() {
		return nil, shared.NewDomainError("INVALID_SHIPPING_DETAILS", "Shipping details are incomplete")
	}

	session, err := s.loadSession(ctx, req.GatewayOrderID, userID)
	if err != nil {
		return nil, err
	}

	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrCartEmpty
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.ErrCartEmpty
	}

	subtotal, discount, payable, err := s.priceCart(c, session.PromoCode)
	if err != nil {
		return nil, err
	}

	// The gateway charged the session amount. A cart edited after the
	// widget opened must not produce an order with different totals.
	if payable.Paise() != session.AmountPaise {
		return nil, shared.NewDomainError("PAYMENT_AMOUNT_MISMATCH",
			"Cart total no longer matches the amount charged; start the payment again")
	}

	items := make([]order.Item, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, order.Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			ImageURL:  line.ImageURL,
		})
	}

	shipping := order.ShippingDetails{
		Name:     req.Form.Name,
		Email:    req.Form.Email,
		Phone:    req.Form.Phone,
		Address:  req.Form.Address,
		City:     req.Form.City,
		District: req.Form.District,
		Pincode:  req.Form.Pincode,
	}

	o, err := order.NewOrder(session.Receipt, &userID, items, subtotal, discount, payable,
		session.PromoCode, req.PaymentMethod, req.PaymentID, shipping)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		s.logger.Warn("failed to clear cart after order placement",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err))
	}
	s.removeDraft(ctx, userID)
	s.removeSession(ctx, req.GatewayOrderID)

	return toPlacedOrderResponse(o), nil
}

// loadSession fetches the payment session opened at StartPayment. A
// missing, corrupted or foreign session means the gateway order cannot
// be tied to this user's checkout, so the confirm is rejected.
func (s *Service) loadSession(ctx context.Context, gatewayOrderID string, userID uuid.UUID) (*checkout.PaymentSession, error) {
	expired := shared.NewDomainError("PAYMENT_SESSION_EXPIRED",
		"Payment session has expired; start the payment again")

	raw, err := s.drafts.Get(ctx, sessionKey(gatewayOrderID))
	if err != nil {
		if errors.Is(err, checkout.ErrKeyNotFound) {
			return nil, expired
		}
		return nil, err
	}

	var session checkout.PaymentSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.logger.Warn("discarding corrupted payment session",
			zap.String("gateway_order_id", gatewayOrderID),
			zap.Error(err))
		s.removeSession(ctx, gatewayOrderID)
		return nil, expired
	}

	if session.UserID != userID {
		return nil, expired
	}

	return &session, nil
}

func (s *Service) removeSession(ctx context.Context, gatewayOrderID string) {
	if err := s.drafts.Remove(ctx, sessionKey(gatewayOrderID)); err != nil {
		s.logger.Warn("failed to remove payment session",
			zap.String("gateway_order_id", gatewayOrderID),
			zap.Error(err))
	}
}

func sessionKey(gatewayOrderID string) string {
	return sessionKeyPrefix + gatewayOrderID
}

func (s *Service) removeDraft(ctx context.Context, userID uuid.UUID) {
	if err := s.drafts.Remove(ctx, draftKey(userID)); err != nil {
		s.logger.Warn("failed to remove checkout draft",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}

func draftKey(userID uuid.UUID) string {
	return draftKeyPrefix + userID.String()
}
