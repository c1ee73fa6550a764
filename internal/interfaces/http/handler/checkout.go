package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/scentline/backend/internal/application/checkout"
	"github.com/scentline/backend/internal/application/identity"
)

// CheckoutHandler drives the checkout wizard, draft persistence and
// the payment flow
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.Service
	authService     *identity.AuthService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkoutapp.Service, authService *identity.AuthService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		authService:     authService,
	}
}

// Next godoc
// @Summary      Advance the checkout wizard one step
// @Description  The shipping step only advances once its form validates;
// @Description  field errors come back in the response without changing the step
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkoutapp.WizardStateRequest true "Current wizard state"
// @Success      200 {object} dto.Response{data=checkoutapp.WizardStateResponse}
// @Security     BearerAuth
// @Router       /checkout/next [post]
func (h *CheckoutHandler) Next(c *gin.Context) {
	var req checkoutapp.WizardStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	state, err := h.checkoutService.Next(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, state)
}

// Back godoc
// @Summary      Move the checkout wizard one step back
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkoutapp.WizardStateRequest true "Current wizard state"
// @Success      200 {object} dto.Response{data=checkoutapp.WizardStateResponse}
// @Security     BearerAuth
// @Router       /checkout/back [post]
func (h *CheckoutHandler) Back(c *gin.Context) {
	var req checkoutapp.WizardStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	state, err := h.checkoutService.Back(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, state)
}

// SaveDraft godoc
// @Summary      Persist the in-progress checkout state
// @Tags         checkout
// @Accept       json
// @Param        request body checkoutapp.WizardStateRequest true "Current wizard state"
// @Success      204
// @Security     BearerAuth
// @Router       /checkout/draft [put]
func (h *CheckoutHandler) SaveDraft(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkoutapp.WizardStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.checkoutService.SaveDraft(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RestoreDraft godoc
// @Summary      Merge a saved draft into the current checkout state
// @Description  Stale or unreadable drafts are dropped; a draft saved under
// @Description  a different recipient name is left alone
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkoutapp.WizardStateRequest true "Current wizard state"
// @Success      200 {object} dto.Response{data=checkoutapp.WizardStateResponse}
// @Security     BearerAuth
// @Router       /checkout/draft/restore [post]
func (h *CheckoutHandler) RestoreDraft(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkoutapp.WizardStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	var profileName string
	if profile, err := h.authService.GetProfile(c.Request.Context(), userID); err == nil {
		profileName = profile.DisplayName
	}

	state, err := h.checkoutService.RestoreDraft(c.Request.Context(), userID, profileName, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, state)
}

// ClearDraft godoc
// @Summary      Discard the saved checkout draft
// @Tags         checkout
// @Success      204
// @Security     BearerAuth
// @Router       /checkout/draft [delete]
func (h *CheckoutHandler) ClearDraft(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.checkoutService.ClearDraft(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Quote godoc
// @Summary      Price the cart for the review step
// @Tags         checkout
// @Produce      json
// @Param        promo_code query string false "Promo code to apply"
// @Success      200 {object} dto.Response{data=checkoutapp.QuoteResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /checkout/quote [get]
func (h *CheckoutHandler) Quote(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	quote, err := h.checkoutService.Quote(c.Request.Context(), userID, c.Query("promo_code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}

// StartPayment godoc
// @Summary      Open a gateway checkout session
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkoutapp.StartPaymentRequest true "Shipping details and payment method"
// @Success      200 {object} dto.Response{data=checkoutapp.PaymentSessionResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /checkout/payment [post]
func (h *CheckoutHandler) StartPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkoutapp.StartPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	session, err := h.checkoutService.StartPayment(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// ConfirmPayment godoc
// @Summary      Verify the gateway signature and place the order
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkoutapp.ConfirmPaymentRequest true "Gateway callback payload"
// @Success      201 {object} dto.Response{data=checkoutapp.PlacedOrderResponse}
// @Failure      402 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /checkout/payment/confirm [post]
func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkoutapp.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	placed, err := h.checkoutService.ConfirmPayment(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, placed)
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	{
		checkout.POST("/next", h.Next)
		checkout.POST("/back", h.Back)
		checkout.PUT("/draft", h.SaveDraft)
		checkout.POST("/draft/restore", h.RestoreDraft)
		checkout.DELETE("/draft", h.ClearDraft)
		checkout.GET("/quote", h.Quote)
		checkout.POST("/payment", h.StartPayment)
		checkout.POST("/payment/confirm", h.ConfirmPayment)
	}
}
