package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/scentline/backend/internal/application/catalog"
	"github.com/scentline/backend/internal/interfaces/http/middleware"
)

// ReviewHandler handles storefront reviews and admin moderation
type ReviewHandler struct {
	BaseHandler
	reviewService *catalogapp.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *catalogapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListApproved godoc
// @Summary      List approved reviews
// @Tags         reviews
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Success      200 {object} dto.Response{data=[]catalogapp.ReviewResponse,meta=dto.Meta}
// @Router       /reviews [get]
func (h *ReviewHandler) ListApproved(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.reviewService.ListApproved(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// Submit godoc
// @Summary      Submit a review for moderation
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.SubmitReviewRequest true "Review"
// @Success      201 {object} dto.Response{data=catalogapp.ReviewResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req catalogapp.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	// Guests may review; attribute to the user when a token is present
	var userID *uuid.UUID
	if id, ok := middleware.GetJWTUserUUID(c); ok {
		userID = &id
	}

	review, err := h.reviewService.Submit(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, review)
}

// ListForModeration godoc
// @Summary      List reviews for moderation
// @Tags         reviews
// @Produce      json
// @Param        search query string false "Search term (author, body, rating)"
// @Param        approved query bool false "Filter by approval state"
// @Param        rating query int false "Filter by rating" minimum(1) maximum(5)
// @Param        page query int false "Page number" default(1)
// @Success      200 {object} dto.Response{data=[]catalogapp.ReviewResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /admin/reviews [get]
func (h *ReviewHandler) ListForModeration(c *gin.Context) {
	var filter catalogapp.ReviewListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.reviewService.ListForModeration(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// Approve godoc
// @Summary      Approve a review for display
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Review ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ReviewResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/reviews/{id}/approve [post]
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	review, err := h.reviewService.Approve(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}

// Delete godoc
// @Summary      Delete a review
// @Tags         reviews
// @Param        id path string true "Review ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers public review routes
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	{
		reviews.GET("", h.ListApproved)
		reviews.POST("", h.Submit)
	}
}

// RegisterAdminRoutes registers moderation routes
func (h *ReviewHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	{
		reviews.GET("", h.ListForModeration)
		reviews.POST("/:id/approve", h.Approve)
		reviews.DELETE("/:id", h.Delete)
	}
}
