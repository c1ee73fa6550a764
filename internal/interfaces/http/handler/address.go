package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	customerapp "github.com/scentline/backend/internal/application/customer"
)

// AddressHandler handles the signed-in user's saved addresses
type AddressHandler struct {
	BaseHandler
	addressService *customerapp.AddressService
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addressService *customerapp.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// List godoc
// @Summary      List saved addresses, default first
// @Tags         addresses
// @Produce      json
// @Success      200 {object} dto.Response{data=[]customerapp.AddressResponse}
// @Security     BearerAuth
// @Router       /addresses [get]
func (h *AddressHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, addresses)
}

// Create godoc
// @Summary      Save a new address
// @Description  The first saved address becomes the default automatically
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        request body customerapp.SaveAddressRequest true "Address details"
// @Success      201 {object} dto.Response{data=customerapp.AddressResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req customerapp.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, address)
}

// Update godoc
// @Summary      Update a saved address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Param        id path string true "Address ID" format(uuid)
// @Param        request body customerapp.SaveAddressRequest true "Address details"
// @Success      200 {object} dto.Response{data=customerapp.AddressResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	var req customerapp.SaveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	address, err := h.addressService.Update(c.Request.Context(), userID, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, address)
}

// Delete godoc
// @Summary      Delete a saved address
// @Tags         addresses
// @Param        id path string true "Address ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetDefault godoc
// @Summary      Make an address the default
// @Description  Exactly one address is the default at a time
// @Tags         addresses
// @Param        id path string true "Address ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /addresses/{id}/default [post]
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	if err := h.addressService.SetDefault(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetDefault godoc
// @Summary      Get the default address
// @Tags         addresses
// @Produce      json
// @Success      200 {object} dto.Response{data=customerapp.AddressResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /addresses/default [get]
func (h *AddressHandler) GetDefault(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	address, err := h.addressService.GetDefault(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, address)
}

// RegisterRoutes registers address routes
func (h *AddressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	addresses := rg.Group("/addresses")
	{
		addresses.GET("", h.List)
		addresses.POST("", h.Create)
		addresses.GET("/default", h.GetDefault)
		addresses.PUT("/:id", h.Update)
		addresses.DELETE("/:id", h.Delete)
		addresses.POST("/:id/default", h.SetDefault)
	}
}
