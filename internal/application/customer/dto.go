package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/scentline/backend/internal/domain/customer"
)

// SaveAddressRequest represents a request to save a shipping address
type SaveAddressRequest struct {
	Type          string `json:"type" binding:"omitempty,oneof=home work"`
	RecipientName string `json:"recipient_name" binding:"required"`
	Phone         string `json:"phone" binding:"required,inmobile"`
	AddressLine   string `json:"address_line" binding:"required"`
	City          string `json:"city" binding:"required"`
	District      string `json:"district" binding:"required"`
	Pincode       string `json:"pincode" binding:"required,pincode"`
	MakeDefault   bool   `json:"make_default"`
}

// AddressResponse represents a saved address in API responses
type AddressResponse struct {
	ID            uuid.UUID `json:"id"`
	Type          string    `json:"type"`
	RecipientName string    `json:"recipient_name"`
	Phone         string    `json:"phone"`
	AddressLine   string    `json:"address_line"`
	City          string    `json:"city"`
	District      string    `json:"district"`
	Pincode       string    `json:"pincode"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToAddressResponse converts a saved address to its API representation
func ToAddressResponse(a *customer.SavedAddress) AddressResponse {
	return AddressResponse{
		ID:            a.ID,
		Type:          string(a.Type),
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		AddressLine:   a.AddressLine,
		City:          a.City,
		District:      a.District,
		Pincode:       a.Pincode,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt,
	}
}

// ToAddressResponses converts a slice of saved addresses
func ToAddressResponses(addresses []customer.SavedAddress) []AddressResponse {
	responses := make([]AddressResponse, 0, len(addresses))
	for i := range addresses {
		responses = append(responses, ToAddressResponse(&addresses[i]))
	}
	return responses
}
