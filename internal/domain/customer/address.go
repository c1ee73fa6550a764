package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/scentline/backend/internal/domain/shared"
	"github.com/scentline/backend/internal/domain/validation"
)

// AddressType tags a saved address
type AddressType string

const (
	AddressHome AddressType = "home"
	AddressWork AddressType = "work"
)

// IsValid checks if the address type is known
func (t AddressType) IsValid() bool {
	return t == AddressHome || t == AddressWork
}

// SavedAddress is a reusable shipping address on a user's profile.
// At most one address per user carries the default flag.
type SavedAddress struct {
	shared.BaseEntity
	UserID        uuid.UUID   `gorm:"type:uuid;not null;index"`
	Type          AddressType `gorm:"not null;default:home"`
	RecipientName string      `gorm:"not null"`
	Phone         string      `gorm:"not null"`
	AddressLine   string      `gorm:"not null"`
	City          string      `gorm:"not null"`
	District      string      `gorm:"not null"`
	Pincode       string      `gorm:"not null"`
	IsDefault     bool        `gorm:"not null;default:false"`
}

// TableName returns the database table name
func (SavedAddress) TableName() string {
	return "saved_addresses"
}

// NewSavedAddress creates a saved address after field validation
func NewSavedAddress(userID uuid.UUID, addrType AddressType, recipientName, phone, addressLine, city, district, pincode string) (*SavedAddress, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if !addrType.IsValid() {
		addrType = AddressHome
	}
	errs := validation.Errors{}
	errs = validation.Field(validation.FieldName, recipientName, errs)
	errs = validation.Field(validation.FieldPhone, phone, errs)
	errs = validation.Field(validation.FieldAddress, addressLine, errs)
	errs = validation.Field(validation.FieldCity, city, errs)
	errs = validation.Field(validation.FieldDistrict, district, errs)
	errs = validation.Field(validation.FieldPincode, pincode, errs)
	if !errs.Valid() {
		return nil, shared.ErrInvalidInput
	}
	return &SavedAddress{
		BaseEntity:    shared.NewBaseEntity(),
		UserID:        userID,
		Type:          addrType,
		RecipientName: recipientName,
		Phone:         phone,
		AddressLine:   addressLine,
		City:          city,
		District:      district,
		Pincode:       pincode,
	}, nil
}

// AddressRepository defines persistence for saved addresses
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SavedAddress, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]SavedAddress, error)
	FindDefault(ctx context.Context, userID uuid.UUID) (*SavedAddress, error)
	Save(ctx context.Context, address *SavedAddress) error
	Delete(ctx context.Context, userID, addressID uuid.UUID) error
	// SetDefault atomically clears the previous default and marks the
	// given address as the user's default.
	SetDefault(ctx context.Context, userID, addressID uuid.UUID) error
}
