package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/scentline/backend/internal/domain/customer"
	"github.com/scentline/backend/internal/domain/shared"
)

// AddressService handles saved shipping addresses
type AddressService struct {
	addressRepo customer.AddressRepository
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo customer.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// List returns a user's saved addresses, default first
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(addresses), nil
}

// Create saves a new address. The user's first address becomes the
// default automatically; MakeDefault promotes a later one.
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req SaveAddressRequest) (*AddressResponse, error) {
	address, err := customer.NewSavedAddress(userID, customer.AddressType(req.Type),
		req.RecipientName, req.Phone, req.AddressLine, req.City, req.District, req.Pincode)
	if err != nil {
		return nil, err
	}

	existing, err := s.addressRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		address.IsDefault = true
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	if req.MakeDefault && !address.IsDefault {
		if err := s.addressRepo.SetDefault(ctx, userID, address.ID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// Update rewrites an address owned by the user
func (s *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, req SaveAddressRequest) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, shared.ErrNotFound
	}

	updated, err := customer.NewSavedAddress(userID, customer.AddressType(req.Type),
		req.RecipientName, req.Phone, req.AddressLine, req.City, req.District, req.Pincode)
	if err != nil {
		return nil, err
	}

	address.Type = updated.Type
	address.RecipientName = updated.RecipientName
	address.Phone = updated.Phone
	address.AddressLine = updated.AddressLine
	address.City = updated.City
	address.District = updated.District
	address.Pincode = updated.Pincode

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	if req.MakeDefault && !address.IsDefault {
		if err := s.addressRepo.SetDefault(ctx, userID, address.ID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// Delete removes an address owned by the user
func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	return s.addressRepo.Delete(ctx, userID, addressID)
}

// SetDefault marks one address as the user's default; the previous
// default is cleared in the same operation.
func (s *AddressService) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	return s.addressRepo.SetDefault(ctx, userID, addressID)
}

// GetDefault returns the user's default address if one exists
func (s *AddressService) GetDefault(ctx context.Context, userID uuid.UUID) (*AddressResponse, error) {
	address, err := s.addressRepo.FindDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToAddressResponse(address)
	return &response, nil
}
