package customer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/scentline/backend/internal/domain/customer"
	"github.com/scentline/backend/internal/domain/shared"
)

// MockAddressRepository is a mock implementation of customer.AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.SavedAddress, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.SavedAddress), args.Error(1)
}

func (m *MockAddressRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]customer.SavedAddress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.SavedAddress), args.Error(1)
}

func (m *MockAddressRepository) FindDefault(ctx context.Context, userID uuid.UUID) (*customer.SavedAddress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.SavedAddress), args.Error(1)
}

func (m *MockAddressRepository) Save(ctx context.Context, a *customer.SavedAddress) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	args := m.Called(ctx, userID, addressID)
	return args.Error(0)
}

func (m *MockAddressRepository) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	args := m.Called(ctx, userID, addressID)
	return args.Error(0)
}

func validAddressRequest() SaveAddressRequest {
	return SaveAddressRequest{
		Type:          "home",
		RecipientName: "Asha Nair",
		Phone:         "9876543210",
		AddressLine:   "12 Rose Garden Road, Indiranagar",
		City:          "Bengaluru",
		District:      "Bengaluru Urban",
		Pincode:       "560038",
	}
}

func TestAddressService_Create(t *testing.T) {
	t.Run("first address becomes the default", func(t *testing.T) {
		repo := new(MockAddressRepository)
		service := NewAddressService(repo)

		userID := uuid.New()
		repo.On("FindByUserID", mock.Anything, userID).Return([]customer.SavedAddress{}, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*customer.SavedAddress")).Return(nil)

		resp, err := service.Create(context.Background(), userID, validAddressRequest())

		require.NoError(t, err)
		assert.True(t, resp.IsDefault)
	})

	t.Run("later addresses are not default unless requested", func(t *testing.T) {
		repo := new(MockAddressRepository)
		service := NewAddressService(repo)

		userID := uuid.New()
		existing, err := customer.NewSavedAddress(userID, customer.AddressHome,
			"Asha Nair", "9876543210", "12 Rose Garden Road, Indiranagar",
			"Bengaluru", "Bengaluru Urban", "560038")
		require.NoError(t, err)

		repo.On("FindByUserID", mock.Anything, userID).Return([]customer.SavedAddress{*existing}, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*customer.SavedAddress")).Return(nil)

		resp, err := service.Create(context.Background(), userID, validAddressRequest())

		require.NoError(t, err)
		assert.False(t, resp.IsDefault)
		repo.AssertNotCalled(t, "SetDefault", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("make_default promotes the new address", func(t *testing.T) {
		repo := new(MockAddressRepository)
		service := NewAddressService(repo)

		userID := uuid.New()
		existing, err := customer.NewSavedAddress(userID, customer.AddressHome,
			"Asha Nair", "9876543210", "12 Rose Garden Road, Indiranagar",
			"Bengaluru", "Bengaluru Urban", "560038")
		require.NoError(t, err)

		repo.On("FindByUserID", mock.Anything, userID).Return([]customer.SavedAddress{*existing}, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*customer.SavedAddress")).Return(nil)
		repo.On("SetDefault", mock.Anything, userID, mock.AnythingOfType("uuid.UUID")).Return(nil)

		req := validAddressRequest()
		req.MakeDefault = true
		resp, err := service.Create(context.Background(), userID, req)

		require.NoError(t, err)
		assert.True(t, resp.IsDefault)
		repo.AssertCalled(t, "SetDefault", mock.Anything, userID, mock.AnythingOfType("uuid.UUID"))
	})

	t.Run("invalid pincode is rejected", func(t *testing.T) {
		repo := new(MockAddressRepository)
		service := NewAddressService(repo)

		req := validAddressRequest()
		req.Pincode = "060038"
		_, err := service.Create(context.Background(), uuid.New(), req)

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAddressService_Update(t *testing.T) {
	t.Run("cannot update another user's address", func(t *testing.T) {
		repo := new(MockAddressRepository)
		service := NewAddressService(repo)

		owner := uuid.New()
		address, err := customer.NewSavedAddress(owner, customer.AddressHome,
			"Asha Nair", "9876543210", "12 Rose Garden Road, Indiranagar",
			"Bengaluru", "Bengaluru Urban", "560038")
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, address.ID).Return(address, nil)

		_, err = service.Update(context.Background(), uuid.New(), address.ID, validAddressRequest())

		assert.Equal(t, shared.ErrNotFound, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
