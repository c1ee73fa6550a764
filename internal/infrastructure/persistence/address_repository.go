package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentline/backend/internal/domain/customer"
	"github.com/scentline/backend/internal/domain/shared"
)

// GormAddressRepository implements customer.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds a saved address by ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.SavedAddress, error) {
	var a customer.SavedAddress
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByUserID lists a user's saved addresses, default first
func (r *GormAddressRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]customer.SavedAddress, error) {
	var addresses []customer.SavedAddress
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC").
		Order("created_at ASC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// FindDefault finds a user's default address
func (r *GormAddressRepository) FindDefault(ctx context.Context, userID uuid.UUID) (*customer.SavedAddress, error) {
	var a customer.SavedAddress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Save creates or updates a saved address
func (r *GormAddressRepository) Save(ctx context.Context, a *customer.SavedAddress) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete removes a saved address owned by the user
func (r *GormAddressRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&customer.SavedAddress{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetDefault marks one of the user's addresses as default, clearing
// any previous default in the same transaction.
func (r *GormAddressRepository) SetDefault(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&customer.SavedAddress{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}

		result := tx.Model(&customer.SavedAddress{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormAddressRepository implements customer.AddressRepository
var _ customer.AddressRepository = (*GormAddressRepository)(nil)
