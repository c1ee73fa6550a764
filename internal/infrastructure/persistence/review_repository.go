package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentline/backend/internal/domain/catalog"
	"github.com/scentline/backend/internal/domain/shared"
)

// GormReviewRepository implements catalog.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Review, error) {
	var rv catalog.Review
	if err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// FindApproved lists reviews visible on the storefront
func (r *GormReviewRepository) FindApproved(ctx context.Context, filter shared.Filter) ([]catalog.Review, error) {
	var reviews []catalog.Review
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Review{}).Where("approved = ?", true),
		filter,
	)
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindAll lists reviews for moderation, pending ones included
func (r *GormReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Review, error) {
	var reviews []catalog.Review
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Review{}),
		filter,
	)
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, rv *catalog.Review) error {
	return r.db.WithContext(ctx).Save(rv).Error
}

// Delete removes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts reviews matching the filter
func (r *GormReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&catalog.Review{}),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountApproved counts approved reviews
func (r *GormReviewRepository) CountApproved(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Review{}).
		Where("approved = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter adds search, filters, pagination and ordering
func (r *GormReviewRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ReviewSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	// Secondary id sort keeps ties stable across pages
	return query.Order(orderBy + " " + orderDir).Order("id ASC")
}

func (r *GormReviewRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where(
			"author_name ILIKE ? OR body ILIKE ? OR CAST(rating AS TEXT) = ?",
			searchPattern, searchPattern, filter.Search,
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "approved":
			query = query.Where("approved = ?", value)
		case "rating":
			query = query.Where("rating = ?", value)
		}
	}

	return query
}

// Ensure GormReviewRepository implements catalog.ReviewRepository
var _ catalog.ReviewRepository = (*GormReviewRepository)(nil)
