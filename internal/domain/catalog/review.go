package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/scentline/backend/internal/domain/shared"
)

// Review is a customer review. Once created it belongs to the
// moderation workflow; the submitter cannot change it.
type Review struct {
	shared.BaseAggregateRoot
	AuthorName string     `gorm:"not null"`
	UserID     *uuid.UUID `gorm:"type:uuid;index"` // nil for guest reviews
	Rating     int        `gorm:"not null"`
	Body       string     `gorm:"not null"`
	Approved   bool       `gorm:"not null;default:false;index"`
}

// TableName returns the database table name
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a pending (unapproved) review
func NewReview(authorName string, userID *uuid.UUID, rating int, body string) (*Review, error) {
	if authorName == "" {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Reviewer name cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	if body == "" {
		return nil, shared.NewDomainError("INVALID_REVIEW", "Review body cannot be empty")
	}
	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AuthorName:        authorName,
		UserID:            userID,
		Rating:            rating,
		Body:              body,
		Approved:          false,
	}, nil
}

// Approve marks the review as publicly visible
func (r *Review) Approve() {
	r.Approved = true
	r.Touch()
}

// ReviewRepository defines persistence for reviews
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	FindApproved(ctx context.Context, filter shared.Filter) ([]Review, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Review, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountApproved(ctx context.Context) (int64, error)
}
