package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scentline/backend/internal/domain/catalog"
)

// ProductListFilter represents storefront product query options
type ProductListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=name unit_price created_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateProductRequest represents an admin request to add a product
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description"`
	UnitPrice   decimal.Decimal  `json:"unit_price" binding:"required"`
	ListPrice   *decimal.Decimal `json:"list_price"`
	ImageURL    string           `json:"image_url"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	ListPrice   *decimal.Decimal `json:"list_price,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ToProductResponse converts a product to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.UnitPrice.Amount(),
		ImageURL:    p.ImageURL,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
	if p.ListPrice != nil {
		amount := p.ListPrice.Amount()
		resp.ListPrice = &amount
	}
	return resp
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}

// SubmitReviewRequest represents a customer review submission
type SubmitReviewRequest struct {
	AuthorName string `json:"author_name" binding:"required,min=2,max=100"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Body       string `json:"body" binding:"required,min=1,max=2000"`
}

// ReviewListFilter represents moderation query options
type ReviewListFilter struct {
	Search   string `form:"search"`
	Approved *bool  `form:"approved"`
	Rating   *int   `form:"rating" binding:"omitempty,min=1,max=5"`
	Page     int    `form:"page"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at rating author_name"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Body       string    `json:"body"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToReviewResponse converts a review to its API representation
func ToReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		AuthorName: r.AuthorName,
		Rating:     r.Rating,
		Body:       r.Body,
		Approved:   r.Approved,
		CreatedAt:  r.CreatedAt,
	}
}

// ToReviewResponses converts a slice of reviews
func ToReviewResponses(reviews []catalog.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, ToReviewResponse(&reviews[i]))
	}
	return responses
}
