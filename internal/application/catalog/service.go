package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/scentline/backend/internal/domain/catalog"
	"github.com/scentline/backend/internal/domain/shared"
	"github.com/scentline/backend/internal/domain/shared/valueobject"
)

// ProductService handles storefront and admin product operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// GetByID retrieves a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(p)
	return &response, nil
}

// ListActive lists the storefront product line
func (s *ProductService) ListActive(ctx context.Context, filter ProductListFilter) ([]ProductResponse, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: shared.DefaultPageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}
	domainFilter.Normalize()

	products, err := s.productRepo.FindActive(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	unitPrice := valueobject.NewMoneyINR(req.UnitPrice)

	var listPrice *valueobject.Money
	if req.ListPrice != nil {
		lp := valueobject.NewMoneyINR(*req.ListPrice)
		listPrice = &lp
	}

	p, err := catalog.NewProduct(req.Name, req.Description, unitPrice, listPrice, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToProductResponse(p)
	return &response, nil
}

// SetActive toggles a product's storefront visibility
func (s *ProductService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if active {
		p.Activate()
	} else {
		p.Deactivate()
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToProductResponse(p)
	return &response, nil
}

// ReviewService handles review submission and moderation
type ReviewService struct {
	reviewRepo catalog.ReviewRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo catalog.ReviewRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo}
}

// Submit files a review. New reviews await moderation and are not
// publicly visible until approved.
func (s *ReviewService) Submit(ctx context.Context, userID *uuid.UUID, req SubmitReviewRequest) (*ReviewResponse, error) {
	r, err := catalog.NewReview(req.AuthorName, userID, req.Rating, req.Body)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// ListApproved lists publicly visible reviews
func (s *ReviewService) ListApproved(ctx context.Context, page int) (*shared.Paginated[ReviewResponse], error) {
	filter := shared.Filter{
		Page:     page,
		PageSize: shared.DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
	filter.Normalize()

	total, err := s.reviewRepo.CountApproved(ctx)
	if err != nil {
		return nil, err
	}
	filter.ClampPage(total)

	reviews, err := s.reviewRepo.FindApproved(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToReviewResponses(reviews), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListForModeration lists reviews for the admin dashboard, pending
// ones included.
func (s *ReviewService) ListForModeration(ctx context.Context, filter ReviewListFilter) (*shared.Paginated[ReviewResponse], error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: shared.DefaultPageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Approved != nil {
		domainFilter.Filters["approved"] = *filter.Approved
	}
	if filter.Rating != nil {
		domainFilter.Filters["rating"] = *filter.Rating
	}
	domainFilter.Normalize()

	total, err := s.reviewRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	domainFilter.ClampPage(total)

	reviews, err := s.reviewRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToReviewResponses(reviews), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Approve makes a review publicly visible
func (s *ReviewService) Approve(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.Approve()

	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// Delete removes a review
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.reviewRepo.Delete(ctx, id)
}
