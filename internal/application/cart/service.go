package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/scentline/backend/internal/domain/cart"
	"github.com/scentline/backend/internal/domain/catalog"
	"github.com/scentline/backend/internal/domain/shared"
)

// Service handles cart business operations
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
}

// NewService creates a new cart Service
func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get retrieves the user's cart. A user without a cart gets an empty one.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(c)
	return &response, nil
}

// AddItem adds a product to the cart. Adding a product already in the
// cart merges quantities instead of creating a second line.
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available")
	}

	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.AddItem(cart.Item{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.UnitPrice,
		ListPrice: product.ListPrice,
		Quantity:  req.Quantity,
		ImageURL:  product.ImageURL,
	}); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// SetQuantity changes a line's quantity. Zero removes the line.
func (s *Service) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartResponse, error) {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.SetQuantity(productID, quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// RemoveItem removes a line from the cart. Removing an absent line
// succeeds without changes.
func (s *Service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveItem(productID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// Clear empties the user's cart
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.DeleteByUserID(ctx, userID)
}

func (s *Service) loadOrCreate(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return cart.NewCart(userID), nil
		}
		return nil, err
	}
	return c, nil
}
