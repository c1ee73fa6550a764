package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/scentline/backend/internal/domain/shared"
	"github.com/scentline/backend/internal/domain/shared/valueobject"
)

// Product is an item in the storefront product line
type Product struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"not null"`
	Description string
	UnitPrice   valueobject.Money `gorm:"type:numeric(12,2)"`
	ListPrice   *valueobject.Money `gorm:"type:numeric(12,2)"`
	ImageURL    string
	Active      bool `gorm:"not null;default:true;index"`
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a product
func NewProduct(name, description string, unitPrice valueobject.Money, listPrice *valueobject.Money, imageURL string) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		UnitPrice:         unitPrice,
		ListPrice:         listPrice,
		ImageURL:          imageURL,
		Active:            true,
	}, nil
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() {
	p.Active = false
	p.Touch()
}

// Activate returns the product to the storefront
func (p *Product) Activate() {
	p.Active = true
	p.Touch()
}

// ProductRepository defines persistence for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
