package cart

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/scentline/backend/internal/domain/shared"
	"github.com/scentline/backend/internal/domain/shared/valueobject"
)

// Item is a line item in a cart. The product id is unique within a cart.
type Item struct {
	ProductID uuid.UUID         `json:"product_id"`
	Name      string            `json:"name"`
	UnitPrice valueobject.Money `json:"unit_price"`
	ListPrice *valueobject.Money `json:"list_price,omitempty"`
	Quantity  int               `json:"quantity"`
	ImageURL  string            `json:"image_url"`
}

// LineTotal returns unit price times quantity
func (i Item) LineTotal() valueobject.Money {
	return i.UnitPrice.MultiplyByInt(int64(i.Quantity))
}

// Cart is an ordered list of line items owned by a user
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []Item    `gorm:"serializer:json"`
}

// TableName returns the database table name
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]Item, 0),
	}
}

// AddItem adds a product to the cart. If the product is already present
// the quantities are merged and the stored price and name refreshed.
func (c *Cart) AddItem(item Item) error {
	if item.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if item.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	for idx := range c.Items {
		if c.Items[idx].ProductID == item.ProductID {
			c.Items[idx].Quantity += item.Quantity
			c.Items[idx].Name = item.Name
			c.Items[idx].UnitPrice = item.UnitPrice
			c.Items[idx].ListPrice = item.ListPrice
			c.Items[idx].ImageURL = item.ImageURL
			c.Touch()
			return nil
		}
	}
	c.Items = append(c.Items, item)
	c.Touch()
	return nil
}

// SetQuantity replaces the quantity for a product. A quantity of zero
// or less removes the line.
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return c.RemoveItem(productID)
	}
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items[idx].Quantity = qty
			c.Touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveItem deletes a line from the cart. Removing a product that is
// not present is not an error.
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.Touch()
			return nil
		}
	}
	return nil
}

// Subtotal returns the sum of line totals
func (c *Cart) Subtotal() valueobject.Money {
	total := valueobject.ZeroINR()
	for _, item := range c.Items {
		total = total.MustAdd(item.LineTotal())
	}
	return total
}

// Count returns the sum of item quantities
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clear removes all items
func (c *Cart) Clear() {
	c.Items = make([]Item, 0)
	c.UpdatedAt = time.Now()
}

// Repository defines persistence for carts
type Repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
