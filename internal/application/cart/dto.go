package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scentline/backend/internal/domain/cart"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// SetQuantityRequest represents a request to change a line's quantity.
// Zero removes the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// ItemResponse represents a cart line in API responses
type ItemResponse struct {
	ProductID uuid.UUID        `json:"product_id"`
	Name      string           `json:"name"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	ListPrice *decimal.Decimal `json:"list_price,omitempty"`
	Quantity  int              `json:"quantity"`
	LineTotal decimal.Decimal  `json:"line_total"`
	ImageURL  string           `json:"image_url,omitempty"`
}

// CartResponse represents the cart in API responses
type CartResponse struct {
	Items    []ItemResponse  `json:"items"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ToCartResponse converts a cart aggregate to its API representation
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]ItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		resp := ItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.Amount(),
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal().Amount(),
			ImageURL:  item.ImageURL,
		}
		if item.ListPrice != nil {
			amount := item.ListPrice.Amount()
			resp.ListPrice = &amount
		}
		items = append(items, resp)
	}
	return CartResponse{
		Items:    items,
		Count:    c.Count(),
		Subtotal: c.Subtotal().Amount(),
	}
}
