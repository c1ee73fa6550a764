package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scentline/backend/internal/domain/order"
)

// ListFilter represents admin list query options
type ListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	Page     int    `form:"page"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at total status order_number payable"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UpdateStatusRequest represents a single status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

// BulkStatusRequest represents a bulk status change over many orders
type BulkStatusRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1"`
	Status   string      `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

// BulkStatusResult reports the outcome for one order in a bulk change
type BulkStatusResult struct {
	OrderID uuid.UUID `json:"order_id"`
	OK      bool      `json:"ok"`
	Error   string    `json:"error,omitempty"`
}

// BulkStatusResponse collects per-order outcomes; a bulk change is
// never all-or-nothing.
type BulkStatusResponse struct {
	Results   []BulkStatusResult `json:"results"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
}

// ItemResponse represents an order line snapshot
type ItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// ShippingResponse represents the shipping snapshot
type ShippingResponse struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	District string `json:"district"`
	Pincode  string `json:"pincode"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID        `json:"id"`
	OrderNumber   string           `json:"order_number"`
	UserID        *uuid.UUID       `json:"user_id,omitempty"`
	Guest         bool             `json:"guest"`
	Items         []ItemResponse   `json:"items"`
	Total         decimal.Decimal  `json:"total"`
	Discount      decimal.Decimal  `json:"discount"`
	Payable       decimal.Decimal  `json:"payable"`
	PromoCode     string           `json:"promo_code,omitempty"`
	PaymentMethod string           `json:"payment_method"`
	PaymentID     string           `json:"payment_id,omitempty"`
	Status        string           `json:"status"`
	Shipping      ShippingResponse `json:"shipping"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ToOrderResponse converts an order aggregate to its API representation
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.Amount(),
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		})
	}
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		Guest:         o.IsGuest(),
		Items:         items,
		Total:         o.Total.Amount(),
		Discount:      o.Discount.Amount(),
		Payable:       o.Payable.Amount(),
		PromoCode:     o.PromoCode,
		PaymentMethod: o.PaymentMethod,
		PaymentID:     o.PaymentID,
		Status:        string(o.Status),
		Shipping: ShippingResponse{
			Name:     o.Shipping.Name,
			Email:    o.Shipping.Email,
			Phone:    o.Shipping.Phone,
			Address:  o.Shipping.Address,
			City:     o.Shipping.City,
			District: o.Shipping.District,
			Pincode:  o.Shipping.Pincode,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}
