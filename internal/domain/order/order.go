package order

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/scentline/backend/internal/domain/shared"
	"github.com/scentline/backend/internal/domain/shared/valueobject"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is a known fulfillment status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// Item is an immutable snapshot of a cart line at placement time
type Item struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"not null"`
	UnitPrice valueobject.Money `gorm:"type:numeric(12,2)"`
	Quantity  int               `gorm:"not null"`
	ImageURL  string
	CreatedAt time.Time
}

// TableName returns the database table name
func (Item) TableName() string {
	return "order_items"
}

// LineTotal returns unit price times quantity
func (i Item) LineTotal() valueobject.Money {
	return i.UnitPrice.MultiplyByInt(int64(i.Quantity))
}

// ShippingDetails is the shipping form snapshot captured on placement
type ShippingDetails struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	District string `json:"district"`
	Pincode  string `json:"pincode"`
}

// Order is a placed order. Item and shipping snapshots never change
// after placement; only the fulfillment status moves.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber   string     `gorm:"uniqueIndex;not null"`
	UserID        *uuid.UUID `gorm:"type:uuid;index"` // nil for guest orders
	Items         []Item     `gorm:"foreignKey:OrderID"`
	Total         valueobject.Money `gorm:"type:numeric(12,2)"`
	Discount      valueobject.Money `gorm:"type:numeric(12,2)"`
	Payable       valueobject.Money `gorm:"type:numeric(12,2)"`
	PromoCode     string
	PaymentMethod string `gorm:"not null"`
	PaymentID     string // gateway payment confirmation token
	Status        Status `gorm:"not null;default:pending;index"`
	Shipping      ShippingDetails `gorm:"serializer:json"`
}

// TableName returns the database table name
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a placed order from checkout snapshots
func NewOrder(orderNumber string, userID *uuid.UUID, items []Item, total, discount, payable valueobject.Money, promoCode, paymentMethod, paymentID string, shipping ShippingDetails) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.ErrCartEmpty
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method cannot be empty")
	}
	if payable.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payable amount cannot be negative")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		UserID:            userID,
		Total:             total,
		Discount:          discount,
		Payable:           payable,
		PromoCode:         promoCode,
		PaymentMethod:     paymentMethod,
		PaymentID:         paymentID,
		Status:            StatusPending,
	}
	o.Shipping = shipping
	now := time.Now()
	for _, item := range items {
		item.ID = uuid.New()
		item.OrderID = o.ID
		item.CreatedAt = now
		o.Items = append(o.Items, item)
	}
	return o, nil
}

// UpdateStatus moves the order to a new fulfillment status
func (o *Order) UpdateStatus(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status: %s", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}
	o.Status = target
	o.Touch()
	return nil
}

// IsGuest reports whether the order was placed without an account
func (o *Order) IsGuest() bool {
	return o.UserID == nil
}

// NewOrderNumber generates a time-based order number with a random
// suffix to avoid collisions within the same second.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("SL%s%04d", now.Format("20060102150405"), rand.Intn(10000))
}

// Repository defines persistence for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
