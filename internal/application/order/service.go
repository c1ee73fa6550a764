package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/scentline/backend/internal/domain/order"
	"github.com/scentline/backend/internal/domain/shared"
)

// Service handles order queries and fulfillment status changes
type Service struct {
	orderRepo order.Repository
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository) *Service {
	return &Service{orderRepo: orderRepo}
}

// GetByID retrieves an order by ID
func (s *Service) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its order number
func (s *Service) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// List retrieves orders for the admin dashboard. Pages are fixed at
// ten rows; out-of-range pages clamp to the last non-empty page.
func (s *Service) List(ctx context.Context, filter ListFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: shared.DefaultPageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	domainFilter.Normalize()

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	domainFilter.ClampPage(total)

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderResponses(orders), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// ListByUser retrieves a customer's own order history
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, page int) (*shared.Paginated[OrderResponse], error) {
	filter := shared.Filter{
		Page:     page,
		PageSize: shared.DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
	filter.Normalize()

	total, err := s.orderRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	filter.ClampPage(total)

	orders, err := s.orderRepo.FindByUserID(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderResponses(orders), total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetOwn retrieves an order only if it belongs to the user
func (s *Service) GetOwn(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID == nil || *o.UserID != userID {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// UpdateStatus moves one order along the fulfillment state machine
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.UpdateStatus(order.Status(status)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// BulkUpdateStatus attempts the status change on every order and
// collects per-order outcomes. One failed order never rolls back the
// others.
func (s *Service) BulkUpdateStatus(ctx context.Context, req BulkStatusRequest) *BulkStatusResponse {
	response := &BulkStatusResponse{
		Results: make([]BulkStatusResult, 0, len(req.OrderIDs)),
	}

	for _, orderID := range req.OrderIDs {
		result := BulkStatusResult{OrderID: orderID, OK: true}
		if _, err := s.UpdateStatus(ctx, orderID, req.Status); err != nil {
			result.OK = false
			result.Error = err.Error()
		}
		if result.OK {
			response.Succeeded++
		} else {
			response.Failed++
		}
		response.Results = append(response.Results, result)
	}

	return response
}
