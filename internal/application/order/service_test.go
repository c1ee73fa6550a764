package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/scentline/backend/internal/domain/order"
	"github.com/scentline/backend/internal/domain/shared"
	"github.com/scentline/backend/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestOrder(t *testing.T, userID *uuid.UUID) *order.Order {
	t.Helper()
	price, err := valueobject.NewMoneyINRFromString("2499")
	require.NoError(t, err)
	items := []order.Item{{
		ProductID: uuid.New(),
		Name:      "Oud Noir 50ml",
		UnitPrice: price,
		Quantity:  1,
	}}
	shipping := order.ShippingDetails{
		Name: "Asha Nair", Email: "asha@example.com", Phone: "9876543210",
		Address: "12 Rose Garden Road, Indiranagar", City: "Bengaluru",
		District: "Bengaluru Urban", Pincode: "560038",
	}
	o, err := order.NewOrder(order.NewOrderNumber(time.Now()), userID, items,
		price, valueobject.ZeroINR(), price, "", "razorpay", "pay_123", shipping)
	require.NoError(t, err)
	return o
}

func TestService_List(t *testing.T) {
	t.Run("forces page size ten and clamps out-of-range pages", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)

		repo.On("Count", mock.Anything, mock.Anything).Return(int64(23), nil)
		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 3 && f.PageSize == 10
		})).Return([]order.Order{*newTestOrder(t, nil)}, nil)

		result, err := service.List(context.Background(), ListFilter{Page: 99})

		require.NoError(t, err)
		assert.Equal(t, 3, result.Page)
		assert.Equal(t, 10, result.PageSize)
		assert.Equal(t, int64(23), result.Total)
		assert.Equal(t, 3, result.TotalPages)
	})

	t.Run("empty result set stays on page one", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)

		repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1
		})).Return([]order.Order{}, nil)

		result, err := service.List(context.Background(), ListFilter{Page: 5})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Empty(t, result.Items)
	})

	t.Run("passes search and status filter through", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)

		matcher := mock.MatchedBy(func(f shared.Filter) bool {
			return f.Search == "oud" && f.Filters["status"] == "pending"
		})
		repo.On("Count", mock.Anything, matcher).Return(int64(1), nil)
		repo.On("FindAll", mock.Anything, matcher).Return([]order.Order{*newTestOrder(t, nil)}, nil)

		_, err := service.List(context.Background(), ListFilter{Search: "oud", Status: "pending"})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("allows pending to processing", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)

		o := newTestOrder(t, nil)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		repo.On("Save", mock.Anything, o).Return(nil)

		resp, err := service.UpdateStatus(context.Background(), o.ID, "processing")

		require.NoError(t, err)
		assert.Equal(t, "processing", resp.Status)
	})

	t.Run("rejects pending to delivered", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)

		o := newTestOrder(t, nil)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		resp, err := service.UpdateStatus(context.Background(), o.ID, "delivered")

		assert.Error(t, err)
		assert.Nil(t, resp)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_BulkUpdateStatus(t *testing.T) {
	t.Run("collects per-order outcomes instead of failing the batch", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)

		good := newTestOrder(t, nil)
		missing := uuid.New()

		repo.On("FindByID", mock.Anything, good.ID).Return(good, nil)
		repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, good).Return(nil)

		resp := service.BulkUpdateStatus(context.Background(), BulkStatusRequest{
			OrderIDs: []uuid.UUID{good.ID, missing},
			Status:   "processing",
		})

		assert.Equal(t, 1, resp.Succeeded)
		assert.Equal(t, 1, resp.Failed)
		require.Len(t, resp.Results, 2)
		assert.True(t, resp.Results[0].OK)
		assert.False(t, resp.Results[1].OK)
		assert.NotEmpty(t, resp.Results[1].Error)
	})
}

func TestService_GetOwn(t *testing.T) {
	t.Run("hides other users' orders", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)

		owner := uuid.New()
		o := newTestOrder(t, &owner)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		resp, err := service.GetOwn(context.Background(), uuid.New(), o.ID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.Nil(t, resp)
	})

	t.Run("returns the owner's order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		service := NewService(repo)

		owner := uuid.New()
		o := newTestOrder(t, &owner)
		repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		resp, err := service.GetOwn(context.Background(), owner, o.ID)

		require.NoError(t, err)
		assert.Equal(t, o.OrderNumber, resp.OrderNumber)
	})
}
