package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	orderapp "github.com/scentline/backend/internal/application/order"
	"github.com/scentline/backend/internal/domain/order"
	"github.com/scentline/backend/internal/domain/shared"
	"github.com/scentline/backend/internal/domain/shared/valueobject"
	"github.com/scentline/backend/internal/interfaces/http/dto"
	"github.com/scentline/backend/internal/interfaces/http/middleware"
)

// MockOrderRepository implements order.Repository for testing
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
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
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
	price := valueobject.NewMoneyINR(decimal.NewFromInt(1499))
	items := []order.Item{{
		ProductID: uuid.New(),
		Name:      "Noor",
		UnitPrice: price,
		Quantity:  1,
	}}
	o, err := order.NewOrder(
		order.NewOrderNumber(time.Now()),
		userID,
		items,
		price,
		valueobject.ZeroINR(),
		price,
		"",
		"card",
		"pay_test123",
		order.ShippingDetails{
			Name:    "Ayesha Khan",
			Email:   "ayesha@example.com",
			Phone:   "9876543210",
			Address: "14 Hill Road, Bandra West",
			City:    "Mumbai",
			Pincode: "400050",
		},
	)
	require.NoError(t, err)
	return o
}

func setupOrderRouter(repo *MockOrderRepository, userID *uuid.UUID) *gin.Engine {
	h := NewOrderHandler(orderapp.NewService(repo))
	router := gin.New()
	if userID != nil {
		id := userID.String()
		router.Use(func(c *gin.Context) {
			c.Set(middleware.JWTUserIDKey, id)
		})
	}
	api := router.Group("")
	h.RegisterRoutes(api)
	h.RegisterAdminRoutes(api.Group("/admin"))
	return router
}

func TestOrderHandlerListOwnRequiresAuth(t *testing.T) {
	router := setupOrderRouter(new(MockOrderRepository), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/orders", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderHandlerListOwn(t *testing.T) {
	userID := uuid.New()
	repo := new(MockOrderRepository)
	router := setupOrderRouter(repo, &userID)

	orders := []order.Order{*newTestOrder(t, &userID)}
	repo.On("CountByUserID", mock.Anything, userID).Return(int64(1), nil)
	repo.On("FindByUserID", mock.Anything, userID, mock.Anything).Return(orders, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/orders", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestOrderHandlerGetOwnHidesOthersOrders(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()
	repo := new(MockOrderRepository)
	router := setupOrderRouter(repo, &userID)

	o := newTestOrder(t, &otherID)
	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/orders/"+o.ID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandlerAdminList(t *testing.T) {
	repo := new(MockOrderRepository)
	router := setupOrderRouter(repo, nil)

	orders := []order.Order{*newTestOrder(t, nil)}
	repo.On("Count", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["status"] == "pending" && f.Search == "Noor"
	})).Return(int64(1), nil)
	repo.On("FindAll", mock.Anything, mock.Anything).Return(orders, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/orders?status=pending&search=Noor", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestOrderHandlerAdminListRejectsUnknownStatus(t *testing.T) {
	repo := new(MockOrderRepository)
	router := setupOrderRouter(repo, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/orders?status=misplaced", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Count")
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	repo := new(MockOrderRepository)
	router := setupOrderRouter(repo, nil)

	o := newTestOrder(t, nil)
	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	repo.On("Save", mock.Anything, o).Return(nil)

	body, _ := json.Marshal(map[string]string{"status": "processing"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/admin/orders/"+o.ID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, order.StatusProcessing, o.Status)
}

func TestOrderHandlerUpdateStatusInvalidTransition(t *testing.T) {
	repo := new(MockOrderRepository)
	router := setupOrderRouter(repo, nil)

	// Pending orders cannot jump straight to delivered
	o := newTestOrder(t, nil)
	repo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	body, _ := json.Marshal(map[string]string{"status": "delivered"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/admin/orders/"+o.ID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, order.StatusPending, o.Status)
	repo.AssertNotCalled(t, "Save")
}

func TestOrderHandlerBulkUpdateStatusPartialFailure(t *testing.T) {
	repo := new(MockOrderRepository)
	router := setupOrderRouter(repo, nil)

	ok := newTestOrder(t, nil)
	stuck := newTestOrder(t, nil)
	require.NoError(t, stuck.UpdateStatus(order.StatusProcessing))
	require.NoError(t, stuck.UpdateStatus(order.StatusShipped))

	repo.On("FindByID", mock.Anything, ok.ID).Return(ok, nil)
	repo.On("FindByID", mock.Anything, stuck.ID).Return(stuck, nil)
	repo.On("Save", mock.Anything, ok).Return(nil)

	body, _ := json.Marshal(map[string]interface{}{
		"order_ids": []string{ok.ID.String(), stuck.ID.String()},
		"status":    "cancelled",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/admin/orders/bulk-status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data, okCast := resp.Data.(map[string]interface{})
	require.True(t, okCast)
	assert.Equal(t, float64(1), data["succeeded"])
	assert.Equal(t, float64(1), data["failed"])

	assert.Equal(t, order.StatusCancelled, ok.Status)
	assert.Equal(t, order.StatusShipped, stuck.Status)
}
