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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	checkoutapp "github.com/scentline/backend/internal/application/checkout"
	"github.com/scentline/backend/internal/application/identity"
	"github.com/scentline/backend/internal/domain/cart"
	"github.com/scentline/backend/internal/domain/checkout"
	"github.com/scentline/backend/internal/domain/customer"
	"github.com/scentline/backend/internal/domain/shared"
	"github.com/scentline/backend/internal/infrastructure/auth"
	"github.com/scentline/backend/internal/infrastructure/config"
	"github.com/scentline/backend/internal/infrastructure/keyvalue"
	"github.com/scentline/backend/internal/infrastructure/payment"
	"github.com/scentline/backend/internal/interfaces/http/dto"
	"github.com/scentline/backend/internal/interfaces/http/middleware"
)

// MockUserRepository implements customer.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*customer.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *customer.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type checkoutFixture struct {
	router   *gin.Engine
	cartRepo *MockCartRepository
	userRepo *MockUserRepository
	drafts   *keyvalue.MemoryStore
	userID   uuid.UUID
}

func setupCheckoutRouter(t *testing.T) *checkoutFixture {
	t.Helper()

	cartRepo := new(MockCartRepository)
	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	drafts := keyvalue.NewMemoryStore()

	checkoutService := checkoutapp.NewService(
		cartRepo,
		orderRepo,
		drafts,
		payment.NewStubGateway(),
		checkout.DefaultPromotions(),
		checkout.DraftTTL,
		zap.NewNop(),
	)
	authService := identity.NewAuthService(
		userRepo,
		auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-at-least-32-characters!",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 24 * time.Hour,
			Issuer:                 "test",
		}),
		auth.NewInMemoryTokenBlacklist(),
		zap.NewNop(),
	)

	h := NewCheckoutHandler(checkoutService, authService)

	userID := uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
	})
	h.RegisterRoutes(router.Group(""))

	return &checkoutFixture{
		router:   router,
		cartRepo: cartRepo,
		userRepo: userRepo,
		drafts:   drafts,
		userID:   userID,
	}
}

func validShippingForm() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Ayesha Khan",
		"email":    "ayesha@example.com",
		"phone":    "9876543210",
		"address":  "14 Hill Road, Bandra West",
		"city":     "Mumbai",
		"district": "Mumbai Suburban",
		"pincode":  "400050",
	}
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutHandlerNextAdvancesFromValidShipping(t *testing.T) {
	f := setupCheckoutRouter(t)

	w := postJSON(f.router, "/checkout/next", map[string]interface{}{
		"step": 0,
		"form": validShippingForm(),
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["step"])
	assert.Equal(t, "payment", data["step_name"])
	assert.Nil(t, data["errors"])
}

func TestCheckoutHandlerNextBlocksOnBadMobile(t *testing.T) {
	f := setupCheckoutRouter(t)

	form := validShippingForm()
	form["phone"] = "1234567890" // must start with 6-9

	w := postJSON(f.router, "/checkout/next", map[string]interface{}{
		"step": 0,
		"form": form,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(0), data["step"], "step must not advance")

	errs, ok := data["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "phone")
}

func TestCheckoutHandlerBackFromPayment(t *testing.T) {
	f := setupCheckoutRouter(t)

	w := postJSON(f.router, "/checkout/back", map[string]interface{}{
		"step": 1,
		"form": validShippingForm(),
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(0), data["step"])

	// Entered data survives the move back
	form, ok := data["form"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ayesha Khan", form["name"])
}

func TestCheckoutHandlerDraftRoundTrip(t *testing.T) {
	f := setupCheckoutRouter(t)

	user, err := customer.NewUser("ayesha@example.com", "Ayesha Khan", "hash")
	require.NoError(t, err)
	f.userRepo.On("FindByID", mock.Anything, f.userID).Return(user, nil)

	// Save a draft with a filled shipping form on the payment step
	body, _ := json.Marshal(map[string]interface{}{
		"step": 1,
		"form": validShippingForm(),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/checkout/draft", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Restore into a fresh state
	w = postJSON(f.router, "/checkout/draft/restore", map[string]interface{}{
		"step": 0,
		"form": map[string]interface{}{},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	form, ok := data["form"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Ayesha Khan", form["name"])
	assert.Equal(t, "400050", form["pincode"])
}

func TestCheckoutHandlerRestoreIgnoresOtherRecipientsDraft(t *testing.T) {
	f := setupCheckoutRouter(t)

	// Profile name differs from the one on the saved draft
	user, err := customer.NewUser("sana@example.com", "Sana Sheikh", "hash")
	require.NoError(t, err)
	f.userRepo.On("FindByID", mock.Anything, f.userID).Return(user, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"step": 1,
		"form": validShippingForm(),
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/checkout/draft", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = postJSON(f.router, "/checkout/draft/restore", map[string]interface{}{
		"step": 0,
		"form": map[string]interface{}{},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err = json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	form, ok := data["form"].(map[string]interface{})
	require.True(t, ok)
	assert.Empty(t, form["name"], "another recipient's draft must not merge")
}

func TestCheckoutHandlerRestoreDiscardsCorruptedDraft(t *testing.T) {
	f := setupCheckoutRouter(t)

	user, err := customer.NewUser("ayesha@example.com", "Ayesha Khan", "hash")
	require.NoError(t, err)
	f.userRepo.On("FindByID", mock.Anything, f.userID).Return(user, nil)

	key := "checkout:draft:" + f.userID.String()
	require.NoError(t, f.drafts.Set(context.Background(), key, "{not json", time.Hour))

	w := postJSON(f.router, "/checkout/draft/restore", map[string]interface{}{
		"step": 0,
		"form": map[string]interface{}{},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	// The unreadable draft is dropped from the store
	_, err = f.drafts.Get(context.Background(), key)
	assert.ErrorIs(t, err, checkout.ErrKeyNotFound)
}

func TestCheckoutHandlerQuoteAppliesCappedPromo(t *testing.T) {
	f := setupCheckoutRouter(t)

	p := newTestProduct(t, "Noor")
	c := cart.NewCart(f.userID)
	require.NoError(t, c.AddItem(cart.Item{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.UnitPrice, // 1499.00
		Quantity:  3,           // subtotal 4497.00, 20% = 899.40, capped at 500
	}))
	f.cartRepo.On("FindByUserID", mock.Anything, f.userID).Return(c, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/checkout/quote?promo_code=WELCOME20", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "500", data["discount"])
	assert.Equal(t, "3997", data["payable"])
}

func TestCheckoutHandlerQuoteRejectsUnknownPromo(t *testing.T) {
	f := setupCheckoutRouter(t)

	c := cart.NewCart(f.userID)
	f.cartRepo.On("FindByUserID", mock.Anything, f.userID).Return(c, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/checkout/quote?promo_code=DIWALI50", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, dto.ErrCodeInvalidPromoCode, resp.Error.Code)
}

func TestCheckoutHandlerStartPaymentEmptyCart(t *testing.T) {
	f := setupCheckoutRouter(t)

	f.cartRepo.On("FindByUserID", mock.Anything, f.userID).Return(nil, shared.ErrNotFound)

	w := postJSON(f.router, "/checkout/payment", map[string]interface{}{
		"form":           validShippingForm(),
		"payment_method": "card",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, dto.ErrCodeCartEmpty, resp.Error.Code)
}
