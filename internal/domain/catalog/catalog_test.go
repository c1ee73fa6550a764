package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentline/backend/internal/domain/shared/valueobject"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates active product", func(t *testing.T) {
		list := valueobject.NewMoneyINRFromFloat(1599)
		p, err := NewProduct("Oudh Intense 50ml", "Deep woody oudh", valueobject.NewMoneyINRFromFloat(1299), &list, "https://cdn.example.com/oudh.jpg")
		require.NoError(t, err)
		assert.True(t, p.Active)
		assert.Equal(t, "1599.00", p.ListPrice.StringFixed(2))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("", "", valueobject.ZeroINR(), nil, "")
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("x", "", valueobject.NewMoneyINRFromFloat(-1), nil, "")
		assert.Error(t, err)
	})
}

func TestProductActivation(t *testing.T) {
	p, err := NewProduct("Rose Attar 10ml", "", valueobject.NewMoneyINRFromFloat(499), nil, "")
	require.NoError(t, err)

	p.Deactivate()
	assert.False(t, p.Active)

	p.Activate()
	assert.True(t, p.Active)
}

func TestNewReview(t *testing.T) {
	t.Run("starts unapproved", func(t *testing.T) {
		userID := uuid.New()
		r, err := NewReview("Asha Rao", &userID, 5, "Lasts all day, beautiful sillage.")
		require.NoError(t, err)
		assert.False(t, r.Approved)
	})

	t.Run("guest review has nil user", func(t *testing.T) {
		r, err := NewReview("Guest", nil, 4, "Good value.")
		require.NoError(t, err)
		assert.Nil(t, r.UserID)
	})

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		_, err := NewReview("Asha", nil, 0, "x")
		assert.Error(t, err)
		_, err = NewReview("Asha", nil, 6, "x")
		assert.Error(t, err)
	})

	t.Run("rejects empty body", func(t *testing.T) {
		_, err := NewReview("Asha", nil, 3, "")
		assert.Error(t, err)
	})
}

func TestReviewApprove(t *testing.T) {
	r, err := NewReview("Asha Rao", nil, 5, "Lovely.")
	require.NoError(t, err)

	r.Approve()
	assert.True(t, r.Approved)
}
