package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/scentline/backend/internal/domain/order"
	"github.com/scentline/backend/internal/domain/shared"
	"github.com/scentline/backend/internal/domain/shared/valueobject"
)

func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("finds order with its items", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		itemID := uuid.New()

		orderRows := sqlmock.NewRows([]string{"id", "order_number", "status", "payment_method", "payable"}).
			AddRow(orderID, "SL202608290001", "pending", "razorpay", "2499.00")

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows)

		itemRows := sqlmock.NewRows([]string{"id", "order_id", "product_id", "name", "unit_price", "quantity"}).
			AddRow(itemID, orderID, uuid.New(), "Oud Noir 50ml", "2499.00", 1)

		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(itemRows)

		o, err := repo.FindByID(context.Background(), orderID)

		assert.NoError(t, err)
		assert.NotNil(t, o)
		assert.Equal(t, "SL202608290001", o.OrderNumber)
		assert.Len(t, o.Items, 1)
		assert.Equal(t, "Oud Noir 50ml", o.Items[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		o, err := repo.FindByID(context.Background(), orderID)

		assert.Error(t, err)
		assert.Nil(t, o)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_Count(t *testing.T) {
	t.Run("counts with status filter", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE status = \$1`).
			WithArgs("pending").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.Count(context.Background(), shared.Filter{
			Filters: map[string]any{"status": "pending"},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counts with search across order number and item names", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE order_number ILIKE \$1 OR EXISTS`).
			WithArgs("%oud%", "%oud%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.Count(context.Background(), shared.Filter{Search: "oud"})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_FindAll(t *testing.T) {
	t.Run("applies pagination and default ordering", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		orderRows := sqlmock.NewRows([]string{"id", "order_number", "status", "payment_method"}).
			AddRow(orderID, "SL202608290001", "pending", "razorpay")

		mock.ExpectQuery(`SELECT \* FROM "orders" ORDER BY created_at DESC,id ASC LIMIT .*`).
			WillReturnRows(orderRows)

		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "name"}))

		orders, err := repo.FindAll(context.Background(), shared.Filter{Page: 1, PageSize: 10})

		assert.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ignores sort fields outside the whitelist", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "orders" ORDER BY created_at ASC,id ASC LIMIT .*`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_number"}))

		_, err := repo.FindAll(context.Background(), shared.Filter{
			Page:     1,
			PageSize: 10,
			OrderBy:  "payment_id; DROP TABLE orders",
			OrderDir: "asc",
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderSortFields(t *testing.T) {
	t.Run("accepts whitelisted fields", func(t *testing.T) {
		for _, field := range []string{"order_number", "status", "total", "payable", "created_at"} {
			assert.Equal(t, field, ValidateSortField(field, OrderSortFields, "created_at"))
		}
	})
}

func TestGormOrderRepository_Save(t *testing.T) {
	t.Run("persists order and item snapshots in one transaction", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		price, err := valueobject.NewMoneyINRFromString("2499.00")
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
		o, err := order.NewOrder(
			order.NewOrderNumber(time.Now()), nil, items,
			price, valueobject.ZeroINR(), price,
			"", "razorpay", "", shipping,
		)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "order_items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Save(context.Background(), o)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
