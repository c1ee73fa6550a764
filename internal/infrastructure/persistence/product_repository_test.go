package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/scentline/backend/internal/domain/shared"
)

func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormProductRepository(gormDB), mock, mockDB
}

func TestGormProductRepository_FindActive(t *testing.T) {
	t.Run("lists only active products", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "unit_price", "active"}).
			AddRow(uuid.New(), "Oud Noir 50ml", "2499.00", true).
			AddRow(uuid.New(), "Jasmine Dusk 30ml", "1299.00", true)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE active = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(true, 10).
			WillReturnRows(rows)

		products, err := repo.FindActive(context.Background(), shared.Filter{Page: 1, PageSize: 10})

		assert.NoError(t, err)
		assert.Len(t, products, 2)
		assert.Equal(t, "Oud Noir 50ml", products[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("searches name and description", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE active = \$1 AND \(name ILIKE \$2 OR description ILIKE \$3\)`).
			WithArgs(true, "%oud%", "%oud%", 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, err := repo.FindActive(context.Background(), shared.Filter{
			Page: 1, PageSize: 10, Search: "oud",
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "products"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), uuid.New())

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
