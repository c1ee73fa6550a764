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

func newMockAddressRepository(t *testing.T) (*GormAddressRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormAddressRepository(gormDB), mock, mockDB
}

func TestGormAddressRepository_FindByUserID(t *testing.T) {
	t.Run("lists addresses with default first", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "user_id", "type", "recipient_name", "pincode", "is_default"}).
			AddRow(uuid.New(), userID, "home", "Asha Nair", "560001", true).
			AddRow(uuid.New(), userID, "work", "Asha Nair", "560038", false)

		mock.ExpectQuery(`SELECT \* FROM "saved_addresses" WHERE user_id = \$1 ORDER BY is_default DESC,created_at ASC`).
			WithArgs(userID).
			WillReturnRows(rows)

		addresses, err := repo.FindByUserID(context.Background(), userID)

		assert.NoError(t, err)
		assert.Len(t, addresses, 2)
		assert.True(t, addresses[0].IsDefault)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAddressRepository_Delete(t *testing.T) {
	t.Run("returns not found when address does not belong to user", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		addressID := uuid.New()

		mock.ExpectExec(`DELETE FROM "saved_addresses"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), userID, addressID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deletes owned address", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`DELETE FROM "saved_addresses"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), uuid.New(), uuid.New())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAddressRepository_SetDefault(t *testing.T) {
	t.Run("clears previous default and sets the new one", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		addressID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "saved_addresses" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "saved_addresses" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SetDefault(context.Background(), userID, addressID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the target address is missing", func(t *testing.T) {
		repo, mock, mockDB := newMockAddressRepository(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "saved_addresses" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "saved_addresses" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SetDefault(context.Background(), uuid.New(), uuid.New())

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
