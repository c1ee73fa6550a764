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

func newMockReviewRepository(t *testing.T) (*GormReviewRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormReviewRepository(gormDB), mock, mockDB
}

func TestGormReviewRepository_FindApproved(t *testing.T) {
	t.Run("returns only approved reviews", func(t *testing.T) {
		repo, mock, mockDB := newMockReviewRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "author_name", "rating", "body", "approved"}).
			AddRow(uuid.New(), "Asha Nair", 5, "The oud lasts all day.", true)

		mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE approved = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(true, 10).
			WillReturnRows(rows)

		reviews, err := repo.FindApproved(context.Background(), shared.Filter{Page: 1, PageSize: 10})

		assert.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.True(t, reviews[0].Approved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReviewRepository_FindAll(t *testing.T) {
	t.Run("filters pending reviews for moderation", func(t *testing.T) {
		repo, mock, mockDB := newMockReviewRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "author_name", "rating", "approved"}).
			AddRow(uuid.New(), "Rahul Menon", 3, false)

		mock.ExpectQuery(`SELECT \* FROM "reviews" WHERE approved = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(false, 10).
			WillReturnRows(rows)

		reviews, err := repo.FindAll(context.Background(), shared.Filter{
			Page: 1, PageSize: 10,
			Filters: map[string]any{"approved": false},
		})

		assert.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.False(t, reviews[0].Approved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReviewRepository_FindAllOrdering(t *testing.T) {
	t.Run("ties break on id for stable pages", func(t *testing.T) {
		repo, mock, mockDB := newMockReviewRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "reviews" ORDER BY created_at DESC,id ASC LIMIT .*`).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindAll(context.Background(), shared.Filter{Page: 1, PageSize: 10})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReviewRepository_Count(t *testing.T) {
	t.Run("counts with the same search predicate as the listing", func(t *testing.T) {
		repo, mock, mockDB := newMockReviewRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews" WHERE author_name ILIKE \$1 OR body ILIKE \$2 OR CAST\(rating AS TEXT\) = \$3`).
			WithArgs("%oud%", "%oud%", "oud").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.Count(context.Background(), shared.Filter{Search: "oud"})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a rating digit matches by exact value", func(t *testing.T) {
		repo, mock, mockDB := newMockReviewRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews" WHERE author_name ILIKE \$1 OR body ILIKE \$2 OR CAST\(rating AS TEXT\) = \$3`).
			WithArgs("%5%", "%5%", "5").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.Count(context.Background(), shared.Filter{Search: "5"})

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReviewRepository_CountApproved(t *testing.T) {
	t.Run("counts approved reviews", func(t *testing.T) {
		repo, mock, mockDB := newMockReviewRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "reviews" WHERE approved = \$1`).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		count, err := repo.CountApproved(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
