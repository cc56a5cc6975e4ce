package sql

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whitesgr03/local-inventory/internal/model"
	"github.com/whitesgr03/local-inventory/internal/repository"
)

func TestCategoryRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("successful creation assigns id", func(t *testing.T) {
		category := &model.Category{
			Name:        "Dry Food",
			Description: "Kibble and biscuits",
		}
		category.InitMeta(now)

		mock.ExpectPrepare("INSERT INTO categories").
			ExpectQuery().
			WithArgs(category.Name, category.Description, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		result, err := repo.Create(ctx, category)
		require.NoError(t, err)
		assert.Equal(t, int64(7), result.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to constraint error", func(t *testing.T) {
		category := &model.Category{Name: "Dry Food", Description: "duplicate"}
		category.InitMeta(now)

		mock.ExpectPrepare("INSERT INTO categories").
			ExpectQuery().
			WithArgs(category.Name, category.Description, sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505", Detail: "Key (name)=(Dry Food) already exists."})

		_, err := repo.Create(ctx, category)
		require.Error(t, err)

		var constraintErr *repository.UniqueConstraintError
		assert.ErrorAs(t, err, &constraintErr)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("live category found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "description", "expired"}).
			AddRow(int64(3), "Wet Food", "Cans and pouches", nil)

		mock.ExpectPrepare("SELECT id, name, description, expired FROM categories").
			ExpectQuery().
			WithArgs(int64(3), now).
			WillReturnRows(rows)

		result, err := repo.FindByID(ctx, 3, now)
		require.NoError(t, err)
		assert.Equal(t, "Wet Food", result.Name)
		assert.True(t, result.Expired.IsInfinite())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("draft expiry scans as finite", func(t *testing.T) {
		expires := now.Add(model.DraftWindow)
		rows := sqlmock.NewRows([]string{"id", "name", "description", "expired"}).
			AddRow(int64(4), "Toys", "Chew toys", expires)

		mock.ExpectPrepare("SELECT id, name, description, expired FROM categories").
			ExpectQuery().
			WithArgs(int64(4), now).
			WillReturnRows(rows)

		result, err := repo.FindByID(ctx, 4, now)
		require.NoError(t, err)
		assert.Equal(t, model.PhaseDraft, model.PhaseOf(result, now))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retired or missing category is not found", func(t *testing.T) {
		mock.ExpectPrepare("SELECT id, name, description, expired FROM categories").
			ExpectQuery().
			WithArgs(int64(99), now).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(ctx, 99, now)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryRepository_NameInUse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("excludes own id from collision check", func(t *testing.T) {
		mock.ExpectPrepare("SELECT EXISTS").
			ExpectQuery().
			WithArgs("Dry Food", int64(5), now).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		inUse, err := repo.NameInUse(ctx, "Dry Food", 5, now)
		require.NoError(t, err)
		assert.False(t, inUse)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports collision", func(t *testing.T) {
		mock.ExpectPrepare("SELECT EXISTS").
			ExpectQuery().
			WithArgs("Dry Food", int64(0), now).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		inUse, err := repo.NameInUse(ctx, "Dry Food", 0, now)
		require.NoError(t, err)
		assert.True(t, inUse)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)
	ctx := context.Background()

	t.Run("successful update writes expiry", func(t *testing.T) {
		// Confirming a draft rewrites a finite expiry to NULL.
		category := &model.Category{
			ID:          3,
			Name:        "Dry Food",
			Description: "Kibble and biscuits",
			Expired:     model.NeverExpires(),
		}

		mock.ExpectPrepare("UPDATE categories").
			ExpectExec().
			WithArgs(category.Name, category.Description, category.Expired, category.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(ctx, category))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not found", func(t *testing.T) {
		category := &model.Category{ID: 99, Name: "Ghost"}

		mock.ExpectPrepare("UPDATE categories").
			ExpectExec().
			WithArgs(category.Name, category.Description, category.Expired, category.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, category)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryRepository_DeleteByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		mock.ExpectPrepare("DELETE FROM categories").
			ExpectExec().
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteByID(ctx, 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not found", func(t *testing.T) {
		mock.ExpectPrepare("DELETE FROM categories").
			ExpectExec().
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteByID(ctx, 99)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCategoryRepository_ListLive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "expired"}).
		AddRow(int64(1), "Dry Food", "Kibble", nil).
		AddRow(int64(2), "Toys", "Chew toys", now.Add(time.Hour))

	mock.ExpectPrepare("SELECT id, name, description, expired FROM categories").
		ExpectQuery().
		WithArgs(now).
		WillReturnRows(rows)

	result, err := repo.ListLive(ctx, now)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Dry Food", result[0].Name)
	assert.Equal(t, model.PhaseDraft, model.PhaseOf(result[1], now))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_CountLive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCategoryRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectPrepare("SELECT COUNT").
		ExpectQuery().
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	count, err := repo.CountLive(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
