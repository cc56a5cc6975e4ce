package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/whitesgr03/local-inventory/internal/model"
	"github.com/whitesgr03/local-inventory/internal/repository"
)

// CategoryRepository implements repository.CategoryRepository over
// Postgres.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository instance.
func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category and assigns its store identity.
func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	query := `INSERT INTO categories (name, description, expired)
	          VALUES ($1, $2, $3) RETURNING id`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	err = stmt.QueryRowContext(ctx, category.Name, category.Description, category.Expired).Scan(&category.ID)
	if err != nil {
		if detail, ok := isUniqueViolation(err); ok {
			return nil, &repository.UniqueConstraintError{Detail: detail}
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return category, nil
}

// Update rewrites a category's editable fields and its expiry.
// Writing the expiry is what persists the draft-to-live confirmation.
func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `UPDATE categories SET name = $1, description = $2, expired = $3 WHERE id = $4`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, category.Name, category.Description, category.Expired, category.ID)
	if err != nil {
		if detail, ok := isUniqueViolation(err); ok {
			return &repository.UniqueConstraintError{Detail: detail}
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category %d: %w", category.ID, repository.ErrNotFound)
	}

	return nil
}

// DeleteByID removes a category row.
func (r *CategoryRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category %d: %w", id, repository.ErrNotFound)
	}

	return nil
}

// FindByID retrieves a single non-retired category.
func (r *CategoryRepository) FindByID(ctx context.Context, id int64, now time.Time) (*model.Category, error) {
	query := `SELECT id, name, description, expired FROM categories
	          WHERE id = $1 AND (expired IS NULL OR $2 < expired)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var result model.Category
	err = stmt.QueryRowContext(ctx, id, now).Scan(
		&result.ID, &result.Name, &result.Description, &result.Expired,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %d: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &result, nil
}

// ListLive retrieves non-retired categories ordered by name.
func (r *CategoryRepository) ListLive(ctx context.Context, now time.Time) ([]*model.Category, error) {
	query := `SELECT id, name, description, expired FROM categories
	          WHERE expired IS NULL OR $1 < expired ORDER BY name`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.Expired); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return categories, nil
}

// NameInUse reports whether a non-retired category other than
// excludeID already carries the name.
func (r *CategoryRepository) NameInUse(ctx context.Context, name string, excludeID int64, now time.Time) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM categories
	            WHERE name = $1 AND id != $2 AND (expired IS NULL OR $3 < expired)
	          )`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return false, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var exists bool
	if err := stmt.QueryRowContext(ctx, name, excludeID, now).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return exists, nil
}

// CountLive returns the number of non-retired categories.
func (r *CategoryRepository) CountLive(ctx context.Context, now time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM categories WHERE expired IS NULL OR $1 < expired`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var count int64
	if err := stmt.QueryRowContext(ctx, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}
