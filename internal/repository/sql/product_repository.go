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

// ProductRepository implements repository.ProductRepository over
// Postgres.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product and assigns its store identity.
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	query := `INSERT INTO products (name, description, category_id, price, quantity, modified, expired)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	err = stmt.QueryRowContext(ctx,
		product.Name, product.Description, product.CategoryID,
		product.Price, product.Quantity, product.Modified, product.Expired,
	).Scan(&product.ID)
	if err != nil {
		if detail, ok := isUniqueViolation(err); ok {
			return nil, &repository.UniqueConstraintError{Detail: detail}
		}
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return product, nil
}

// Update rewrites a product's editable fields, its modified timestamp
// and its expiry. Writing the expiry is what persists the
// draft-to-live confirmation.
func (r *ProductRepository) Update(ctx context.Context, product *model.Product) error {
	query := `UPDATE products
	          SET name = $1, description = $2, category_id = $3, price = $4, quantity = $5, modified = $6, expired = $7
	          WHERE id = $8`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		product.Name, product.Description, product.CategoryID,
		product.Price, product.Quantity, product.Modified, product.Expired, product.ID,
	)
	if err != nil {
		if detail, ok := isUniqueViolation(err); ok {
			return &repository.UniqueConstraintError{Detail: detail}
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product %d: %w", product.ID, repository.ErrNotFound)
	}

	return nil
}

// DeleteByID removes a product row.
func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, repository.ErrNotFound)
	}

	return nil
}

// FindByID retrieves a single non-retired product with its joined
// category name.
func (r *ProductRepository) FindByID(ctx context.Context, id int64, now time.Time) (*model.Product, error) {
	query := `SELECT products.id, products.name, products.description, products.category_id,
	                 products.price, products.quantity, products.modified, products.expired,
	                 categories.name
	          FROM products JOIN categories ON products.category_id = categories.id
	          WHERE products.id = $1 AND (products.expired IS NULL OR $2 < products.expired)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var result model.Product
	err = stmt.QueryRowContext(ctx, id, now).Scan(
		&result.ID, &result.Name, &result.Description, &result.CategoryID,
		&result.Price, &result.Quantity, &result.Modified, &result.Expired,
		&result.CategoryName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &result, nil
}

// ListLive retrieves non-retired products ordered by name.
func (r *ProductRepository) ListLive(ctx context.Context, now time.Time) ([]*model.Product, error) {
	query := `SELECT id, name, description, category_id, price, quantity, modified, expired
	          FROM products WHERE expired IS NULL OR $1 < expired ORDER BY name`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListByCategory retrieves the non-retired products referencing a
// category, ordered by name.
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID int64, now time.Time) ([]*model.Product, error) {
	query := `SELECT id, name, description, category_id, price, quantity, modified, expired
	          FROM products
	          WHERE category_id = $1 AND (expired IS NULL OR $2 < expired)
	          ORDER BY name`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, categoryID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// NameInUse reports whether a non-retired product other than excludeID
// already carries the name.
func (r *ProductRepository) NameInUse(ctx context.Context, name string, excludeID int64, now time.Time) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM products
	            WHERE name = $1 AND id != $2 AND (expired IS NULL OR $3 < expired)
	          )`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return false, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var exists bool
	if err := stmt.QueryRowContext(ctx, name, excludeID, now).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check product name: %w", err)
	}
	return exists, nil
}

// CountLive returns the number of non-retired products.
func (r *ProductRepository) CountLive(ctx context.Context, now time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM products WHERE expired IS NULL OR $1 < expired`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var count int64
	if err := stmt.QueryRowContext(ctx, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CountReferencing counts every product row holding the category's
// foreign key, retired rows included.
func (r *ProductRepository) CountReferencing(ctx context.Context, categoryID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM products WHERE category_id = $1`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var count int64
	if err := stmt.QueryRowContext(ctx, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func scanProducts(rows *sql.Rows) ([]*model.Product, error) {
	var products []*model.Product
	for rows.Next() {
		var product model.Product
		err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.CategoryID,
			&product.Price, &product.Quantity, &product.Modified, &product.Expired,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}
