// Package repository defines the persistence boundary of the catalog.
// Every lifecycle-sensitive query takes an explicit now so liveness
// decisions are deterministic under test.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/whitesgr03/local-inventory/internal/model"
)

// ErrNotFound is returned when an identity does not resolve to a
// non-retired record.
var ErrNotFound = errors.New("record not found")

// UniqueConstraintError represents a database unique constraint
// violation. The constraint in the schema, not the advisory pre-check,
// is the source of truth for name uniqueness.
type UniqueConstraintError struct {
	Detail string
}

func (u *UniqueConstraintError) Error() string {
	return "resource must be unique: " + u.Detail
}

// CategoryRepository manages category rows.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	DeleteByID(ctx context.Context, id int64) error

	// FindByID resolves a non-retired category at now.
	FindByID(ctx context.Context, id int64, now time.Time) (*model.Category, error)

	// ListLive returns non-retired categories ordered by name.
	ListLive(ctx context.Context, now time.Time) ([]*model.Category, error)

	// NameInUse reports whether a non-retired category other than
	// excludeID already carries the name.
	NameInUse(ctx context.Context, name string, excludeID int64, now time.Time) (bool, error)

	// CountLive returns the number of non-retired categories.
	CountLive(ctx context.Context, now time.Time) (int64, error)
}

// ProductRepository manages product rows.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	DeleteByID(ctx context.Context, id int64) error

	// FindByID resolves a non-retired product at now, with the joined
	// category name.
	FindByID(ctx context.Context, id int64, now time.Time) (*model.Product, error)

	// ListLive returns non-retired products ordered by name.
	ListLive(ctx context.Context, now time.Time) ([]*model.Product, error)

	// ListByCategory returns the non-retired products referencing a
	// category, ordered by name.
	ListByCategory(ctx context.Context, categoryID int64, now time.Time) ([]*model.Product, error)

	// CountReferencing returns the number of product rows referencing
	// a category regardless of lifecycle phase. Retired rows still
	// hold the foreign key, so delete-eligibility must count them too.
	CountReferencing(ctx context.Context, categoryID int64) (int64, error)

	// NameInUse reports whether a non-retired product other than
	// excludeID already carries the name.
	NameInUse(ctx context.Context, name string, excludeID int64, now time.Time) (bool, error)

	// CountLive returns the number of non-retired products.
	CountLive(ctx context.Context, now time.Time) (int64, error)
}
