package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/whitesgr03/local-inventory/internal/metrics"
	"github.com/whitesgr03/local-inventory/internal/model"
	"github.com/whitesgr03/local-inventory/internal/repository"
)

// CategoryFields are the already-validated inputs of a category write.
type CategoryFields struct {
	Name        string
	Description string
}

// CategoryView is a category resolved together with its non-retired
// products.
type CategoryView struct {
	Category *model.Category
	Products []*model.Product
}

// Counts are the live record totals shown on the catalog index.
type Counts struct {
	Categories int64
	Products   int64
}

// CatalogService orchestrates category lifecycle operations. Categories
// carry no image asset, so every operation is a pure record operation
// through the lifecycle rules.
type CatalogService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categories repository.CategoryRepository, products repository.ProductRepository) *CatalogService {
	return &CatalogService{
		categories: categories,
		products:   products,
	}
}

// CreateCategory inserts a category in its provisional window. The
// advisory name pre-check gives a friendly conflict answer; the
// schema's unique constraint stays authoritative underneath it.
func (cs *CatalogService) CreateCategory(ctx context.Context, fields CategoryFields, now time.Time) (*model.Category, error) {
	inUse, err := cs.categories.NameInUse(ctx, fields.Name, 0, now)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrNameConflict
	}

	category := &model.Category{
		Name:        fields.Name,
		Description: fields.Description,
	}
	category.InitMeta(now)

	created, err := cs.categories.Create(ctx, category)
	if err != nil {
		return nil, mapRepoError(err)
	}

	metrics.CategoriesCreated.Inc()
	return created, nil
}

// UpdateCategory rewrites a live category's fields. Drafts are rejected
// with ErrDraft and left untouched.
func (cs *CatalogService) UpdateCategory(ctx context.Context, id int64, fields CategoryFields, now time.Time) (*model.Category, error) {
	category, err := cs.categories.FindByID(ctx, id, now)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if model.PhaseOf(category, now) == model.PhaseDraft {
		return nil, ErrDraft
	}

	inUse, err := cs.categories.NameInUse(ctx, fields.Name, id, now)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrNameConflict
	}

	category.Name = fields.Name
	category.Description = fields.Description
	if err := cs.categories.Update(ctx, category); err != nil {
		return nil, mapRepoError(err)
	}

	return category, nil
}

// DeleteCategory removes a live category with no remaining products.
// The dependents check counts every referencing row, retired ones
// included — they still hold the foreign key, so deleting past them
// would trip the constraint. A referenced category is left in place
// and the caller gets ErrHasDependents to render the blocking notice.
func (cs *CatalogService) DeleteCategory(ctx context.Context, id int64, now time.Time) error {
	category, err := cs.categories.FindByID(ctx, id, now)
	if err != nil {
		return mapRepoError(err)
	}
	if model.PhaseOf(category, now) == model.PhaseDraft {
		return ErrDraft
	}

	dependents, err := cs.products.CountReferencing(ctx, id)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return ErrHasDependents
	}

	if err := cs.categories.DeleteByID(ctx, id); err != nil {
		return mapRepoError(err)
	}

	metrics.CategoriesDeleted.Inc()
	return nil
}

// ResolveCategoryView resolves a non-retired category together with
// its products, fetching both concurrently. Resolving a draft confirms
// it: the provisional window is replaced by the infinite expiry, which
// is the only way a record becomes permanently live.
func (cs *CatalogService) ResolveCategoryView(ctx context.Context, id int64, now time.Time) (*CategoryView, error) {
	var (
		category *model.Category
		products []*model.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		category, err = cs.categories.FindByID(gctx, id, now)
		return mapRepoError(err)
	})
	g.Go(func() error {
		var err error
		products, err = cs.products.ListByCategory(gctx, id, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if model.PhaseOf(category, now) == model.PhaseDraft {
		category.Expired = model.NeverExpires()
		if err := cs.categories.Update(ctx, category); err != nil {
			return nil, mapRepoError(err)
		}
	}

	return &CategoryView{Category: category, Products: products}, nil
}

// ListCategories returns non-retired categories ordered by name.
func (cs *CatalogService) ListCategories(ctx context.Context, now time.Time) ([]*model.Category, error) {
	return cs.categories.ListLive(ctx, now)
}

// ResolveCounts returns the live record totals for the catalog index.
func (cs *CatalogService) ResolveCounts(ctx context.Context, now time.Time) (Counts, error) {
	var counts Counts

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts.Categories, err = cs.categories.CountLive(gctx, now)
		return err
	})
	g.Go(func() error {
		var err error
		counts.Products, err = cs.products.CountLive(gctx, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return Counts{}, err
	}

	return counts, nil
}
