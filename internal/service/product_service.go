package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/whitesgr03/local-inventory/internal/asset"
	"github.com/whitesgr03/local-inventory/internal/metrics"
	"github.com/whitesgr03/local-inventory/internal/model"
	"github.com/whitesgr03/local-inventory/internal/repository"
	"github.com/whitesgr03/local-inventory/internal/sqs"
	"github.com/whitesgr03/local-inventory/internal/storage"
)

// assetCacheTTL is the public cache lifetime written on uploaded assets.
const assetCacheTTL = 24 * time.Hour

// ProductFields are the already-validated inputs of a product write.
type ProductFields struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	CategoryID  int64
}

// ImageUpload carries the raw upload and its declared MIME type.
type ImageUpload struct {
	Data     []byte
	MIMEType string
}

// ProductView is a product resolved together with its image URLs.
type ProductView struct {
	Product   *model.Product
	ImageURLs asset.ImageURLs
}

// ProductService orchestrates product lifecycle operations and keeps
// the image asset consistent with the record. Within one request the
// record write and the asset write run concurrently; the request
// succeeds only when both do, and nothing is rolled back when one
// fails — reconciliation covers that out-of-band.
type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	store      storage.ObjectStore
	resolver   asset.Resolver
	publisher  *sqs.Publisher
}

// NewProductService creates a new ProductService.
func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	store storage.ObjectStore,
	resolver asset.Resolver,
	publisher *sqs.Publisher,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		store:      store,
		resolver:   resolver,
		publisher:  publisher,
	}
}

// CreateProduct inserts a product in its provisional window and uploads
// its canonical image, both concurrently.
func (ps *ProductService) CreateProduct(ctx context.Context, fields ProductFields, image *ImageUpload, now time.Time) (*model.Product, error) {
	if _, err := ps.categories.FindByID(ctx, fields.CategoryID, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}

	inUse, err := ps.products.NameInUse(ctx, fields.Name, 0, now)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrNameConflict
	}

	if image == nil {
		return nil, fmt.Errorf("%w: image is required", ErrInvalidImage)
	}
	canonical, err := asset.NormalizeImage(image.Data, image.MIMEType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImage, err)
	}

	product := &model.Product{
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		Quantity:    fields.Quantity,
		CategoryID:  fields.CategoryID,
	}
	product.InitMeta(now)

	key := asset.DeriveKey(product.Name)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ps.store.Put(gctx, key, canonical, image.MIMEType, assetCacheTTL); err != nil {
			return err
		}
		metrics.AssetsUploaded.Inc()
		return nil
	})
	g.Go(func() error {
		_, err := ps.products.Create(gctx, product)
		return mapRepoError(err)
	})
	if err := g.Wait(); err != nil {
		// One side may have landed; flag the product for the
		// reconcile worker when the row exists.
		if product.ID != 0 {
			ps.publishAssetEvent(ctx, sqs.ActionReconcileRequested, product.ID, key)
		}
		slog.Error("product create left record and asset out of step",
			slog.Any("err", err), slog.String("asset_key", key))
		return nil, err
	}

	metrics.ProductsCreated.Inc()
	return product, nil
}

// UpdateProduct rewrites a live product. A new image replaces the asset
// at the (possibly renamed) key; a rename without a new image moves the
// existing asset. The asset operation and the record update run
// concurrently.
func (ps *ProductService) UpdateProduct(ctx context.Context, id int64, fields ProductFields, image *ImageUpload, now time.Time) (*model.Product, error) {
	current, err := ps.products.FindByID(ctx, id, now)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if model.PhaseOf(current, now) == model.PhaseDraft {
		return nil, ErrDraft
	}

	if _, err := ps.categories.FindByID(ctx, fields.CategoryID, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}

	inUse, err := ps.products.NameInUse(ctx, fields.Name, id, now)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, ErrNameConflict
	}

	var canonical []byte
	if image != nil {
		canonical, err = asset.NormalizeImage(image.Data, image.MIMEType)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidImage, err)
		}
	}

	oldKey := asset.DeriveKey(current.Name)
	newKey := asset.DeriveKey(fields.Name)

	updated := *current
	updated.Name = fields.Name
	updated.Description = fields.Description
	updated.Price = fields.Price
	updated.Quantity = fields.Quantity
	updated.CategoryID = fields.CategoryID
	updated.Touch(now)

	g, gctx := errgroup.WithContext(ctx)
	switch {
	case image != nil:
		g.Go(func() error {
			if err := ps.store.Put(gctx, newKey, canonical, image.MIMEType, assetCacheTTL); err != nil {
				return err
			}
			metrics.AssetsUploaded.Inc()
			return nil
		})
	case newKey != oldKey:
		g.Go(func() error {
			if err := ps.store.Move(gctx, oldKey, newKey); err != nil {
				return err
			}
			metrics.AssetsMoved.Inc()
			return nil
		})
	}
	g.Go(func() error {
		return mapRepoError(ps.products.Update(gctx, &updated))
	})
	if err := g.Wait(); err != nil {
		ps.publishAssetEvent(ctx, sqs.ActionReconcileRequested, id, newKey)
		slog.Error("product update left record and asset out of step",
			slog.Any("err", err), slog.Int64("product_id", id),
			slog.String("old_key", oldKey), slog.String("new_key", newKey))
		return nil, err
	}

	metrics.ProductsUpdated.Inc()
	return &updated, nil
}

// DeleteProduct removes a live product's row, then its asset. Asset
// cleanup failure never blocks the deletion: the orphan is logged,
// counted and handed to the reconcile worker.
func (ps *ProductService) DeleteProduct(ctx context.Context, id int64, now time.Time) error {
	current, err := ps.products.FindByID(ctx, id, now)
	if err != nil {
		return mapRepoError(err)
	}
	if model.PhaseOf(current, now) == model.PhaseDraft {
		return ErrDraft
	}

	if err := ps.products.DeleteByID(ctx, id); err != nil {
		return mapRepoError(err)
	}
	metrics.ProductsDeleted.Inc()

	key := asset.DeriveKey(current.Name)
	if err := ps.store.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		metrics.OrphanedAssets.Inc()
		slog.Warn("product deleted but asset cleanup failed",
			slog.Any("err", err), slog.Int64("product_id", id), slog.String("asset_key", key))
		ps.publishAssetEvent(ctx, sqs.ActionAssetOrphaned, id, key)
	}

	return nil
}

// ResolveProductView resolves a non-retired product with its image
// URLs. Resolving a draft confirms it to permanently live; from then
// on its asset is served through the confirmed CDN path.
func (ps *ProductService) ResolveProductView(ctx context.Context, id int64, now time.Time) (*ProductView, error) {
	product, err := ps.products.FindByID(ctx, id, now)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if model.PhaseOf(product, now) == model.PhaseDraft {
		product.Expired = model.NeverExpires()
		if err := ps.products.Update(ctx, product); err != nil {
			return nil, mapRepoError(err)
		}
	}

	return &ProductView{
		Product:   product,
		ImageURLs: ps.resolver.URLs(product),
	}, nil
}

// ListProducts returns non-retired products ordered by name.
func (ps *ProductService) ListProducts(ctx context.Context, now time.Time) ([]*model.Product, error) {
	return ps.products.ListLive(ctx, now)
}

// ReconcileProductAsset verifies that a product's asset exists under
// its derived key. It is the operator hook for repairing the
// inconsistency window left by a half-failed create or update.
func (ps *ProductService) ReconcileProductAsset(ctx context.Context, id int64, now time.Time) error {
	product, err := ps.products.FindByID(ctx, id, now)
	if err != nil {
		return mapRepoError(err)
	}

	key := asset.DeriveKey(product.Name)
	exists, err := ps.store.Exists(ctx, key)
	if err != nil {
		return err
	}
	metrics.AssetsReconciled.Inc()

	if !exists {
		slog.Error("product asset missing",
			slog.Int64("product_id", id), slog.String("asset_key", key))
		return fmt.Errorf("%w: %s", ErrAssetMissing, key)
	}
	return nil
}

// HandleAssetEvent is the consumer entry point for asset-consistency
// events.
func (ps *ProductService) HandleAssetEvent(ctx context.Context, msg sqs.AssetMessage) error {
	switch msg.Action {
	case sqs.ActionReconcileRequested:
		err := ps.ReconcileProductAsset(ctx, msg.ProductID, time.Now())
		if errors.Is(err, ErrNotFound) {
			// The record never landed or is already gone; drop the
			// stray asset instead.
			if derr := ps.store.Delete(ctx, msg.AssetKey); derr != nil && !errors.Is(derr, storage.ErrObjectNotFound) {
				return derr
			}
			return nil
		}
		return err
	case sqs.ActionAssetOrphaned:
		if err := ps.store.Delete(ctx, msg.AssetKey); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			return err
		}
		metrics.AssetsReconciled.Inc()
		return nil
	default:
		slog.Warn("unknown asset event action", slog.String("action", msg.Action))
		return nil
	}
}

// publishAssetEvent sends an asset-consistency event; failures are
// logged and never fail the request.
func (ps *ProductService) publishAssetEvent(ctx context.Context, action string, productID int64, key string) {
	if ps.publisher == nil {
		return
	}
	msg := sqs.AssetMessage{
		Action:    action,
		ProductID: productID,
		AssetKey:  key,
	}
	if err := ps.publisher.PublishAssetMessage(ctx, msg); err != nil {
		slog.Error("Failed to send SQS message",
			slog.Any("err", err), slog.String("action", action), slog.Int64("product_id", productID))
	}
}
