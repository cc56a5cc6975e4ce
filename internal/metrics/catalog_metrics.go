package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CategoriesCreated is a Prometheus counter for tracking the total number of categories created.
	CategoriesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "categories_created_total",
		Help: "The total number of categories created",
	})

	// CategoriesDeleted is a Prometheus counter for tracking the total number of categories deleted.
	CategoriesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "categories_deleted_total",
		Help: "The total number of categories deleted",
	})

	// ProductsCreated is a Prometheus counter for tracking the total number of products created.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "The total number of products created",
	})

	// ProductsUpdated is a Prometheus counter for tracking the total number of products updated.
	ProductsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_updated_total",
		Help: "The total number of products updated",
	})

	// ProductsDeleted is a Prometheus counter for tracking the total number of products deleted.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_deleted_total",
		Help: "The total number of products deleted",
	})

	// AssetsUploaded counts image assets written to object storage.
	AssetsUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assets_uploaded_total",
		Help: "The total number of image assets uploaded",
	})

	// AssetsMoved counts image assets renamed after a product rename.
	AssetsMoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assets_moved_total",
		Help: "The total number of image assets moved to a new key",
	})

	// OrphanedAssets counts assets whose cleanup failed after their
	// product row was already deleted.
	OrphanedAssets = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orphaned_assets_total",
		Help: "The total number of image assets left behind by failed cleanup",
	})

	// AssetsReconciled counts assets re-uploaded or confirmed by the
	// reconciliation hook.
	AssetsReconciled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assets_reconciled_total",
		Help: "The total number of assets checked by reconciliation",
	})
)
