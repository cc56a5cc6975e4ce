package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	gcs "cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"

	"github.com/whitesgr03/local-inventory/internal/asset"
	"github.com/whitesgr03/local-inventory/internal/config"
	httpAPI "github.com/whitesgr03/local-inventory/internal/http"
	"github.com/whitesgr03/local-inventory/internal/http/controller"
	"github.com/whitesgr03/local-inventory/internal/logger"
	"github.com/whitesgr03/local-inventory/internal/metrics"
	"github.com/whitesgr03/local-inventory/internal/repository/sql"
	"github.com/whitesgr03/local-inventory/internal/service"
	sqspkg "github.com/whitesgr03/local-inventory/internal/sqs"
	"github.com/whitesgr03/local-inventory/internal/storage"
)

func main() {
	logger.InitJSONLogger()

	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	ctx := context.Background()
	db, err := sql.StartDB(ctx, conf.Database)
	handleErr("starting database", err)

	// Create repositories
	categoryRepository := sql.NewCategoryRepository(db)
	productRepository := sql.NewProductRepository(db)

	// Object store for product image assets
	gcsClient, err := gcs.NewClient(ctx)
	handleErr("creating storage client", err)
	objectStore, err := storage.NewGCSStore(gcsClient, conf.Assets.Bucket)
	handleErr("opening asset bucket", err)

	// SQS publisher for asset-consistency events
	sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
	handleErr("creating SQS client", err)
	sqsPublisher := sqspkg.NewPublisher(sqsClient, conf.AWS.SQSQueueURL)

	resolver := asset.Resolver{
		StorageBaseURL: conf.Assets.StorageBaseURL,
		CDNBaseURL:     conf.Assets.CDNBaseURL,
		PendingBucket:  conf.Assets.Bucket,
		ConfirmedPath:  conf.Assets.ConfirmedPath,
	}

	// Create services
	catalogService := service.NewCatalogService(categoryRepository, productRepository)
	productService := service.NewProductService(productRepository, categoryRepository, objectStore, resolver, sqsPublisher)

	// Start HTTP server
	ctr := controller.New(catalogService)
	categoryCtr := controller.NewCategoryController(catalogService)
	productCtr := controller.NewProductController(productService)

	if !conf.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	httpServer := gin.New()
	httpServer = httpAPI.InitRouter(httpServer, ctr, categoryCtr, productCtr)

	go func() {
		if err := httpServer.Run(":" + conf.HTTPServer.Port); err != nil {
			handleErr("listening to HTTP requests", err)
		}
	}()

	// Start metrics server
	go metrics.StartMetricsServer(conf)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
