package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	gcs "cloud.google.com/go/storage"

	"github.com/whitesgr03/local-inventory/internal/asset"
	"github.com/whitesgr03/local-inventory/internal/config"
	"github.com/whitesgr03/local-inventory/internal/logger"
	"github.com/whitesgr03/local-inventory/internal/repository/sql"
	"github.com/whitesgr03/local-inventory/internal/service"
	sqspkg "github.com/whitesgr03/local-inventory/internal/sqs"
	"github.com/whitesgr03/local-inventory/internal/storage"
)

func main() {
	logger.InitJSONLogger()

	conf, err := config.LoadFromEnv()
	handleErr("loading config", err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.StartDB(ctx, conf.Database)
	handleErr("starting database", err)

	categoryRepository := sql.NewCategoryRepository(db)
	productRepository := sql.NewProductRepository(db)

	gcsClient, err := gcs.NewClient(ctx)
	handleErr("creating storage client", err)
	objectStore, err := storage.NewGCSStore(gcsClient, conf.Assets.Bucket)
	handleErr("opening asset bucket", err)

	resolver := asset.Resolver{
		StorageBaseURL: conf.Assets.StorageBaseURL,
		CDNBaseURL:     conf.Assets.CDNBaseURL,
		PendingBucket:  conf.Assets.Bucket,
		ConfirmedPath:  conf.Assets.ConfirmedPath,
	}

	// The worker only repairs assets; it publishes nothing.
	productService := service.NewProductService(productRepository, categoryRepository, objectStore, resolver, nil)

	sqsClient, err := sqspkg.NewClient(ctx, conf.AWS.Region, conf.AWS.Endpoint)
	handleErr("creating SQS client", err)
	consumer := sqspkg.NewConsumer(sqsClient, conf.AWS.SQSQueueURL, productService.HandleAssetEvent)

	// Start consuming messages
	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Consumer error: %v", err)
		}
	}()

	log.Println("Reconcile worker started. Listening for asset events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
	cancel()
}

func handleErr(msg string, err error) {
	if err != nil {
		log.Fatalf("error while %s: %v", msg, err)
	}
}
