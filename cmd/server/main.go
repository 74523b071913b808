// backend-go/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/api"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/cache"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/config"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/dataset"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/forecast"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/ledger"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/network"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/replenish"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/service"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/storage"
	"github.com/andresuchdata/liquor-replenish/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Optionally fetch the dataset CSVs from object storage first
	if cfg.Dataset.FetchFromBucket {
		store, err := storage.NewMinioClient(storage.BucketConfig{
			Endpoint:  cfg.Dataset.BucketEndpoint,
			AccessKey: cfg.Dataset.BucketAccessKey,
			SecretKey: cfg.Dataset.BucketSecretKey,
			Bucket:    cfg.Dataset.BucketName,
			Region:    cfg.Dataset.BucketRegion,
			UseSSL:    cfg.Dataset.BucketUseSSL,
		})
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize bucket client")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := dataset.FetchFromBucket(ctx, store, cfg.Dataset); err != nil {
			cancel()
			logger.Log.Fatal().Err(err).Msg("Failed to fetch dataset from bucket")
		}
		cancel()
	}

	// Load the four tables once; they stay immutable for the process
	// lifetime and are shared by all requests without locking.
	ds, err := dataset.Load(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load dataset")
	}

	graph := network.NewGraph(ds.DistilleryEdges, ds.DepotEdges)
	sales := ledger.NewSalesLedger(ds.Sales)
	stock := replenish.NewStockAggregator(ledger.NewStockLedger(ds.Stock))
	forecaster := forecast.NewForecaster(forecast.NewTrendEngine())
	pipeline := replenish.NewPipeline(graph, sales, stock, forecaster, cfg.Forecast.WorkerCount)

	replenishCache, err := cache.NewReplenishmentCache(cfg.Cache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize cache")
	}

	replenishService := service.NewReplenishmentService(
		pipeline,
		replenishCache,
		time.Duration(cfg.Forecast.RequestTimeoutSeconds)*time.Second,
	)

	// Initialize HTTP server
	router := api.NewRouter(replenishService, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
