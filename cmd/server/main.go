package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpadapter "github.com/hamzaamir-design/Real-state-MarketPlace/internal/adapter/http"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/adapter/messaging/nats"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/adapter/repository/cache"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/adapter/repository/mongodb"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/adapter/storage/s3"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/auth"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/config"
	listingusecase "github.com/hamzaamir-design/Real-state-MarketPlace/internal/listing/usecase"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/mailer"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/logger"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/metrics"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/tracer"
	userusecase "github.com/hamzaamir-design/Real-state-MarketPlace/internal/user/usecase"
)

func main() {
	log := logger.NewLogger()
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracerProvider := tracer.InitTracer()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("tracer shutdown failed", zap.Error(err))
		}
	}()

	metricsManager := metrics.NewMetricsManager("marketplace_api")

	mongoClient, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("mongo disconnect failed", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.MongoDatabase)

	listingCache, err := cache.NewListingCache(cfg.RedisAddress)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = listingCache.Close() }()

	assetStore, err := s3.NewS3Storage(
		cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey,
		cfg.MinIOBucket, cfg.MinIOUseSSL, log,
	)
	if err != nil {
		log.Fatal("failed to initialize asset store", zap.Error(err))
	}

	publisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		log.Fatal("failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	listingRepo := mongodb.NewListingRepository(db, log)
	userRepo := mongodb.NewUserRepository(db, log)

	guard := auth.NewGuard()
	coordinator := media.NewCoordinator(assetStore, log, metricsManager)

	listingUC := listingusecase.NewListingUsecase(
		listingRepo, listingCache, guard, coordinator, publisher, metricsManager, log,
	)
	if cfg.MailerEnabled {
		listingUC = listingUC.WithMailer(mailer.NewMailer(), userRepo)
	}
	userUC := userusecase.NewUserUsecase(userRepo, guard, coordinator, publisher, log)

	listingHandler := httpadapter.NewListingHandler(listingUC, log)
	userHandler := httpadapter.NewUserHandler(userUC, log)
	router := httpadapter.NewRouter(listingHandler, userHandler, log, cfg.JWTSecret)

	metricsServer := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: promhttp.HandlerFor(metricsManager.Registry, promhttp.HandlerOpts{}),
	}
	go func() {
		log.Info("metrics server listening", zap.String("port", cfg.MetricsPort))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}
	go func() {
		log.Info("http server listening", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("metrics shutdown failed", zap.Error(err))
	}

	// let scheduled remote deletions finish before the process exits
	coordinator.Drain()

	log.Info("shutdown complete")
}
