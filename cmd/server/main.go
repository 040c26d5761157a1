package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/madhuka-dev/dataclaim-service/internal/adapter/httpapi"
	kafkaadapter "github.com/madhuka-dev/dataclaim-service/internal/adapter/kafka"
	"github.com/madhuka-dev/dataclaim-service/internal/config"
	"github.com/madhuka-dev/dataclaim-service/internal/observability"
	"github.com/madhuka-dev/dataclaim-service/internal/service"
	"github.com/madhuka-dev/dataclaim-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// The store connects lazily on the first request that needs it.
	cache := store.NewCache(cfg.MongoURI, logger, metrics)
	claimStore := store.NewClaimStore(cache)
	locationStore := store.NewLocationStore(cache)

	// Claim event publishing (feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS).
	var publisher service.ClaimPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("claim event publishing enabled", "topic", cfg.KafkaClaimsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("claim event publishing disabled")
	}

	claims := service.NewClaimIngestion(claimStore, publisher, logger, metrics)
	catalog := service.NewLocationCatalog(locationStore, logger, metrics)

	handler := httpapi.NewHandler(claims, catalog, cache, logger)
	srv := httpapi.NewServer(cfg.HTTPAddr, handler, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	logger.Info("data claim service started", "addr", cfg.HTTPAddr)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if err := cache.Close(shutdownCtx); err != nil {
		logger.Error("mongo disconnect error", "error", err)
	}

	logger.Info("shutdown complete")
}
