package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulseboard/pulseboard-backend/config"
	"github.com/pulseboard/pulseboard-backend/db"
	"github.com/pulseboard/pulseboard-backend/handlers"
	"github.com/pulseboard/pulseboard-backend/internal/store"
	"github.com/pulseboard/pulseboard-backend/internal/store/memory"
	"github.com/pulseboard/pulseboard-backend/internal/store/postgres"
	"github.com/pulseboard/pulseboard-backend/logger"
	"github.com/pulseboard/pulseboard-backend/models"
	"github.com/pulseboard/pulseboard-backend/router"
	"github.com/pulseboard/pulseboard-backend/services"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Feedback store selection
	var feedbackStore store.FeedbackStore
	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		if err := db.RunMigrations(cfg.Database.URL()); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()
		feedbackStore = postgres.NewFeedbackStore(pool)
	default:
		feedbackStore = memory.NewFeedbackStore()
	}
	log.Infow("Feedback store initialized", "backend", cfg.Storage.Backend)

	// Redis client, only when rate limiting is configured
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisOptions := &redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		if cfg.Server.Environment == config.EnvProduction {
			redisOptions.TLSConfig = &tls.Config{
				ServerName: cfg.Redis.Address,
				MinVersion: tls.VersionTLS12,
			}
		}
		redisClient = redis.NewClient(redisOptions)
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Warnw("Failed to close redis client", "error", err)
			}
		}()
	}

	feedbackModel := models.NewFeedbackModel(feedbackStore)
	healthService := services.NewHealthService(feedbackStore, redisClient, cfg.Server.Version)

	r := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		FeedbackHandler: handlers.NewFeedbackHandler(feedbackModel),
		HealthHandler:   handlers.NewHealthHandler(healthService),
		AdminHandler:    handlers.NewAdminHandler(feedbackModel, cfg),
		RedisClient:     redisClient,
		Logger:          log,
	})

	// Scheduled retention sweep
	if cfg.Retention.Enabled {
		retention := services.NewRetentionService(feedbackStore, cfg.Retention.Schedule)
		if err := retention.Start(); err != nil {
			log.Fatalf("Failed to start retention sweep: %v", err)
		}
		defer retention.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server shutdown failed", "error", err)
	}
	log.Info("Server stopped")
}
