// Package main runs the park events HTTP API with graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/parkops/events-backend/config"
	"github.com/parkops/events-backend/internal/auth"
	"github.com/parkops/events-backend/internal/evaluations"
	"github.com/parkops/events-backend/internal/events"
	"github.com/parkops/events-backend/internal/notifications"
	"github.com/parkops/events-backend/internal/participants"
	"github.com/parkops/events-backend/internal/resources"
	"github.com/parkops/events-backend/internal/staff"
	"github.com/parkops/events-backend/pkg/database"
	"github.com/parkops/events-backend/pkg/queue"
	"github.com/parkops/events-backend/pkg/redis"
	"github.com/parkops/events-backend/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		newLogger(zapcore.InfoLevel).Fatal("load config", zap.Error(err))
	}
	logger := newLogger(cfg.Level())
	defer logger.Sync()
	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), cfg.Database.MaxConns, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// Notifications are best effort: without Redis, registrations are accepted and nothing is enqueued.
	var notifier participants.Notifier
	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Warn("redis unavailable, notifications disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		notifier = notifications.NewEnqueuer(queue.NewQueue(rdb.Client, logger))
	}

	eventRepo := events.NewRepository(pool)
	participantRepo := participants.NewRepository(pool)
	resourceRepo := resources.NewRepository(pool)
	staffRepo := staff.NewRepository(pool)
	evaluationRepo := evaluations.NewRepository(pool)
	notificationRepo := notifications.NewRepository(pool)

	eventSvc := events.NewService(eventRepo, events.Details{
		Resources:     resourceRepo,
		Registrations: participantRepo,
		Staff:         staffRepo,
		Evaluations:   evaluationRepo,
	})

	participantSvc := participants.NewService(participantRepo, eventRepo, notifier, logger)
	if cfg.AWS.Enabled() {
		s3Client, err := storage.NewS3(ctx, storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			Endpoint:             cfg.AWS.Endpoint,
			ExportsBucket:        cfg.AWS.ExportsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		} else {
			participantSvc.WithExports(s3Client)
		}
	}

	h := handlers{
		events:        events.NewHandler(eventSvc, logger),
		participants:  participants.NewHandler(participantSvc, logger),
		resources:     resources.NewHandler(resources.NewService(resourceRepo, eventRepo), logger),
		staff:         staff.NewHandler(staff.NewService(staffRepo, eventRepo), logger),
		evaluations:   evaluations.NewHandler(evaluations.NewService(evaluationRepo, eventRepo), logger),
		notifications: notifications.NewHandler(notificationRepo, eventRepo, logger),
	}
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)
	router := newRouter(h, jwtService, cfg.Server.CORSAllowedOrigins, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level zapcore.Level) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
