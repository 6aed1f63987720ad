// Package main loads parks and volunteers reference data for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/parkops/events-backend/config"
	"github.com/parkops/events-backend/internal/auth"
	"github.com/parkops/events-backend/pkg/database"
)

func main() {
	fixturePath := flag.String("fixture", "./data/seed.yaml", "YAML fixture with parks and volunteers")
	printToken := flag.Bool("print-token", false, "print a coordinator token for local API calls")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.Level())
	defer logger.Sync()

	fixture, err := LoadFixture(*fixturePath)
	if err != nil {
		logger.Fatal("fixture", zap.String("path", *fixturePath), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), cfg.Database.MaxConns, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	parks, volunteers, err := fixture.Apply(ctx, pool)
	if err != nil {
		logger.Fatal("seed", zap.Error(err))
	}
	logger.Info("seed complete", zap.Int64("parks_added", parks), zap.Int64("volunteers_added", volunteers))

	if *printToken {
		token, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours).
			Generate(1, "coordinacion@parques.local", "coordinator")
		if err != nil {
			logger.Fatal("token", zap.Error(err))
		}
		fmt.Println(token)
	}
}

func newLogger(level zapcore.Level) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
