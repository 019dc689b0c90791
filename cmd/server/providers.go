// File: cmd/server/providers.go
package main

import (
	"context"
	"fmt"
	"log"

	"mottars_backend/internal/config"
	"mottars_backend/internal/filestorage"
	"mottars_backend/internal/listing"
	"mottars_backend/internal/platform/cache"
	"mottars_backend/internal/platform/database"
	"mottars_backend/internal/platform/logger"
	"mottars_backend/internal/verification"
	"mottars_backend/internal/view"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	l, err := logger.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	cleanup := func() {
		if err := l.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
	}
	return l, cleanup, nil
}

// provideDatabase opens the database, migrates every table and seeds the
// fixture dataset when SEED_DATASET is set and the cars table is empty.
func provideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { database.CloseGORMDB(db, logger) }

	if err := listing.Migrate(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to migrate dataset tables: %w", err)
	}
	if err := verification.Migrate(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to migrate verification tables: %w", err)
	}

	if cfg.SeedDataset {
		seeded, err := listing.SeedIfEmpty(context.Background(), db)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if seeded {
			logger.Info("Fixture dataset loaded")
		}
	}
	return db, cleanup, nil
}

func provideRedis(cfg *config.Config, logger *zap.Logger) (*redis.Client, func(), error) {
	client, err := cache.NewRedisClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { cache.CloseRedis(client, logger) }, nil
}

// provideViewRegistry tears every open view down on shutdown so pending
// simulated tasks never fire against a closed store.
func provideViewRegistry(clk clockwork.Clock, logger *zap.Logger) (*view.Registry, func()) {
	registry := view.NewRegistry(clk, logger)
	return registry, func() {
		if n := registry.CloseAll(); n > 0 {
			logger.Info("Closed open views", zap.Int("count", n))
		}
	}
}

func provideFileStorage(cfg *config.Config, logger *zap.Logger) (*filestorage.FileStorageService, error) {
	return filestorage.NewFileStorageService(cfg.ImageStoragePath, cfg.ImagePublicBaseURL, logger)
}
