// Package store содержит реализации хранилища коротких ссылок.
package store

import (
	"context"
	"fmt"

	"github.com/aseptimu/link-shortener/internal/app/config"
	"github.com/aseptimu/link-shortener/internal/app/service"
	"go.uber.org/zap"
)

const MigrationsDir = "./migrations"

// Store — хранилище, которое нужно закрыть при остановке сервиса.
type Store interface {
	service.Store
	Close() error
}

var (
	_ Store = (*InMemoryStore)(nil)
	_ Store = (*FileStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = (*Database)(nil)
)

// New создаёт хранилище, выбранное cfg.StoreBackend.
func New(ctx context.Context, cfg *config.ConfigType, logger *zap.SugaredLogger) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		logger.Infow("In-memory storage mode enabled")
		return NewInMemoryStore(), nil
	case config.BackendFile:
		logger.Infow("File storage mode enabled", "storagePath", cfg.FileStoragePath)
		fs, err := NewFileStore(cfg.FileStoragePath)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case config.BackendRedis:
		logger.Infow("Redis storage mode enabled", "address", cfg.StoreAddr(), "db", cfg.StoreDB)
		return NewRedisStore(RedisOptions{
			Addr:       cfg.StoreAddr(),
			Password:   cfg.StorePassword,
			DB:         cfg.StoreDB,
			Timeout:    cfg.StoreTimeout,
			MaxRetries: cfg.StoreMaxRetries,
		}, logger), nil
	case config.BackendPostgres:
		logger.Infow("Database mode enabled, running migrations")
		if err := MigrateDB(cfg.DSN, MigrationsDir, logger); err != nil {
			return nil, err
		}
		db, err := NewDB(ctx, cfg.DSN, cfg.StoreTimeout, logger)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	return nil, fmt.Errorf("%w: unknown store backend %q", service.ErrInvalidConfig, cfg.StoreBackend)
}
