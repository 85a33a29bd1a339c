// Package server собирает зависимости сервиса и запускает его.
package server

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/aseptimu/link-shortener/internal/app/config"
	httphandlers "github.com/aseptimu/link-shortener/internal/app/handlers/http"
	"github.com/aseptimu/link-shortener/internal/app/handlers/http/healthhandlers"
	httpserver "github.com/aseptimu/link-shortener/internal/app/server/http"
	"github.com/aseptimu/link-shortener/internal/app/service"
	"github.com/aseptimu/link-shortener/internal/app/store"
	"go.uber.org/zap"
)

// App — собранный сервис: хранилище, бизнес-логика и HTTP-сервер.
type App struct {
	store  store.Store
	server *httpserver.Server
	logger *zap.SugaredLogger
}

// New собирает App по конфигурации. Хранилище выбирается явно через cfg.StoreBackend.
func New(ctx context.Context, cfg *config.ConfigType, logger *zap.SugaredLogger) (*App, error) {
	st, err := store.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	keys, err := service.NewKeyGenerator(rand.New(rand.NewSource(time.Now().UnixNano())), cfg.KeyLength)
	if err != nil {
		st.Close()
		return nil, err
	}

	urlService, err := service.NewURLService(st, keys,
		service.WithCollisionPolicy(service.CollisionPolicy(cfg.CollisionPolicy)),
		service.WithKeyAttempts(cfg.KeyAttempts),
		service.WithReservedKeys(httphandlers.ReservedKeys(cfg.EnableMetrics)...),
		service.WithLogger(logger),
	)
	if err != nil {
		st.Close()
		return nil, err
	}

	var pinger healthhandlers.Pinger
	if p, ok := st.(healthhandlers.Pinger); ok {
		pinger = p
	}

	h := httphandlers.New(cfg, urlService, pinger, logger)
	router := httpserver.NewRouter(logger, h, cfg.EnableMetrics)

	logger.Infow("Service configured",
		"backend", cfg.StoreBackend,
		"collisionPolicy", cfg.CollisionPolicy,
		"keyLength", cfg.KeyLength,
	)

	return &App{
		store:  st,
		server: httpserver.NewServer(cfg.ServerAddress, router, logger),
		logger: logger,
	}, nil
}

// Run обслуживает запросы до отмены ctx и закрывает хранилище.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.logger.Errorw("Failed to close store", "error", err)
		}
	}()
	return a.server.Run(ctx)
}
