package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/aseptimu/link-shortener/internal/app/config"
	"github.com/aseptimu/link-shortener/internal/app/logger"
	"github.com/aseptimu/link-shortener/internal/app/server"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	sugar, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("cannot init logger: %v", err)
	}
	defer sugar.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app, err := server.New(ctx, cfg, sugar)
	if err != nil {
		sugar.Fatalw("Failed to initialize service", "error", err)
	}

	if err := app.Run(ctx); err != nil {
		sugar.Fatalw("Server failed", "address", cfg.ServerAddress, "error", err)
	}
	sugar.Infow("Server stopped")
}
