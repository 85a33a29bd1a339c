// Package http поднимает HTTP-сервер на gin и останавливает его по отмене контекста.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	httphandlers "github.com/aseptimu/link-shortener/internal/app/handlers/http"
	"github.com/aseptimu/link-shortener/internal/app/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	srv    *http.Server
	logger *zap.SugaredLogger
}

// NewRouter собирает gin.Engine со всеми middleware и маршрутами.
func NewRouter(logger *zap.SugaredLogger, h httphandlers.Handlers, enableMetrics bool) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	logger.Debug("Setting up middleware")
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.MiddlewareLogger(logger), middleware.GzipMiddleware())
	if enableMetrics {
		r.Use(middleware.Metrics())
	}
	h.RegisterRoutes(r)
	return r
}

func NewServer(addr string, handler http.Handler, logger *zap.SugaredLogger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Run слушает адрес сервера до отмены ctx, затем плавно завершает активные запросы.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Infow("Starting HTTP server", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Infow("Shutting down server", "addr", s.srv.Addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Errorw("Error shutting down server", "error", err)
			return err
		}
		return nil
	})

	return g.Wait()
}
