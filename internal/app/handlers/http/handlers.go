// Package http регистрирует HTTP-маршруты сервиса.
package http

import (
	"github.com/aseptimu/link-shortener/internal/app/config"
	"github.com/aseptimu/link-shortener/internal/app/handlers/http/healthhandlers"
	"github.com/aseptimu/link-shortener/internal/app/handlers/http/shortenurlhandlers"
	"github.com/aseptimu/link-shortener/internal/app/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	pingPath    = "ping"
	metricsPath = "metrics"
)

// ReservedKeys возвращает статические маршруты верхнего уровня,
// которые перекрыли бы GET /:hash для ключа с тем же именем.
func ReservedKeys(enableMetrics bool) []string {
	keys := []string{pingPath}
	if enableMetrics {
		keys = append(keys, metricsPath)
	}
	return keys
}

type Handlers interface {
	RegisterRoutes(r *gin.Engine)
}

// URLService — всё, что фасаду нужно от сервиса сокращения.
type URLService interface {
	service.URLShortener
	service.URLGetter
	healthhandlers.Greeter
}

type handlersImpl struct {
	cfg    *config.ConfigType
	svc    URLService
	pinger healthhandlers.Pinger
	logger *zap.SugaredLogger
}

func New(
	cfg *config.ConfigType,
	svc URLService,
	pinger healthhandlers.Pinger,
	logger *zap.SugaredLogger,
) Handlers {
	return &handlersImpl{
		cfg:    cfg,
		svc:    svc,
		pinger: pinger,
		logger: logger,
	}
}

func (h *handlersImpl) RegisterRoutes(r *gin.Engine) {
	health := healthhandlers.NewHealthHandler(h.svc, h.pinger)

	r.GET("/", health.Hello)
	r.GET("/"+pingPath, health.Ping)
	if h.cfg.EnableMetrics {
		// ответ сжимает GzipMiddleware
		metrics := promhttp.InstrumentMetricHandler(prometheus.DefaultRegisterer,
			promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{DisableCompression: true}))
		r.GET("/"+metricsPath, gin.WrapH(metrics))
	}
	r.POST("/shorten", shortenurlhandlers.NewShortenHandler(h.cfg, h.svc, h.logger).Shorten)
	r.GET("/:hash", shortenurlhandlers.NewGetURLHandler(h.svc, h.logger).GetURL)
}
