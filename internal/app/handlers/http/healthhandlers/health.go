// Package healthhandlers содержит HTTP-хендлеры проверки живости сервиса и хранилища.
package healthhandlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger умеет проверять доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Greeter interface {
	Hello() string
}

type HealthHandler struct {
	greeter Greeter
	store   Pinger
}

// NewHealthHandler создаёт HealthHandler. store может быть nil,
// если выбранное хранилище не поддерживает проверку.
func NewHealthHandler(greeter Greeter, store Pinger) *HealthHandler {
	return &HealthHandler{greeter: greeter, store: store}
}

// Hello обрабатывает GET /.
func (h *HealthHandler) Hello(c *gin.Context) {
	c.String(http.StatusOK, h.greeter.Hello())
}

// Ping обрабатывает GET /ping.
// Без Pinger отдаёт 503, при ошибке Ping — 500, иначе 200.
func (h *HealthHandler) Ping(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Store doesn't support ping"})
		return
	}

	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}
