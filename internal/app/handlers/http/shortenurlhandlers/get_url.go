package shortenurlhandlers

import (
	"errors"
	"net/http"

	"github.com/aseptimu/link-shortener/internal/app/service"
	"github.com/aseptimu/link-shortener/internal/app/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetURLHandler перенаправляет по короткому ключу на исходный URL.
type GetURLHandler struct {
	Service service.URLGetter
	logger  *zap.SugaredLogger
}

// NewGetURLHandler создаёт новый экземпляр GetURLHandler.
func NewGetURLHandler(service service.URLGetter, logger *zap.SugaredLogger) *GetURLHandler {
	return &GetURLHandler{Service: service, logger: logger}
}

// GetURL обрабатывает GET /:hash.
func (h *GetURLHandler) GetURL(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	key := c.Param("hash")
	originalURL, err := h.Service.Retrieve(c.Request.Context(), key)
	if err != nil {
		if !errors.Is(err, service.ErrURLNotFound) {
			h.logger.Errorw("Failed to retrieve URL", "key", key, "error", err)
		}
		abortWithError(c, statusFor(err), err.Error())
		return
	}

	c.Header("Location", originalURL)
	c.Header("Content-Type", "text/plain")
	c.String(http.StatusTemporaryRedirect, originalURL)
}
