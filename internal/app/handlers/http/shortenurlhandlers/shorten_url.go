// Package shortenurlhandlers содержит HTTP-хендлеры для операций с короткими URL.
package shortenurlhandlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aseptimu/link-shortener/internal/app/config"
	"github.com/aseptimu/link-shortener/internal/app/service"
	"github.com/aseptimu/link-shortener/internal/app/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const noURLMessage = "No url provided. Please provide in the body. E.g. {'url':'https://google.com'}"

// ShortenResponse — ответ на успешное сокращение.
type ShortenResponse struct {
	Hash     string `json:"hash"`
	ShortURL string `json:"short_url"`
}

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// ShortenHandler обрабатывает создание коротких ссылок.
type ShortenHandler struct {
	cfg     *config.ConfigType
	Service service.URLShortener
	logger  *zap.SugaredLogger
}

// NewShortenHandler создаёт новый ShortenHandler,
// принимая конфиг, URLShortener и SugaredLogger.
func NewShortenHandler(cfg *config.ConfigType, service service.URLShortener, logger *zap.SugaredLogger) *ShortenHandler {
	return &ShortenHandler{cfg: cfg, Service: service, logger: logger}
}

// Shorten обрабатывает POST /shorten.
// URL берётся из JSON {"url": "..."}, поля формы url или query-параметра url.
// Без URL отвечает 400 и не обращается к сервису.
func (h *ShortenHandler) Shorten(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	input, err := requestURL(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if input == "" {
		abortWithError(c, http.StatusBadRequest, noURLMessage)
		return
	}

	key, err := h.Service.Shorten(c.Request.Context(), input)
	if err != nil {
		h.logger.Errorw("Failed to shorten URL", "url", input, "error", err)
		abortWithError(c, statusFor(err), err.Error())
		return
	}

	c.JSON(http.StatusCreated, ShortenResponse{
		Hash:     key,
		ShortURL: h.cfg.BaseAddress + "/" + key,
	})
}

func requestURL(c *gin.Context) (string, error) {
	var input string
	if c.ContentType() == gin.MIMEJSON {
		var req struct {
			URL string `json:"url"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			return "", err
		}
		input = req.URL
	} else {
		input = c.PostForm("url")
	}

	if input == "" {
		input = c.Query("url")
	}
	return strings.TrimSpace(input), nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrURLNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Code: status})
}
