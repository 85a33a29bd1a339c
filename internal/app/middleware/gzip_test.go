package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipMiddleware_CompressesResponse(t *testing.T) {
	r := gin.New()
	r.Use(GzipMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello World!")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	r.ServeHTTP(w, req)
	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, "gzip", res.Header.Get("Content-Encoding"))

	gz, err := gzip.NewReader(res.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", string(body))
}

func TestGzipMiddleware_DecompressesRequest(t *testing.T) {
	r := gin.New()
	r.Use(GzipMiddleware())
	r.POST("/shorten", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(body))
	})

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(`{"url":"docker.com"}`))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/shorten", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"url":"docker.com"}`, w.Body.String())
}

func TestGzipMiddleware_InvalidBody(t *testing.T) {
	r := gin.New()
	r.Use(GzipMiddleware())
	r.POST("/shorten", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/shorten", bytes.NewReader([]byte("plain")))
	req.Header.Set("Content-Encoding", "gzip")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
