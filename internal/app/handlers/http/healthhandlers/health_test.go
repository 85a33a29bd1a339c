package healthhandlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	err error
}

func (f *fakeStore) Ping(_ context.Context) error {
	return f.err
}

type fakeGreeter struct{}

func (fakeGreeter) Hello() string { return "Hello World!" }

func serve(t *testing.T, handler *HealthHandler, path string) (*http.Response, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", handler.Hello)
	router.GET("/ping", handler.Ping)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	res := w.Result()
	t.Cleanup(func() { res.Body.Close() })
	body, _ := io.ReadAll(res.Body)
	return res, string(body)
}

func TestHello(t *testing.T) {
	res, body := serve(t, NewHealthHandler(fakeGreeter{}, nil), "/")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Hello World!", body)
}

func TestPing_NoStore(t *testing.T) {
	res, body := serve(t, NewHealthHandler(fakeGreeter{}, nil), "/ping")
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.JSONEq(t, `{"error":"Store doesn't support ping"}`, body)
}

func TestPing_StoreFails(t *testing.T) {
	res, body := serve(t, NewHealthHandler(fakeGreeter{}, &fakeStore{err: errors.New("fail ping")}), "/ping")
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.JSONEq(t, `{"error":"fail ping"}`, body)
}

func TestPing_OK(t *testing.T) {
	res, body := serve(t, NewHealthHandler(fakeGreeter{}, &fakeStore{}), "/ping")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, body)
}
