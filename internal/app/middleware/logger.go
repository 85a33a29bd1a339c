package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type (
	responseData struct {
		status int
		size   int
	}

	loggingResponseWriter struct {
		gin.ResponseWriter
		responseData *responseData
	}
)

func (l *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := l.ResponseWriter.Write(b)
	l.responseData.size += size
	return size, err
}

func (l *loggingResponseWriter) WriteHeader(statusCode int) {
	l.ResponseWriter.WriteHeader(statusCode)
	l.responseData.status = statusCode
}

// MiddlewareLogger пишет по строке лога на каждый запрос: путь, метод,
// длительность, статус, размер ответа и идентификатор запроса.
func MiddlewareLogger(sugar *zap.SugaredLogger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		responseData := &responseData{}

		ctx.Writer = &loggingResponseWriter{
			ResponseWriter: ctx.Writer,
			responseData:   responseData,
		}

		now := time.Now()
		ctx.Next()
		duration := time.Since(now)

		status := responseData.status
		if status == 0 {
			status = ctx.Writer.Status()
		}

		sugar.Infow(
			"Request",
			"uri", ctx.Request.URL.Path,
			"method", ctx.Request.Method,
			"duration", duration,
			"status", status,
			"size", responseData.size,
			"request_id", ctx.GetString(RequestIDKey),
		)
	}
}
