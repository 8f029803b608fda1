package log

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader — заголовок с идентификатором запроса.
const RequestIDHeader = "X-Request-ID"

// Middleware присваивает запросу идентификатор, кладет логгер запроса
// в контекст и пишет строку лога по завершении.
func Middleware(base *Logger) gin.HandlerFunc {
	httpLogger := base.WithComponent(ComponentHTTP)

	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		reqLogger := httpLogger.With(FieldRequestID, requestID)
		c.Request = c.Request.WithContext(IntoContext(c.Request.Context(), reqLogger))

		started := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		attrs := []any{
			FieldMethod, c.Request.Method,
			FieldPath, c.Request.URL.Path,
			FieldQuery, c.Request.URL.RawQuery,
			FieldStatusCode, status,
			FieldDuration, time.Since(started).Milliseconds(),
			FieldClientIP, c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, FieldError, c.Errors.String())
		}
		reqLogger.Log(c.Request.Context(), level, "HTTP запрос обработан", attrs...)
	}
}
