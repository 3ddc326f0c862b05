package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelstack/dvdrental-backend/internal/platform/logger"
)

// RequestLog logs one line per request with method, path, status and latency.
func RequestLog(log *logger.Logger) gin.HandlerFunc {
	log = log.With("middleware", "request_log")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
