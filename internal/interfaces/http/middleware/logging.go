// Package middleware provides the gin middleware chain: request logging,
// CORS, and per-client rate limiting.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/prometheus"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns a request id when the client did not send one and echoes
// it back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one structured line per request and records HTTP
// metrics.  metrics may be nil.
func RequestLogger(log logging.Logger, metrics *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()

		if metrics != nil {
			prometheus.RecordHTTPRequest(metrics, c.Request.Method, path, status, elapsed)
		}

		fields := []logging.Field{
			logging.String("method", c.Request.Method),
			logging.String("path", path),
			logging.Int("status", status),
			logging.Duration("elapsed", elapsed),
			logging.String("client_ip", c.ClientIP()),
			logging.String("request_id", c.GetString("request_id")),
		}
		switch {
		case status >= 500:
			log.Error("http request", fields...)
		case status >= 400:
			log.Warn("http request", fields...)
		default:
			log.Info("http request", fields...)
		}
	}
}
