package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trendboard/channel-trends-go/internal/metrics"
)

// Metrics records request duration and in-flight count for Prometheus. The
// /metrics endpoint itself is not instrumented.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		metrics.RequestsInFlight.Inc()
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		metrics.RequestDuration.WithLabelValues(endpoint, c.Request.Method, status).Observe(duration)
		metrics.RequestsInFlight.Dec()
	}
}
