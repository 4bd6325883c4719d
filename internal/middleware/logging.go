// Package middleware provides gin middleware for request logging and metrics.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trendboard/channel-trends-go/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestLogging assigns each request an ID and logs method, path, status and
// latency once the handler chain completes. An inbound X-Request-ID is kept.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("requestID", requestID)
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("requestId", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIp", c.ClientIP()),
		}

		if c.Writer.Status() >= 500 {
			logger.Log.Error("Request completed", fields...)
		} else {
			logger.Log.Info("Request completed", fields...)
		}
	}
}
