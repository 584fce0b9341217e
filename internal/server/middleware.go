package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chatbotht/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// requestLogger tags each request with an id and logs it once it finishes.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)

		c.Next()

		logger.Info("request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP())
	}
}
