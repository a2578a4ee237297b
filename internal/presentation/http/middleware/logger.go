package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LoggerMiddleware logs every request with a short request ID. Invoice
// generation posts and idempotent replays get an extra marker so the
// generation audit trail can be grepped out of the log stream.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		method := c.Request.Method

		fullPath := path
		if raw != "" {
			fullPath = path + "?" + raw
		}

		marker := ""
		if method == http.MethodPost && strings.HasSuffix(path, "/invoices") {
			marker = " | generate"
			if c.Writer.Header().Get("X-Idempotency-Replayed") == "true" {
				marker = " | generate(replay)"
			}
		}

		log.Printf("[%s] %s | %d | %v | %s | %s%s",
			requestID[:8],
			method,
			statusCode,
			latency,
			c.ClientIP(),
			fullPath,
			marker,
		)

		if len(c.Errors) > 0 {
			for _, e := range c.Errors {
				log.Printf("[%s] Error: %v", requestID[:8], e.Err)
			}
		}
	}
}
