package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerMiddlewareAssignsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LoggerMiddleware())

	var ctxRequestID string
	router.POST("/api/v1/invoices", func(c *gin.Context) {
		ctxRequestID = c.GetString("request_id")
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", nil)
	router.ServeHTTP(w, req)

	require.NotEmpty(t, ctxRequestID)
	assert.Equal(t, ctxRequestID, w.Header().Get("X-Request-ID"))
}

func TestLoggerMiddlewareKeepsClientRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LoggerMiddleware())
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "11111111-2222-3333-4444-555555555555")
	router.ServeHTTP(w, req)

	assert.Equal(t, "11111111-2222-3333-4444-555555555555", w.Header().Get("X-Request-ID"))
}
