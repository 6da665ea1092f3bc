package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/gymmawy/gymmawy/internal/config"
)

func rateLimitedRouter(maxRequests int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Configuration{}
	cfg.RateLimit.MaxRequests = maxRequests
	cfg.RateLimit.Window = window

	router := gin.New()
	router.Use(NewRateLimiter(cfg).Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doPing(router *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterThrottlesBurst(t *testing.T) {
	router := rateLimitedRouter(2, time.Minute)

	assert.Equal(t, http.StatusOK, doPing(router, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, doPing(router, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, doPing(router, "10.0.0.1"))
}

func TestRateLimiterIsPerClient(t *testing.T) {
	router := rateLimitedRouter(1, time.Minute)

	assert.Equal(t, http.StatusOK, doPing(router, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, doPing(router, "10.0.0.1"))

	// A different client keeps its own bucket.
	assert.Equal(t, http.StatusOK, doPing(router, "10.0.0.2"))
}
