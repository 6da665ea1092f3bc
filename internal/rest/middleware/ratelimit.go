package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/gymmawy/gymmawy/internal/config"
	ierr "github.com/gymmawy/gymmawy/internal/errors"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP using a token bucket sized
// from the configured window. Idle client buckets are evicted lazily.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter

	limit rate.Limit
	burst int
	ttl   time.Duration
}

func NewRateLimiter(cfg *config.Configuration) *RateLimiter {
	window := cfg.RateLimit.Window
	if window <= 0 {
		window = 15 * time.Minute
	}

	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(float64(cfg.RateLimit.MaxRequests) / window.Seconds()),
		burst:   cfg.RateLimit.MaxRequests,
		ttl:     window,
	}
}

func (rl *RateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if len(rl.clients) > 10000 {
		for ip, cl := range rl.clients {
			if now.Sub(cl.lastSeen) > rl.ttl {
				delete(rl.clients, ip)
			}
		}
	}

	cl, ok := rl.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// Middleware returns the gin handler enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.get(c.ClientIP()).Allow() {
			err := ierr.NewError("rate limit exceeded").
				WithHint("Too many requests, try again later").
				Mark(ierr.ErrPermissionDenied)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ierr.NewErrorResponse(err, false))
			return
		}
		c.Next()
	}
}
