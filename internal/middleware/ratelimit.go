package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricestats/internal/domain/dto"
)

// DefaultRateLimit is used when RateLimiter receives a non-positive limit.
const DefaultRateLimit = 60

// window is the fixed rate-limit window; tests shorten it.
var window = time.Minute

type client struct {
	windowStart time.Time
	count       int
}

// limiter counts requests per client IP in fixed windows. Clients whose
// window expired are swept at most once per window.
type limiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	clients   map[string]*client
	lastSweep time.Time
}

func newLimiter(limit int, w time.Duration) *limiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	return &limiter{limit: limit, window: w, clients: make(map[string]*client)}
}

// allow records one request from ip at now and reports whether it fits the budget.
func (l *limiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.window {
		for k, cl := range l.clients {
			if now.Sub(cl.windowStart) > l.window {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	cl, ok := l.clients[ip]
	if !ok || now.Sub(cl.windowStart) > l.window {
		cl = &client{windowStart: now}
		l.clients[ip] = cl
	}
	cl.count++
	return cl.count <= l.limit
}

// RateLimiter limits each client IP to perWindow requests per minute and
// answers 429 Too Many Requests beyond that. Every call returns a limiter
// with its own counters.
//
// Usage:
//
//	router.Use(middleware.RateLimiter(config.AppConfig.Server.RateLimitPerMinute))
func RateLimiter(perWindow int) gin.HandlerFunc {
	l := newLimiter(perWindow, window)

	return func(c *gin.Context) {
		if !l.allow(c.ClientIP(), time.Now()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}

		c.Next()
	}
}
