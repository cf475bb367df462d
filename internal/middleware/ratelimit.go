package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stabletide/internal/domain/dto"
)

type client struct {
	windowStart time.Time
	count       int
}

// RateLimiter is a fixed-window, per-client-IP request limiter kept in memory.
// It protects POST /query, where every accepted request costs one call to the
// analysis service.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string]*client
}

// NewRateLimiter allows limit requests per window for each client IP.
// A limit <= 0 disables limiting.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

// Allow counts one request from ip and reports whether it is within the limit,
// along with the time left in the current window.
func (rl *RateLimiter) Allow(ip string) (bool, time.Duration) {
	if rl.limit <= 0 {
		return true, 0
	}
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) >= rl.window {
		rl.prune(now)
		cl = &client{windowStart: now}
		rl.clients[ip] = cl
	}
	cl.count++
	return cl.count <= rl.limit, rl.window - now.Sub(cl.windowStart)
}

// prune drops clients whose window has expired. Caller holds mu.
func (rl *RateLimiter) prune(now time.Time) {
	for ip, cl := range rl.clients {
		if now.Sub(cl.windowStart) >= rl.window {
			delete(rl.clients, ip)
		}
	}
}

// Handler returns the gin middleware. Rejected requests get 429 with a
// Retry-After header (seconds, rounded up) and an ErrorResponse body.
//
// Usage:
//
//	rl := middleware.NewRateLimiter(30, time.Minute)
//	router.POST("/query", rl.Handler(), h.SubmitQuery)
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, left := rl.Allow(c.ClientIP())
		if !ok {
			secs := int((left + time.Second - 1) / time.Second)
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
			return
		}
		c.Next()
	}
}
