// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	domainerror "github.com/finance-tracker/client/internal/domain/error"
	"github.com/finance-tracker/client/internal/integration/entrypoint/dto"
)

const (
	// defaultRequestsPerSecond is the default steady request rate per client.
	defaultRequestsPerSecond = 2
	// defaultBurst is the default number of requests allowed at once.
	defaultBurst = 20
	// defaultIdleTimeout is how long an idle client keeps its limiter.
	defaultIdleTimeout = 3 * time.Minute
)

// visitor tracks the token bucket of a single client.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter provides token-bucket, IP-based rate limiting. Every request to
// the API counts, since each mutation fans out to several finance API calls.
type RateLimiter struct {
	mu          sync.Mutex
	visitors    map[string]*visitor
	limit       rate.Limit
	burst       int
	idleTimeout time.Duration
	now         func() time.Time
}

// NewRateLimiter creates a new rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultRequestsPerSecond, defaultBurst, defaultIdleTimeout)
}

// NewRateLimiterWithConfig creates a rate limiter allowing rps requests per
// second with the given burst per client.
func NewRateLimiterWithConfig(rps float64, burst int, idleTimeout time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors:    make(map[string]*visitor),
		limit:       rate.Limit(rps),
		burst:       burst,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		allowed, retryAfter := rl.allow(clientIP)
		if !allowed {
			if retryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			}
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow takes a token for key and, when none is available, reports how long
// until the next one.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	now := rl.now()
	limiter := rl.visitor(key, now)

	reservation := limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, 0
	}
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) visitor(key string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Reset clears the rate limiter state (useful for testing).
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.visitors = make(map[string]*visitor)
}

// Cleanup drops clients idle for longer than the idle timeout. It is called
// periodically to free memory.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idleTimeout {
			delete(rl.visitors, key)
		}
	}
}

// IdleTimeout returns how long an idle client keeps its limiter.
func (rl *RateLimiter) IdleTimeout() time.Duration {
	return rl.idleTimeout
}
