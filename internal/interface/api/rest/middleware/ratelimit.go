package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultCleanupInterval = 5 * time.Minute

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	logger          *zap.Logger
	limit           rate.Limit
	burst           int
	cleanupInterval time.Duration
	now             func() time.Time

	mu       sync.Mutex
	limiters map[string]*clientLimiter
}

func NewRateLimiter(logger *zap.Logger, perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		logger:          logger,
		limit:           rate.Limit(perSecond),
		burst:           burst,
		cleanupInterval: defaultCleanupInterval,
		now:             time.Now,
		limiters:        make(map[string]*clientLimiter),
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.limiterFor(ip).AllowN(rl.now(), 1) {
			rl.logger.Warn("rate limit exceeded",
				zap.String("client_ip", ip),
				zap.String("path", c.FullPath()),
			)
			c.Header("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
			c.AbortWithStatusJSON(
				http.StatusTooManyRequests,
				gin.H{"success": false, "error": "Too many requests"},
			)
			return
		}

		c.Next()
	}
}

// CleanupWorker evicts idle buckets until ctx is done.
func (rl *RateLimiter) CleanupWorker(ctx context.Context) {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastAccess = rl.now()

	return cl.limiter
}

// cleanup drops buckets idle for more than two cleanup intervals.
func (rl *RateLimiter) cleanup() {
	ttl := rl.cleanupInterval * 2
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, key)
		}
	}
}

func (rl *RateLimiter) retryAfterSeconds() int {
	if rl.limit <= 0 {
		return 1
	}
	sec := int(math.Ceil(1.0 / float64(rl.limit)))
	if sec < 1 {
		sec = 1
	}
	return sec
}
