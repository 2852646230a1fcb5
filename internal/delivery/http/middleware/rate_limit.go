package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"careerai-backend/internal/delivery/http/response"
	"careerai-backend/internal/domain"
	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for one limiter.
type RateLimitConfig struct {
	// Requests per window
	Limit  int
	Window time.Duration
	// Key prefix in Redis, e.g. "rl:ip:"
	KeyPrefix string
	// Reject instead of falling back to memory when Redis errors
	FailClosed bool
	// Default: client IP
	KeyFunc func(*gin.Context) string
}

// Atomic increment with TTL on first hit.
// KEYS[1] = counter key, ARGV[1] = TTL seconds. Returns {count, ttl}.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`)

type windowEntry struct {
	count   int
	resetAt time.Time
}

// RateLimiter counts requests per key in fixed windows. Counters live in
// Redis when a client is configured and in process memory otherwise or when
// Redis fails (unless FailClosed).
type RateLimiter struct {
	client *goredis.Client
	secLog *security.SecurityLogger
	now    func() time.Time

	mu        sync.Mutex
	entries   map[string]*windowEntry
	nextSweep time.Time
}

func NewRateLimiter(client *goredis.Client, secLog *security.SecurityLogger) *RateLimiter {
	if secLog == nil {
		secLog = security.NopLogger()
	}
	return &RateLimiter{
		client:  client,
		secLog:  secLog,
		now:     time.Now,
		entries: make(map[string]*windowEntry),
	}
}

// GlobalConfig is the default per-IP limit for every route.
func GlobalConfig(limit int, window time.Duration) RateLimitConfig {
	if limit <= 0 {
		limit = 100
	}
	return RateLimitConfig{Limit: limit, Window: window, KeyPrefix: "rl:ip:"}
}

// AuthConfig is the stricter per-IP limit for login and signup.
func AuthConfig(limit int, window time.Duration) RateLimitConfig {
	if limit <= 0 {
		limit = 10
	}
	return RateLimitConfig{Limit: limit, Window: window, KeyPrefix: "rl:auth:", FailClosed: true}
}

// Middleware enforces config on every request it wraps.
func (rl *RateLimiter) Middleware(config RateLimitConfig) gin.HandlerFunc {
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)

		var (
			count   int
			resetAt time.Time
			err     error
		)
		if rl.client != nil {
			count, resetAt, err = rl.incrRedis(c.Request.Context(), fullKey, config.Window)
			if err != nil {
				if config.FailClosed {
					rl.secLog.Log(c.Request.Context(), security.SecurityEvent{
						Event:       security.EventRateLimitTriggered,
						SubjectType: "system",
						IP:          c.ClientIP(),
						Details:     map[string]interface{}{"error_type": "redis_error", "error": err.Error()},
					})
					response.Fail(c, apperror.New(http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", err))
					c.Abort()
					return
				}
				count, resetAt = rl.incrMemory(fullKey, config.Window)
			}
		} else {
			count, resetAt = rl.incrMemory(fullKey, config.Window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(resetAt.Sub(rl.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			rl.secLog.LogRateLimitTriggered(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"),
				c.GetString(string(domain.KeyRequestID)), c.FullPath())

			response.Fail(c, apperror.TooManyRequests("Rate limit exceeded. Please try again later."))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
		c.Next()
	}
}

func (rl *RateLimiter) incrRedis(ctx context.Context, key string, window time.Duration) (int, time.Time, error) {
	result, err := rateLimitScript.Run(ctx, rl.client, []string{key}, int(window.Seconds())).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), rl.now().Add(time.Duration(ttl) * time.Second), nil
}

func (rl *RateLimiter) incrMemory(key string, window time.Duration) (int, time.Time) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.After(rl.nextSweep) {
		for k, e := range rl.entries {
			if now.After(e.resetAt) {
				delete(rl.entries, k)
			}
		}
		rl.nextSweep = now.Add(5 * time.Minute)
	}

	e, ok := rl.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &windowEntry{resetAt: now.Add(window)}
		rl.entries[key] = e
	}
	e.count++
	return e.count, e.resetAt
}
