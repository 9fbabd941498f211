package middleware

import (
	"log/slog"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/items-api/internal/apperr"
	"github.com/iliyamo/items-api/internal/config"
)

// decision is the outcome of one counter increment.
type decision struct {
	allowed    bool
	remaining  int64
	retryAfter time.Duration
}

// windowScript increments the per-client counter and pins the window
// TTL on first touch. Running it as a single script keeps increments
// atomic for concurrent requests from the same client.
var windowScript = redis.NewScript(`
	local current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	return { current, ttl }
`)

// memoryLimiter is the in-process fallback used when no Redis client is
// available. Counters for the same client key are serialized by the
// mutex so concurrent requests never undercount.
type memoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	count   int64
	resetAt time.Time
}

func newMemoryLimiter(window time.Duration) *memoryLimiter {
	return &memoryLimiter{window: window, entries: make(map[string]*memoryEntry)}
}

func (l *memoryLimiter) allow(key string, limit int64) decision {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, k)
		}
	}
	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &memoryEntry{resetAt: now.Add(l.window)}
		l.entries[key] = e
	}
	e.count++
	remaining := limit - e.count
	if remaining < 0 {
		remaining = 0
	}
	return decision{
		allowed:    e.count <= limit,
		remaining:  remaining,
		retryAfter: time.Until(e.resetAt),
	}
}

// RateLimit enforces a fixed quota per rolling window keyed by client
// network address. With a Redis client the counter is shared across
// replicas; without one it falls back to process memory. Redis errors
// fail open with a warning rather than taking the API down with the
// cache. The health endpoint is exempt.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client, log *slog.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	mem := newMemoryLimiter(cfg.Window)
	limit := int64(cfg.Limit)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().URL.Path == "/healthz" {
				return next(c)
			}
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			key := cfg.Prefix + ":ip:" + ip

			var d decision
			if rdb != nil {
				vals, err := windowScript.Run(c.Request().Context(), rdb,
					[]string{key}, cfg.Window.Milliseconds()).Int64Slice()
				if err != nil || len(vals) != 2 {
					log.Warn("rate limiter redis error, failing open",
						"key", key, "error", errString(err))
					return next(c)
				}
				remaining := limit - vals[0]
				if remaining < 0 {
					remaining = 0
				}
				d = decision{
					allowed:    vals[0] <= limit,
					remaining:  remaining,
					retryAfter: time.Duration(vals[1]) * time.Millisecond,
				}
			} else {
				d = mem.allow(key, limit)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(d.remaining, 10))

			if !d.allowed {
				secs := int(math.Ceil(d.retryAfter.Seconds()))
				if secs < 0 {
					secs = 0
				}
				return apperr.RateLimited(strconv.Itoa(secs))
			}
			return next(c)
		}
	}
}

func errString(err error) string {
	if err == nil {
		return "unexpected script result"
	}
	return err.Error()
}
