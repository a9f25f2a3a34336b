package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/type/response"
	"github.com/redis/go-redis/v9"
)

// RateLimit enforces a per-IP fixed window limit backed by Redis so the
// count survives restarts and is shared across instances. When Redis is
// not configured the limiter falls back to an in-process token bucket.
func RateLimit(limit int, window time.Duration) fiber.Handler {
	fallback := newTokenBucket(limit, limit)

	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if ip == "" {
			ip = "unknown"
		}

		if common.Redis == nil {
			if !fallback.allow(ip) {
				return response.SendTooManyRequests(c, "Too many requests, slow down")
			}
			return c.Next()
		}

		allowed, err := allowRedis(c.Context(), common.Redis, ip, limit, window)
		if err != nil {
			// A broken limiter must not take the API down with it.
			slog.Warn("RateLimit: redis check failed, allowing request", "error", err, "ip", ip)
			return c.Next()
		}
		if !allowed {
			return response.SendTooManyRequests(c, "Too many requests, slow down")
		}

		return c.Next()
	}
}

func allowRedis(ctx context.Context, client *redis.Client, ip string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/int64(window.Seconds()))

	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		client.Expire(ctx, key, window)
	}

	return count <= int64(limit), nil
}

type tokenBucket struct {
	capacity int
	rate     int
	mu       sync.Mutex
	state    map[string]*bucket
}

type bucket struct {
	tokens int
	last   time.Time
}

func newTokenBucket(capacity, perMinute int) *tokenBucket {
	if capacity <= 0 {
		capacity = perMinute
	}
	return &tokenBucket{
		capacity: capacity,
		rate:     perMinute,
		state:    make(map[string]*bucket),
	}
}

func (l *tokenBucket) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.state[key]
	now := time.Now()
	if !ok {
		l.state[key] = &bucket{tokens: l.capacity - 1, last: now}
		return true
	}

	elapsed := now.Sub(b.last).Minutes()
	refill := int(elapsed * float64(l.rate))
	if refill > 0 {
		b.tokens += refill
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
