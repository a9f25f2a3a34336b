package util

import (
	"context"
	"log/slog"
	"time"

	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/redis/go-redis/v9"
)

// InitRedis connects the shared redis client used by the rate limiter.
// Redis is optional; without it the limiter falls back to in-memory buckets.
func InitRedis() {
	if common.Config.Redis == nil || *common.Config.Redis == "" {
		slog.Info("Redis not configured, rate limiter will use in-memory state")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:         *common.Config.Redis,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis ping failed, rate limiter will use in-memory state", "error", err)
		return
	}

	slog.Info("Redis Connected!")
	common.Redis = client
}
