package cache

import (
	"context"
	"fmt"

	"tourbase/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// Connect builds and pings the redis client backing the rate limiter.
func Connect(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return rdb, nil
}
