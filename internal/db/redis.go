package db

import (
	"context"
	"time"

	"github.com/ozgur/teamup/internal/config"
	"github.com/ozgur/teamup/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis using the provided configuration.
// Redis only carries best-effort notification fan-out, so an unreachable
// server downgrades to a warning instead of failing startup.
func NewRedisClient(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Unable to reach redis, notification fan-out disabled")
	} else {
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to redis")
	}

	return client
}
