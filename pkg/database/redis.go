package database

import (
	"context"
	"fmt"
	"time"

	"maitri-medico/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis returns nil (and no error) when no address is configured.
func ConnectRedis(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	zap.S().Infof("Redis connected at %s", cfg.Addr)
	return rdb, nil
}
