// redis.go
package repository

import (
	"context"
	"fmt"

	"go-sortgame/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis opens a client and pings it once.
func InitRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis connect %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}
