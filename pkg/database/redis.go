package database

import (
	"context"
	"log"
	"net"
	"strconv"
	"time"

	"madrasa_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects the client and verifies it with a bounded ping.
// Learner progress maps live here; MySQL only mirrors their summaries.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Println("Redis connection established")
	return client, nil
}
