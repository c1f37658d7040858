package config

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects the shared Redis client. Redis backs the product cache
// and the voice rate limiter; both degrade gracefully, so a failed connection
// only disables them.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if _, err := RedisClient.Ping(context.Background()).Result(); err != nil {
		log.Printf("⚠️ Redis unavailable at %s: %v (caching and rate limiting disabled)", addr, err)
		RedisClient = nil
		return
	}
	log.Println("✅ Redis connected")
}
