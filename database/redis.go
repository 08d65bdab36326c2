// database/redis.go - Redis connection for the leaderboard cache
package database

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedis connects the leaderboard cache. Redis is optional; when it is
// unreachable the leaderboard falls back to hitting Postgres directly.
func InitRedis() {
	host := getEnvOrDefault("REDIS_HOST", "localhost")
	port := getEnvOrDefault("REDIS_PORT", "6379")

	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: getEnvOrDefault("REDIS_PASSWORD", ""),
		DB:       0,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("⚠️ Redis not reachable (%v), leaderboard caching disabled", err)
		redisClient = nil
		return
	}

	log.Println("✅ Redis connected successfully")
}

// GetRedis returns the cache client, or nil when caching is disabled.
func GetRedis() *redis.Client {
	return redisClient
}

// CloseRedis closes the cache connection.
func CloseRedis() error {
	if redisClient == nil {
		return nil
	}
	return redisClient.Close()
}
