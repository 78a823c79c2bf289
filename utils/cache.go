// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"clinicvoice/config"

	"github.com/go-redis/redis/v8"
)

// SessionCacheClient backs call conversation contexts when SESSION_STORE=redis.
var SessionCacheClient *redis.Client

// InitSessionCache initializes the Redis client used for call sessions.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionCacheClient returns the Redis client for call sessions.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}
