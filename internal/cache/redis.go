// Package cache fronts the roster listings with Redis. The service
// works without it: when no Redis URL is configured every call is a
// no-op / miss, so a dev setup needs nothing but MongoDB.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// ListTTL bounds how stale a cached roster listing may be if an
	// invalidation is ever missed.
	ListTTL = 60 * time.Second

	listPrefix = "roster:"
)

var (
	redisClient *redis.Client
	enabled     bool
	log         = zap.NewNop()
)

// ListKey is the cache key for a role's listing.
func ListKey(role string) string {
	return listPrefix + role
}

// Initialize sets up the Redis connection if a URL is provided.
func Initialize(redisURL string, logger *zap.Logger) {
	if logger != nil {
		log = logger
	}
	if redisURL == "" {
		log.Info("redis url not provided, caching disabled")
		enabled = false
		return
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn("failed to parse redis url, caching disabled", zap.Error(err))
		enabled = false
		return
	}

	redisClient = redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("failed to connect to redis, caching disabled", zap.Error(err))
		enabled = false
		return
	}

	enabled = true
	log.Info("redis cache initialized")
}

func Close() {
	if redisClient != nil {
		redisClient.Close()
	}
}

// Set stores a value with expiration. Failures are logged, never
// returned: a cache problem must not fail the request.
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if !enabled {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := redisClient.Set(ctx, key, data, expiration).Err(); err != nil {
		log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Get retrieves a value; any error (including a plain miss) reports
// false and the caller falls through to the store.
func Get(ctx context.Context, key string, dest interface{}) bool {
	if !enabled {
		return false
	}
	data, err := redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Warn("cache unmarshal failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Invalidate drops a role's cached listing after a mutation.
func Invalidate(ctx context.Context, role string) {
	if !enabled {
		return
	}
	if err := redisClient.Del(ctx, ListKey(role)).Err(); err != nil {
		log.Warn("cache invalidate failed", zap.String("role", role), zap.Error(err))
	}
}
