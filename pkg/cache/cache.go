package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ICache defines the cache interface (abstract)
type ICache interface {
	// Get fetches a string value
	Get(ctx context.Context, key string) *redis.StringCmd
	// Set stores a string value with expiration
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	// Del removes keys
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	// Exists reports how many of the given keys exist
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	// TTL reports the remaining lifetime of a key
	TTL(ctx context.Context, key string) *redis.DurationCmd
	// Pipeline creates a command pipeline
	Pipeline() redis.Pipeliner
	// HSet sets hash fields
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	// HGetAll fetches all hash fields
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	// HDel removes hash fields
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
	// Expire sets a key lifetime
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	// Scan iterates keys matching a pattern
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}
