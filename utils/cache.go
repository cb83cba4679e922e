package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCacheTTL = time.Hour
	cacheOpTimeout  = 2 * time.Second
	scanBatch       = 1000
	// Bounds a prefix sweep so a huge keyspace cannot stall a request.
	maxScanRounds = 10
)

// withCache runs fn against the shared client with a bounded context. It is a
// no-op when caching is disabled.
func withCache(timeout time.Duration, fn func(ctx context.Context, rc *redis.Client)) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	fn(ctx, rc)
}

// CacheGetBytes returns the cached value of key. A disabled cache always misses.
func CacheGetBytes(key string) (b []byte, ok bool) {
	withCache(cacheOpTimeout, func(ctx context.Context, rc *redis.Client) {
		v, err := rc.Get(ctx, key).Bytes()
		if err != nil {
			Sugar.Debugf("cache get miss key=%s err=%v", key, err)
			return
		}
		b, ok = v, true
	})
	return b, ok
}

// CacheSetBytes stores b under key; a non-positive ttl means one hour.
func CacheSetBytes(key string, b []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	withCache(cacheOpTimeout, func(ctx context.Context, rc *redis.Client) {
		if err := rc.Set(ctx, key, b, ttl).Err(); err != nil {
			Sugar.Warnf("cache set failed key=%s err=%v", key, err)
		}
	})
}

// CacheSetJSON marshals v and stores the JSON bytes.
func CacheSetJSON(key string, v interface{}, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		Sugar.Warnf("cache marshal failed key=%s err=%v", key, err)
		return
	}
	CacheSetBytes(key, b, ttl)
}

// CacheSetSuccess stores data wrapped in the success envelope, ready to be
// served verbatim by a later CacheGetBytes hit.
func CacheSetSuccess(key string, data interface{}, ttl time.Duration) {
	CacheSetJSON(key, JSONResponse{Code: 0, Message: "success", Data: data}, ttl)
}

// CacheDelete removes exact keys.
func CacheDelete(keys ...string) {
	if len(keys) == 0 {
		return
	}
	withCache(cacheOpTimeout, func(ctx context.Context, rc *redis.Client) {
		if err := rc.Del(ctx, keys...).Err(); err != nil {
			Sugar.Warnf("cache delete failed keys=%v err=%v", keys, err)
		}
	})
}

// InvalidateByPrefix deletes every key starting with prefix using SCAN.
func InvalidateByPrefix(prefix string) {
	withCache(3*time.Second, func(ctx context.Context, rc *redis.Client) {
		var cursor uint64
		for round := 0; round < maxScanRounds; round++ {
			keys, next, err := rc.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
			if err != nil {
				Sugar.Warnf("cache scan failed prefix=%s err=%v", prefix, err)
				return
			}
			if len(keys) > 0 {
				if err := rc.Del(ctx, keys...).Err(); err != nil {
					Sugar.Warnf("cache delete failed prefix=%s err=%v", prefix, err)
				}
			}
			cursor = next
			if cursor == 0 {
				return
			}
		}
	})
}
