package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var (
	rdb     *redis.Client
	enabled bool

	// in-memory fallback when redis is not configured
	mu    sync.Mutex
	local = make(map[string]localEntry)
)

type localEntry struct {
	count     int64
	value     []byte
	expiresAt time.Time
}

// Init connects to redis when a URI is configured. Without one the package
// degrades to an in-process map, which is fine for a single instance.
func Init(uri string) {
	if uri == "" {
		log.Warn().Msg("REDIS_URI not set, using in-memory cache")
		return
	}
	opts, err := redis.ParseURL(uri)
	if err != nil {
		log.Warn().Err(err).Msg("invalid REDIS_URI, using in-memory cache")
		return
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, using in-memory cache")
		return
	}
	rdb = client
	enabled = true
	log.Info().Msg("connected to redis")
}

/*
* Bump the failed-login counter for a key and return the new count
* The first failure in a window starts the expiry clock
 */
func IncrAttempts(ctx context.Context, key string, window time.Duration) (int64, error) {
	if enabled {
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			return 0, err
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}
		return count, nil
	}

	mu.Lock()
	defer mu.Unlock()
	entry := local[key]
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		entry = localEntry{}
	}
	entry.count++
	if entry.count == 1 {
		entry.expiresAt = time.Now().Add(window)
	}
	local[key] = entry
	return entry.count, nil
}

// GetAttempts reads the current counter without touching it. Expired or
// missing keys read as zero.
func GetAttempts(ctx context.Context, key string) int64 {
	if enabled {
		count, err := rdb.Get(ctx, key).Int64()
		if err != nil {
			return 0
		}
		return count
	}

	mu.Lock()
	defer mu.Unlock()
	entry, ok := local[key]
	if !ok || (!entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt)) {
		return 0
	}
	return entry.count
}

func ResetAttempts(ctx context.Context, key string) {
	if enabled {
		rdb.Del(ctx, key)
		return
	}
	mu.Lock()
	defer mu.Unlock()
	delete(local, key)
}

// GetJSON loads a cached value into dest. Returns false on miss.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	var raw []byte
	if enabled {
		data, err := rdb.Get(ctx, key).Bytes()
		if err != nil {
			return false
		}
		raw = data
	} else {
		mu.Lock()
		entry, ok := local[key]
		mu.Unlock()
		if !ok || entry.value == nil || time.Now().After(entry.expiresAt) {
			return false
		}
		raw = entry.value
	}
	return json.Unmarshal(raw, dest) == nil
}

func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if enabled {
		if err := rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
		return
	}
	mu.Lock()
	local[key] = localEntry{value: raw, expiresAt: time.Now().Add(ttl)}
	mu.Unlock()
}

func Del(ctx context.Context, key string) {
	if enabled {
		rdb.Del(ctx, key)
		return
	}
	mu.Lock()
	delete(local, key)
	mu.Unlock()
}
