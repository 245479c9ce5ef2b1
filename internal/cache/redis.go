package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kindling-app/kindling-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// MatchIDsTTL bounds how long a user's matched-id list may be served from
// cache before falling back to the database.
const MatchIDsTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.RedisAddr,
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	if cfg.RedisDB != 0 {
		opts.DB = cfg.RedisDB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// KeyForMatchIDs generates the Redis key for a user's matched-id list.
func (c *RedisCache) KeyForMatchIDs(userID uint64) string {
	return fmt.Sprintf("matches:ids:%d", userID)
}

// GetMatchIDs returns the cached matched-id list for a user.
// The second return value reports a cache hit; a miss is not an error.
func (c *RedisCache) GetMatchIDs(ctx context.Context, userID uint64) ([]uint64, bool) {
	val, err := c.Client.Get(ctx, c.KeyForMatchIDs(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false // cache miss
	} else if err != nil {
		return nil, false
	}

	var ids []uint64
	if err := json.Unmarshal([]byte(val), &ids); err != nil {
		return nil, false
	}

	// refresh TTL on access
	_ = c.Client.Expire(ctx, c.KeyForMatchIDs(userID), MatchIDsTTL).Err()
	return ids, true
}

// SetMatchIDs stores a user's matched-id list with the standard TTL.
func (c *RedisCache) SetMatchIDs(ctx context.Context, userID uint64, ids []uint64) error {
	payload, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.KeyForMatchIDs(userID), payload, MatchIDsTTL).Err()
}

// InvalidateMatchIDs drops the cached list after a new match lands.
func (c *RedisCache) InvalidateMatchIDs(ctx context.Context, userID uint64) error {
	return c.Client.Del(ctx, c.KeyForMatchIDs(userID)).Err()
}
