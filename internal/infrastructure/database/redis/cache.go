package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

var (
	ErrCacheMiss           = errors.New(errors.ErrCodeNotFound, "cache miss")
	ErrSerializationFailed = errors.New(errors.ErrCodeSerialization, "serialization failed")
)

// Cache is a JSON cache over Redis.  GetJSON reports misses via its boolean
// return so callers never branch on sentinel errors.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
	GetOrLoad(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error
	Ping(ctx context.Context) error
}

type jsonCache struct {
	client     *redis.Client
	logger     logging.Logger
	prefix     string
	defaultTTL time.Duration
	group      singleflight.Group
}

// CacheOption customizes a Cache.
type CacheOption func(*jsonCache)

// WithPrefix sets the key namespace.
func WithPrefix(prefix string) CacheOption {
	return func(c *jsonCache) { c.prefix = prefix }
}

// WithDefaultTTL sets the TTL applied when SetJSON receives zero.
func WithDefaultTTL(ttl time.Duration) CacheOption {
	return func(c *jsonCache) { c.defaultTTL = ttl }
}

// NewCache constructs the JSON cache.
func NewCache(client *redis.Client, log logging.Logger, opts ...CacheOption) Cache {
	if log == nil {
		log = logging.NewNopLogger()
	}
	c := &jsonCache{
		client:     client,
		logger:     log,
		prefix:     "sentinel:",
		defaultTTL: 10 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *jsonCache) fullKey(key string) string {
	return c.prefix + key
}

// jitterTTL spreads expirations by +/-10% so keyed-by-date entries do not
// expire as a stampede.
func (c *jsonCache) jitterTTL(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return 0
	}
	jitter := float64(ttl) * 0.1 * (rand.Float64()*2 - 1)
	return ttl + time.Duration(jitter)
}

func (c *jsonCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, c.fullKey(key)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, errors.CodeCacheError, "failed to read from cache")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, ErrSerializationFailed
	}
	return true, nil
}

func (c *jsonCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	data, err := json.Marshal(value)
	if err != nil {
		return ErrSerializationFailed
	}
	if err := c.client.Set(ctx, c.fullKey(key), data, c.jitterTTL(ttl)).Err(); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to write to cache")
	}
	return nil
}

func (c *jsonCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	fullKeys := make([]string, len(keys))
	for i, k := range keys {
		fullKeys[i] = c.fullKey(k)
	}
	if err := c.client.Del(ctx, fullKeys...).Err(); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to delete cache keys")
	}
	return nil
}

func (c *jsonCache) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	var deleted int64
	var cursor uint64
	match := c.fullKey(prefix) + "*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, 100).Result()
		if err != nil {
			return deleted, errors.Wrap(err, errors.CodeCacheError, "failed to scan cache keys")
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, errors.Wrap(err, errors.CodeCacheError, "failed to delete cache keys")
			}
			deleted += int64(len(keys))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return deleted, nil
}

// GetOrLoad returns the cached value or invokes loader exactly once per key
// across concurrent callers, caching its result.
func (c *jsonCache) GetOrLoad(ctx context.Context, key string, dest interface{}, ttl time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	hit, err := c.GetJSON(ctx, key, dest)
	if err != nil {
		return err
	}
	if hit {
		return nil
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if setErr := c.SetJSON(ctx, key, v, ttl); setErr != nil {
			c.logger.Warn("cache backfill failed", logging.String("key", key), logging.Err(setErr))
		}
		return v, nil
	})
	if err != nil {
		return err
	}

	data, err := json.Marshal(val)
	if err != nil {
		return ErrSerializationFailed
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return ErrSerializationFailed
	}
	return nil
}

func (c *jsonCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "cache ping failed")
	}
	return nil
}
