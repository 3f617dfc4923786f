package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecodeclub/ecache"
	eredis "github.com/ecodeclub/ecache/redis"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// redisNamespace prefixes every key written by RedisStore.
const redisNamespace = "ats:"

// RedisStore keeps embeddings as JSON values with a TTL.
type RedisStore struct {
	cache  ecache.Cache
	client *redis.Client
	ttl    time.Duration
}

// DialRedis connects to addr and verifies the connection with a ping.
func DialRedis(ctx context.Context, addr string, ttl time.Duration) (*RedisStore, error) {
	if addr == "" {
		return nil, errors.New("redis address is required for the redis cache")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to ping redis")
	}

	store := NewRedisStore(eredis.NewCache(client), ttl)
	store.client = client
	return store, nil
}

// NewRedisStore wraps an existing cache. Keys are namespaced under "ats:".
func NewRedisStore(c ecache.Cache, ttl time.Duration) *RedisStore {
	return &RedisStore{
		cache: &ecache.NamespaceCache{
			C:         c,
			Namespace: redisNamespace,
		},
		ttl: ttl,
	}
}

// Get returns the vector stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]float64, bool, error) {
	val := s.cache.Get(ctx, key)
	if val.KeyNotFound() {
		return nil, false, nil
	}
	if val.Err != nil {
		return nil, false, errors.Wrap(val.Err, "failed to get embedding")
	}

	var vector []float64
	if err := val.JSONScan(&vector); err != nil {
		return nil, false, errors.Wrap(err, "failed to decode embedding")
	}
	return vector, true, nil
}

// Put stores vector under key with the store TTL.
func (s *RedisStore) Put(ctx context.Context, key string, vector []float64) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return errors.Wrap(err, "failed to encode embedding")
	}
	return errors.Wrap(s.cache.Set(ctx, key, data, s.ttl), "failed to put embedding")
}

// Delete removes key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	_, err := s.cache.Delete(ctx, key)
	return errors.Wrap(err, "failed to delete embedding")
}

// Close closes the underlying client when the store owns it.
func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
