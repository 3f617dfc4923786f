// Package cache provides persistent embedding stores backed by PostgreSQL or Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/ats-checker/internal/similarity"
)

// DefaultTTL is how long cached embeddings stay valid.
const DefaultTTL = 24 * time.Hour

// Backend names.
const (
	BackendNone     = "none"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Options selects and configures a store.
type Options struct {
	Backend     string
	DatabaseURL string
	RedisAddr   string
	TTL         time.Duration
}

// Store is an embedding store that holds connections.
type Store interface {
	similarity.EmbeddingStore
	Close() error
}

// Open connects the configured backend. BackendNone and an empty backend
// return a nil Store and no error.
func Open(ctx context.Context, opts Options) (Store, error) {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	switch opts.Backend {
	case "", BackendNone:
		return nil, nil
	case BackendPostgres:
		store, err := ConnectPostgres(ctx, opts.DatabaseURL, ttl)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil
	case BackendRedis:
		store, err := DialRedis(ctx, opts.RedisAddr, ttl)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
