package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS embedding_cache (
	key        TEXT PRIMARY KEY,
	vector     DOUBLE PRECISION[] NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore keeps embeddings in the embedding_cache table.
type PostgresStore struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// ConnectPostgres establishes a connection pool and verifies it with a ping.
func ConnectPostgres(ctx context.Context, databaseURL string, ttl time.Duration) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL is required for the postgres cache")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool, ttl: ttl}, nil
}

// EnsureSchema creates the cache table when it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create embedding_cache table: %w", err)
	}
	return nil
}

// Get returns the unexpired vector stored under key.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]float64, bool, error) {
	var vector []float64
	err := s.pool.QueryRow(ctx,
		`SELECT vector FROM embedding_cache WHERE key = $1 AND expires_at > NOW()`,
		key,
	).Scan(&vector)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get embedding: %w", err)
	}
	return vector, true, nil
}

// Put stores vector under key, replacing any previous entry.
func (s *PostgresStore) Put(ctx context.Context, key string, vector []float64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO embedding_cache (key, vector, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET vector = $2, created_at = NOW(), expires_at = $3`,
		key, vector, time.Now().Add(s.ttl),
	)
	if err != nil {
		return fmt.Errorf("failed to put embedding: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired entries and returns how many were removed.
func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM embedding_cache WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge embeddings: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
