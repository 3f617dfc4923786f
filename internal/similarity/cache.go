package similarity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/jonathan/ats-checker/internal/llm"
	"github.com/jonathan/ats-checker/internal/logging"
	"go.uber.org/zap"
)

// EmbeddingStore persists embeddings by key. Get reports found=false on a miss.
type EmbeddingStore interface {
	Get(ctx context.Context, key string) (vector []float64, found bool, err error)
	Put(ctx context.Context, key string, vector []float64) error
}

// CachedEmbedder serves embeddings from a store and fills it on a miss.
// Store failures are logged and never fail the embedding.
type CachedEmbedder struct {
	inner  llm.Embedder
	store  EmbeddingStore
	model  string
	logger *zap.Logger
}

// NewCachedEmbedder wraps inner with store. model namespaces keys so that
// vectors from different models never mix.
func NewCachedEmbedder(inner llm.Embedder, store EmbeddingStore, model string, logger *zap.Logger) *CachedEmbedder {
	return &CachedEmbedder{
		inner:  inner,
		store:  store,
		model:  model,
		logger: logging.OrNop(logger),
	}
}

// Embed returns the cached vector for text or asks the inner embedder.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	key := CacheKey(c.model, text)

	vector, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("embedding cache read failed", zap.String("key", key), zap.Error(err))
	} else if found {
		c.logger.Debug("embedding cache hit", zap.String("key", key))
		return vector, nil
	}

	vector, err = c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.store.Put(ctx, key, vector); err != nil {
		c.logger.Warn("embedding cache write failed", zap.String("key", key), zap.Error(err))
	}
	return vector, nil
}

// CacheKey derives the store key for a model and text.
func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return "emb:" + model + ":" + hex.EncodeToString(sum[:])
}
