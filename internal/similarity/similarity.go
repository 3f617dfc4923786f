// Package similarity scores how close a résumé is to a job description, using
// provider embeddings with a lexical-overlap fallback.
package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/ats-checker/internal/llm"
	"github.com/jonathan/ats-checker/internal/logging"
	"github.com/jonathan/ats-checker/internal/types"
	"go.uber.org/zap"
)

// MaxTextLength is the number of characters of each text sent to the embedder.
const MaxTextLength = 2000

// ErrDimensionMismatch is returned by Cosine for vectors of different lengths.
var ErrDimensionMismatch = errors.New("vectors must have the same length")

// Result is a similarity in [0,1] and where it came from.
type Result struct {
	Value  float64
	Source types.Source
}

// Scorer computes semantic similarity between two texts.
type Scorer struct {
	embedder llm.Embedder
	logger   *zap.Logger
}

// NewScorer creates a Scorer. A nil embedder always uses the Jaccard fallback.
func NewScorer(embedder llm.Embedder, logger *zap.Logger) *Scorer {
	return &Scorer{
		embedder: embedder,
		logger:   logging.OrNop(logger),
	}
}

// Score embeds both texts and returns their clamped cosine similarity. Any
// embedding failure falls back to Jaccard similarity. Vectors of different
// lengths violate the provider contract and resolve to 0.
func (s *Scorer) Score(ctx context.Context, a, b string) Result {
	if s.embedder == nil {
		return Result{Value: Jaccard(a, b), Source: types.SourceFallback}
	}

	vecA, vecB, err := s.embedPair(ctx, a, b)
	if err != nil {
		s.logger.Warn("embedding failed, using lexical similarity", zap.Error(err))
		return Result{Value: Jaccard(a, b), Source: types.SourceFallback}
	}

	value, err := Cosine(vecA, vecB)
	if err != nil {
		s.logger.Error("embedding provider returned inconsistent vectors",
			zap.Error(err),
			zap.Int("len_a", len(vecA)),
			zap.Int("len_b", len(vecB)),
		)
		return Result{Value: 0, Source: types.SourceFallback}
	}

	return Result{Value: clamp01(value), Source: types.SourceProvider}
}

func (s *Scorer) embedPair(ctx context.Context, a, b string) ([]float64, []float64, error) {
	vecA, err := s.embedder.Embed(ctx, llm.Truncate(a, MaxTextLength))
	if err != nil {
		return nil, nil, fmt.Errorf("embed first text: %w", err)
	}
	vecB, err := s.embedder.Embed(ctx, llm.Truncate(b, MaxTextLength))
	if err != nil {
		return nil, nil, fmt.Errorf("embed second text: %w", err)
	}
	return vecA, vecB, nil
}

// Cosine returns the cosine similarity of two vectors. A zero-norm vector yields 0.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Jaccard returns |A∩B| / |A∪B| over the lowercase whitespace-separated words
// of a and b. Two empty texts yield 0.
func Jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	union := len(setA)
	intersection := 0
	for w := range setB {
		if _, ok := setA[w]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
