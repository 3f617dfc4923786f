// Package suggestions obtains qualitative improvement suggestions and a
// content-quality score from a generative provider, falling back to a fixed
// bundle whenever the provider fails or answers out of contract.
package suggestions

import (
	"context"
	"math"

	"github.com/jonathan/ats-checker/internal/logging"
	"github.com/jonathan/ats-checker/internal/types"
	"go.uber.org/zap"
)

// Caps applied to every bundle.
const (
	MaxGeneral      = 5
	MaxSpecific     = 5
	MaxActionVerbs  = 10
	MaxPowerPhrases = 5
)

// Request is the input to a suggestion provider.
type Request struct {
	ResumeText     string
	JobDescription string
	ResumeKeywords []string
	JobKeywords    []string
}

// Provider produces a suggestion bundle for a request.
type Provider interface {
	Suggest(ctx context.Context, req Request) (types.SuggestionBundle, error)
}

// Synthesizer wraps a Provider with the fixed fallback.
type Synthesizer struct {
	provider Provider
	logger   *zap.Logger
}

// NewSynthesizer creates a Synthesizer. A nil provider or a FallbackProvider
// always yields the fallback bundle.
func NewSynthesizer(provider Provider, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		provider: provider,
		logger:   logging.OrNop(logger),
	}
}

// Generate returns the provider's bundle with caps applied, or Fallback() on any error.
func (s *Synthesizer) Generate(ctx context.Context, req Request) (types.SuggestionBundle, types.Source) {
	if s.provider == nil {
		return Fallback(), types.SourceFallback
	}
	if _, ok := s.provider.(FallbackProvider); ok {
		return Fallback(), types.SourceFallback
	}

	bundle, err := s.provider.Suggest(ctx, req)
	if err != nil {
		s.logger.Warn("suggestion provider failed, using fallback bundle", zap.Error(err))
		return Fallback(), types.SourceFallback
	}

	return capBundle(bundle), types.SourceProvider
}

// Fallback returns a fresh copy of the fixed suggestion bundle.
func Fallback() types.SuggestionBundle {
	return types.SuggestionBundle{
		General:             []string{"Focus on quantifiable achievements", "Use more action verbs"},
		Specific:            []string{"Add more relevant keywords from the job description"},
		ActionVerbs:         []string{"Implemented", "Developed", "Managed", "Created", "Optimized"},
		PowerPhrases:        []string{"Increased efficiency by", "Led team of", "Reduced costs by"},
		ContentQualityScore: 75,
	}
}

// FallbackProvider is the deterministic provider used when no generative
// provider is configured.
type FallbackProvider struct{}

// Suggest returns Fallback().
func (FallbackProvider) Suggest(context.Context, Request) (types.SuggestionBundle, error) {
	return Fallback(), nil
}

func capBundle(b types.SuggestionBundle) types.SuggestionBundle {
	return types.SuggestionBundle{
		General:             capList(b.General, MaxGeneral),
		Specific:            capList(b.Specific, MaxSpecific),
		ActionVerbs:         capList(b.ActionVerbs, MaxActionVerbs),
		PowerPhrases:        capList(b.PowerPhrases, MaxPowerPhrases),
		ContentQualityScore: clampScore(b.ContentQualityScore),
	}
}

func capList(items []string, max int) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > max {
		items = items[:max]
	}
	return append([]string(nil), items...)
}

func clampScore(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
