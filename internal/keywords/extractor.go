// Package keywords extracts ranked keywords from free text and matches résumé
// keywords against job keywords.
package keywords

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/ats-checker/internal/logging"
	"github.com/jonathan/ats-checker/internal/types"
	"go.uber.org/zap"
)

const (
	// DefaultMaxKeywords is the extraction cap used when none is given.
	DefaultMaxKeywords = 30
	// DisplayKeywords is the number of keywords shown per side in reports.
	DisplayKeywords = 20
	// EnhancerInputSize is the number of top basic keywords handed to an Enhancer.
	EnhancerInputSize = 15
	// minTokenLength is the shortest token kept; shorter tokens are noise.
	minTokenLength = 3
)

var nonWord = regexp.MustCompile(`[^\w\s]`)

// Enhancer refines a basic keyword list using the original text.
// Implementations return an error when they cannot produce a list.
type Enhancer interface {
	Enhance(ctx context.Context, text string, keywords []string) ([]string, error)
}

// Extraction is the ranked keyword list and where it came from.
type Extraction struct {
	Keywords []string
	Source   types.Source
}

// Extractor produces ranked keyword lists, optionally refined by an Enhancer.
type Extractor struct {
	enhancer Enhancer
	logger   *zap.Logger
}

// NewExtractor creates an Extractor. A nil enhancer disables refinement.
func NewExtractor(enhancer Enhancer, logger *zap.Logger) *Extractor {
	return &Extractor{
		enhancer: enhancer,
		logger:   logging.OrNop(logger),
	}
}

// Extract returns up to max keywords for text. If the enhancer fails or
// returns nothing usable, the basic frequency list is returned unchanged.
func (e *Extractor) Extract(ctx context.Context, text string, max int) Extraction {
	if max <= 0 {
		max = DefaultMaxKeywords
	}
	basic := ExtractBasic(text, max)
	fallback := Extraction{Keywords: basic, Source: types.SourceFallback}

	if e.enhancer == nil || len(basic) == 0 {
		return fallback
	}

	top := append([]string(nil), basic[:min(EnhancerInputSize, len(basic))]...)
	enhanced, err := e.enhancer.Enhance(ctx, text, top)
	if err != nil {
		e.logger.Warn("keyword enhancement failed, using basic keywords",
			zap.Error(err),
			zap.Int("basic_count", len(basic)),
		)
		return fallback
	}

	cleaned := normalize(enhanced, max)
	if len(cleaned) == 0 {
		e.logger.Warn("keyword enhancement returned no usable keywords, using basic keywords")
		return fallback
	}

	e.logger.Debug("keywords enhanced",
		zap.Int("basic_count", len(basic)),
		zap.Int("enhanced_count", len(cleaned)),
	)
	return Extraction{Keywords: cleaned, Source: types.SourceProvider}
}

// Tokenize lowercases text, replaces non-word characters with spaces and
// splits on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(nonWord.ReplaceAllString(strings.ToLower(text), " "))
}

// ExtractBasic ranks stopword-filtered tokens longer than two characters by
// descending frequency. Ties keep first-occurrence order.
func ExtractBasic(text string, max int) []string {
	if max <= 0 {
		max = DefaultMaxKeywords
	}

	counts := make(map[string]int)
	var order []string
	for _, token := range Tokenize(text) {
		if len(token) < minTokenLength || IsStopword(token) {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > max {
		order = order[:max]
	}
	return order
}

// normalize lowercases, trims and de-duplicates provider keywords, keeping order.
func normalize(keywords []string, max int) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
		if len(out) == max {
			break
		}
	}
	return out
}
