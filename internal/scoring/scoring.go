// Package scoring combines the per-component scores into the overall résumé score.
package scoring

import (
	"fmt"
	"math"
)

// Weights assigns the share of each component in the overall score.
type Weights struct {
	ATSCompatibility    float64
	KeywordMatch        float64
	ContentQuality      float64
	SectionCompleteness float64
	Readability         float64
}

// DefaultWeights are the standard component weights.
var DefaultWeights = Weights{
	ATSCompatibility:    0.25,
	KeywordMatch:        0.30,
	ContentQuality:      0.20,
	SectionCompleteness: 0.15,
	Readability:         0.10,
}

const weightTolerance = 1e-9

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.ATSCompatibility + w.KeywordMatch + w.ContentQuality + w.SectionCompleteness + w.Readability
}

// Validate checks that no weight is negative and the weights sum to 1.
func (w Weights) Validate() error {
	for _, v := range []float64{w.ATSCompatibility, w.KeywordMatch, w.ContentQuality, w.SectionCompleteness, w.Readability} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("invalid weight %v", v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights must sum to 1, got %v", sum)
	}
	return nil
}

// Components are the inputs to the aggregate. Similarity is in [0,1]; the rest are in [0,100].
type Components struct {
	ATSCompatibility    float64
	KeywordMatch        float64
	ContentQuality      float64
	SectionCompleteness float64
	Similarity          float64
}

// Breakdown holds the clamped component scores on the 0-100 scale.
type Breakdown struct {
	ATSCompatibility    float64
	KeywordMatch        float64
	ContentQuality      float64
	SectionCompleteness float64
	Readability         float64
}

// Normalize clamps every component to [0,100] and converts similarity to readability.
func Normalize(c Components) Breakdown {
	return Breakdown{
		ATSCompatibility:    clamp(c.ATSCompatibility),
		KeywordMatch:        clamp(c.KeywordMatch),
		ContentQuality:      clamp(c.ContentQuality),
		SectionCompleteness: clamp(c.SectionCompleteness),
		Readability:         clamp(c.Similarity * 100),
	}
}

// Overall computes the weighted score with DefaultWeights.
func Overall(c Components) float64 {
	return OverallWith(DefaultWeights, c)
}

// OverallWith computes the weighted score with w. The result is in [0,100].
func OverallWith(w Weights, c Components) float64 {
	b := Normalize(c)
	total := b.ATSCompatibility*w.ATSCompatibility +
		b.KeywordMatch*w.KeywordMatch +
		b.ContentQuality*w.ContentQuality +
		b.SectionCompleteness*w.SectionCompleteness +
		b.Readability*w.Readability
	return math.Min(clamp(total), 100)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
