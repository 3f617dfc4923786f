package analysis

import "time"

// Fallback components reported to an Observer.
const (
	ComponentKeywords    = "keywords"
	ComponentSimilarity  = "similarity"
	ComponentSuggestions = "suggestions"
)

// Observer receives analysis telemetry.
type Observer interface {
	ObserveFallback(component string)
	ObserveAnalysis(duration time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveFallback(string) {}

func (nopObserver) ObserveAnalysis(time.Duration, error) {}
