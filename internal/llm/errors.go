package llm

import (
	"errors"
	"fmt"
)

// ErrNoProvider is returned by the stand-in client and embedder when no provider is configured.
var ErrNoProvider = errors.New("no LLM provider configured")

// APIError represents a failed provider call.
type APIError struct {
	Provider Provider
	Op       string
	Cause    error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s %s failed", e.Provider, e.Op)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}
