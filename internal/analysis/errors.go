package analysis

import "fmt"

// Error wraps a failure that aborted an analysis.
type Error struct {
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("Failed to analyze resume: %v", e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
