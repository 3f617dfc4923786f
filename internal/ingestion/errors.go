package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for MIME types no extractor handles.
	ErrUnsupportedFormat = errors.New("unsupported file type")
	// ErrEmptyContent is returned when a document holds no readable text.
	ErrEmptyContent = errors.New("no text content found in document")
	// ErrFileTooLarge is returned when a document exceeds the size limit.
	ErrFileTooLarge = errors.New("file size exceeds maximum limit")
)

// ParseError wraps a decoder failure for a specific format.
type ParseError struct {
	MIMEType string
	Cause    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s document: %v", e.MIMEType, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// IsClientError reports whether err was caused by the uploaded document
// rather than by the service.
func IsClientError(err error) bool {
	var pe *ParseError
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrEmptyContent) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.As(err, &pe)
}
