package analysis

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// DefaultFileName is used in report metadata when the request names no file.
const DefaultFileName = "Resume"

// Request is one résumé/job pair to analyze.
type Request struct {
	ResumeText     string `json:"resumeText" validate:"required"`
	JobDescription string `json:"jobDescription" validate:"required"`
	FileName       string `json:"fileName,omitempty"`
}

var validate = validator.New()

// ValidationError reports an input field that fails its rules.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Validate checks required fields and the minimum trimmed lengths.
func (r Request) Validate(minResume, minJob int) error {
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{
				Field:   jsonFieldName(fieldErrs[0].Field()),
				Message: "is required",
			}
		}
		return &ValidationError{Field: "request", Message: err.Error()}
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(r.ResumeText)); n < minResume {
		return &ValidationError{
			Field:   "resumeText",
			Message: fmt.Sprintf("must be at least %d characters, got %d", minResume, n),
		}
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(r.JobDescription)); n < minJob {
		return &ValidationError{
			Field:   "jobDescription",
			Message: fmt.Sprintf("must be at least %d characters, got %d", minJob, n),
		}
	}
	return nil
}

func jsonFieldName(field string) string {
	switch field {
	case "ResumeText":
		return "resumeText"
	case "JobDescription":
		return "jobDescription"
	}
	return field
}
