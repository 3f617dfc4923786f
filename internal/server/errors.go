// Package server provides the HTTP API for résumé analysis.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/ats-checker/internal/analysis"
	"github.com/jonathan/ats-checker/internal/fetch"
	"github.com/jonathan/ats-checker/internal/ingestion"
)

// RequestError reports a malformed request body or missing form field.
type RequestError struct {
	Title   string
	Message string
}

func (e *RequestError) Error() string {
	return e.Title + ": " + e.Message
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

const documentHelp = "Could not extract text from the uploaded file. Please ensure the file contains readable, selectable text (not a scanned image)."

// HTTPStatus returns the status code for an error.
func HTTPStatus(err error) int {
	var (
		reqErr   *RequestError
		fetchErr *fetch.Error
	)
	switch {
	case errors.As(err, &reqErr), analysis.IsValidationError(err), ingestion.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, fetch.ErrBlockedHost):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// errorBody builds the reply body for err. Internal errors do not leak their cause.
func errorBody(err error) ErrorResponse {
	var (
		reqErr   *RequestError
		valErr   *analysis.ValidationError
		fetchErr *fetch.Error
	)
	switch {
	case errors.As(err, &reqErr):
		return ErrorResponse{Error: reqErr.Title, Message: reqErr.Message}
	case errors.As(err, &valErr):
		return ErrorResponse{Error: "Validation failed", Message: valErr.Error()}
	case errors.Is(err, ingestion.ErrUnsupportedFormat):
		return ErrorResponse{Error: "Invalid file type", Message: "Only PDF, DOCX, TXT and HTML files are allowed."}
	case errors.Is(err, ingestion.ErrFileTooLarge):
		return ErrorResponse{Error: "File too large", Message: err.Error()}
	case ingestion.IsClientError(err):
		return ErrorResponse{Error: "Document parsing failed", Message: documentHelp}
	case errors.Is(err, fetch.ErrBlockedHost):
		return ErrorResponse{Error: "Job URL not allowed", Message: "The job URL must point to a public host."}
	case errors.As(err, &fetchErr):
		return ErrorResponse{Error: "Job posting fetch failed", Message: fetchErr.Error()}
	}
	return ErrorResponse{Error: "Internal server error", Message: "An unexpected error occurred. Please try again."}
}
