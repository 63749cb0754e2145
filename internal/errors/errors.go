package errors

import (
	"fmt"
	"net/http"
)

// Code identifies one entry of the flat oEmbed error taxonomy
type Code string

const (
	CodeMissingURL            Code = "MISSING_URL"
	CodeInvalidURL            Code = "INVALID_URL"
	CodeMalformedURL          Code = "MALFORMED_URL"
	CodeUnauthorizedDomain    Code = "UNAUTHORIZED_DOMAIN"
	CodeInvalidFormat         Code = "INVALID_FORMAT"
	CodeInvalidMaxWidth       Code = "INVALID_MAXWIDTH"
	CodeInvalidMaxHeight      Code = "INVALID_MAXHEIGHT"
	CodeContentNotFound       Code = "CONTENT_NOT_FOUND"
	CodeBackendError          Code = "BACKEND_ERROR"
	CodeMissingProviderDomain Code = "MISSING_PROVIDER_DOMAIN"
	CodeMissingRequiredField  Code = "MISSING_REQUIRED_FIELD"
	CodeInternalError         Code = "INTERNAL_ERROR"
)

// StatusForCode maps an error code to its HTTP status. Unknown codes fall
// back to 500.
func StatusForCode(code Code) int {
	switch code {
	case CodeMissingURL, CodeInvalidURL, CodeMalformedURL, CodeInvalidMaxWidth, CodeInvalidMaxHeight:
		return http.StatusBadRequest
	case CodeInvalidFormat:
		return http.StatusNotImplemented
	case CodeUnauthorizedDomain, CodeContentNotFound:
		return http.StatusNotFound
	case CodeMissingProviderDomain, CodeBackendError, CodeMissingRequiredField, CodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// AppError represents a structured application error
type AppError struct {
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	StatusCode int    `json:"status_code"`
	Cause      error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an error for the given code with the status that code maps to
func New(code Code, message string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: StatusForCode(code),
		Cause:      cause,
	}
}

// NewWithDetails creates an error carrying a caller-visible details string
func NewWithDetails(code Code, message, details string, cause error) *AppError {
	err := New(code, message, cause)
	err.Details = details
	return err
}

// NewInternalError creates a generic internal error with a safe message. The
// cause is kept for logging only and never surfaces to the caller.
func NewInternalError(message string, cause error) *AppError {
	return New(CodeInternalError, message, cause)
}

// IsCode checks if the error is an AppError with the given code
func IsCode(err error, code Code) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// GetCode extracts the taxonomy code from an error, defaulting to
// INTERNAL_ERROR for plain errors.
func GetCode(err error) Code {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternalError
}
