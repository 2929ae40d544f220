package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yogastudio/yoga-app/internal/pkg/apperrors"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "AUTH_009"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeBadRequest       ErrorCode = "VAL_002"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

// Severity levels
const (
	ErrorSeverityError    ErrorSeverity = "ERROR"
	ErrorSeverityCritical ErrorSeverity = "CRITICAL"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code     ErrorCode     `json:"code" example:"AUTH_001"`
	Message  string        `json:"message" example:"Invalid credentials"`
	Field    string        `json:"field,omitempty" example:"email"`
	Severity ErrorSeverity `json:"severity" example:"ERROR"`
	Details  interface{}   `json:"details,omitempty"`
}

// ErrorResponse represents the standard error response structure.
// Message mirrors Error.Message at the top level for clients that only read "message".
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Message   string       `json:"message" example:"Error: Email is already taken!"`
	Path      string       `json:"path,omitempty" example:"/api/user/1"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: ErrorSeverityError,
	}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithSeverity sets the severity level of the error
func (e *ErrorDetail) WithSeverity(severity ErrorSeverity) *ErrorDetail {
	e.Severity = severity
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Message:   errorDetail.Message,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}

// WithPath records the request path on the response
func (r *ErrorResponse) WithPath(path string) *ErrorResponse {
	r.Path = path
	return r
}

// HandleValidationError turns a binding or validation error into an ErrorDetail.
// Only client-caused problems are described; nothing from the server side leaks.
func HandleValidationError(err error) *ErrorDetail {
	detail := NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format")

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var timeErr *time.ParseError
	switch {
	case errors.As(err, &syntaxErr):
		return detail.WithDetails("Malformed JSON body")
	case errors.As(err, &typeErr):
		return detail.WithField(typeErr.Field).WithDetails(fmt.Sprintf("%s has the wrong type", typeErr.Field))
	case errors.As(err, &timeErr):
		return detail.WithDetails("Dates must be RFC 3339 timestamps")
	}

	if errors.Is(err, apperrors.ErrValidationFailed) {
		detail.Message = "Validation failed"
		if details := apperrors.DetailsOf(err); details != nil {
			return detail.WithDetails(details)
		}
		return detail
	}

	return detail.WithDetails("Request body could not be read")
}
