package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Codes not owned by a domain error
const (
	ErrorCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrorCodeInvalidToken     ErrorCode = "INVALID_TOKEN"
	ErrorCodeExpiredToken     ErrorCode = "TOKEN_EXPIRED"
	ErrorCodeRevokedToken     ErrorCode = "TOKEN_REVOKED"
	ErrorCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_ERROR"
	ErrorCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrorCodeConflict         ErrorCode = "CONFLICT"
	ErrorCodeInternalServer   ErrorCode = "INTERNAL_SERVER_ERROR"
)

// ErrorDetail is the error object inside the error envelope
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"PROGRAM_NOT_FOUND"`
	Message string      `json:"message" example:"Program not found"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:    code,
		Message: message,
	}
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
		Error:     errorDetail,
		Timestamp: time.Now().UTC(),
	}
}

// FieldError is one entry of a validation error's details list
type FieldError struct {
	Field   string `json:"field" example:"date_of_birth"`
	Message string `json:"message" example:"date_of_birth must be a date in YYYY-MM-DD format"`
}

// HandleValidationError converts a binding error into an error detail with a
// field level details list. Malformed JSON produces a single entry.
func HandleValidationError(err error) *ErrorDetail {
	detail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed")

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, FieldError{
				Field:   fieldPath(fe),
				Message: formatValidationError(fe),
			})
		}
		return detail.WithDetails(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return detail.WithDetails([]FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.String()),
		}})
	}

	return detail.WithDetails([]FieldError{{Field: "body", Message: "Invalid request format"}})
}

// fieldPath drops the top level struct name from the namespace:
// "SubmitApplicationRequest.profile.first_name" => "profile.first_name"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatValidationError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "min":
		if e.Kind().String() == "string" {
			return field + " must be at least " + e.Param() + " characters"
		}
		return field + " must be at least " + e.Param()
	case "max":
		if e.Kind().String() == "string" {
			return field + " must be at most " + e.Param() + " characters"
		}
		return field + " must be at most " + e.Param()
	case "gt":
		return field + " must be greater than " + e.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "isodate":
		return field + " must be a date in YYYY-MM-DD format"
	case "password":
		return field + " must be at least 8 characters and contain a letter and a number"
	default:
		return field + " validation failed: " + e.Tag()
	}
}
