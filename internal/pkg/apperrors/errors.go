package apperrors

import "errors"

// Error kinds. Every domain error wraps exactly one of these so the HTTP layer
// can map it to a status code with errors.Is.
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternal         = errors.New("internal error")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Identity errors
var (
	ErrUserNotFound       = NewResourceNotFoundError("USER_NOT_FOUND", "User not found")
	ErrEmailAlreadyExists = NewConflictError("EMAIL_EXISTS", "Email already registered")
	ErrLoginFailed        = NewCustomError(ErrInvalidCredentials, "Invalid email or password").WithCode("INVALID_CREDENTIALS")
)

// Program directory errors
var (
	ErrProgramNotFound     = NewResourceNotFoundError("PROGRAM_NOT_FOUND", "Program not found")
	ErrCourseNotFound      = NewResourceNotFoundError("COURSE_NOT_FOUND", "Course not found")
	ErrCoordinatorNotFound = NewResourceNotFoundError("COORDINATOR_NOT_FOUND", "Program coordinator not found")
	ErrCourseCodeExists    = NewConflictError("COURSE_CODE_EXISTS", "Course code already exists for this program")
	ErrInvalidYearNumber   = NewValidationError("INVALID_YEAR_NUMBER", "Year number exceeds program duration")
	ErrInvalidDuration     = NewValidationError("INVALID_DURATION_YEARS", "Program duration is shorter than the year of an existing course")
	ErrForbidden           = NewForbiddenError("FORBIDDEN", "Forbidden")

	ErrCoordinatorEmailExists = NewConflictError("COORDINATOR_EMAIL_EXISTS", "A coordinator with this email already exists")
	ErrProgramHasApplications = NewConflictError("PROGRAM_HAS_APPLICATIONS", "Program has applications and cannot be deleted")
)

// Applicant and application errors
var (
	ErrProfileNotFound            = NewResourceNotFoundError("PROFILE_NOT_FOUND", "Applicant profile not found")
	ErrApplicationNotFound        = NewResourceNotFoundError("APPLICATION_NOT_FOUND", "Application not found")
	ErrApplicationAlreadyReviewed = NewConflictError("APPLICATION_ALREADY_REVIEWED", "Application already reviewed")
	ErrApplicationReviewFailed    = NewInternalError("APPLICATION_REVIEW_FAILED", "Application review failed")
	ErrApplicationCreateFailed    = NewInternalError("APPLICATION_CREATE_FAILED", "Application submission failed")
	ErrReferenceCodeConflict      = NewConflictError("REFERENCE_CODE_CONFLICT", "Could not allocate a unique reference code")
	ErrInvalidReviewStatus        = NewValidationError("INVALID_REVIEW_STATUS", "Review status must be accepted or rejected")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(code, message string) *CustomError {
	return &CustomError{Err: ErrResourceNotFound, Code: code, Message: message}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(code, message string) *CustomError {
	return &CustomError{Err: ErrConflict, Code: code, Message: message}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(code, message string) *CustomError {
	return &CustomError{Err: ErrPermissionDenied, Code: code, Message: message}
}

// NewValidationError creates a new custom error for invalid input
func NewValidationError(code, message string) *CustomError {
	return &CustomError{Err: ErrValidationFailed, Code: code, Message: message}
}

// NewInternalError creates a new custom error for unexpected write failures
func NewInternalError(code, message string) *CustomError {
	return &CustomError{Err: ErrInternal, Code: code, Message: message}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails returns a copy of the error carrying the given details.
// Package level errors are shared, so they are never mutated in place.
func (e *CustomError) WithDetails(details interface{}) *CustomError {
	c := *e
	c.Details = details
	return &c
}

// WithCode returns a copy of the error carrying the given code
func (e *CustomError) WithCode(code string) *CustomError {
	c := *e
	c.Code = code
	return &c
}

// Kind returns the error kind the custom error wraps
func (e *CustomError) Kind() error {
	return e.Err
}
