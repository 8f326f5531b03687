package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("resource already exists")
	ErrConflict     = errors.New("conflict")

	// Authentication errors
	ErrAuthenticationFailed = errors.New("invalid username or password")
	ErrCorruptCredential    = errors.New("stored credential is unparsable")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenInvalid         = errors.New("invalid token")
	ErrTokenNotFound        = errors.New("token not found")
	ErrTokenRevoked         = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrValidationFailed = errors.New("validation failed")
)

// User errors
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = fmt.Errorf("%w: username already exists", ErrDuplicateKey)
	ErrUnknownRole    = errors.New("unrecognized role")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
)

// Student errors
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrInvalidSeverity = errors.New("unrecognized severity level")
)

// Guardian link errors
var (
	ErrDuplicateLink = fmt.Errorf("%w: guardian is already linked to this student", ErrDuplicateKey)
	ErrLinkNotFound  = errors.New("guardian link not found")
)

// Observation errors
var (
	ErrEmptyObservation = errors.New("observation text cannot be empty")
)

// Report errors
var (
	ErrExportFailed = errors.New("report export failed")
)

// NewNotFoundError creates a new custom error for resource not found with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewInvalidArgumentError creates a new custom error for rejected input with a message
func NewInvalidArgumentError(message string) error {
	return &CustomError{
		Err:     ErrInvalidArgument,
		Message: message,
	}
}

// Is returns whether target matches err or any of the errors in errList
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
	Details map[string]interface{}
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

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
