// Package errors defines the application error taxonomy. Every failure a
// handler can surface is one of these, carrying the HTTP status and a
// business error code for the response body.
package errors

import (
	"net/http"

	"giftlink/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying detailed information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrDuplicateEmail is returned when registering an email that already
	// has an account. The store's unique index is the authoritative signal.
	ErrDuplicateEmail = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_EXISTS",
		"Email ID already exists",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	// ErrInvalidCredentials surfaces as 404 rather than 401: the public
	// interface does not distinguish an unknown email from a wrong password
	// beyond the message body.
	ErrInvalidCredentials = NewBaseError(
		http.StatusNotFound,
		"WRONG_PASSWORD",
		"Wrong password",
		"",
	)

	ErrMissingEmailHeader = NewBaseError(
		http.StatusBadRequest,
		"MISSING_EMAIL_HEADER",
		"Email not found in the request headers",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Invalid input",
		"",
	)

	ErrInvalidGiftID = NewBaseError(
		http.StatusBadRequest,
		"INVALID_GIFT_ID",
		"Invalid gift ID format",
		"",
	)

	ErrGiftNotFound = NewBaseError(
		http.StatusNotFound,
		"GIFT_NOT_FOUND",
		"Gift not found",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Invalid or missing token",
		"",
	)

	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Internal server error"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
