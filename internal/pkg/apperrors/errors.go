package apperrors

import "errors"

// Core error taxonomy. Every service returns one of these sentinels
// (possibly wrapped with context); the HTTP layer dispatches on errors.Is.
var (
	// ErrUnauthorized signals a role or group mismatch between the acting
	// user and the resource.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound signals a dangling identifier.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateKey signals a uniqueness violation on registration.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidCredential signals a password mismatch.
	ErrInvalidCredential = errors.New("invalid credentials")

	// ErrInvalidState signals an operation not valid for the record's
	// current status, e.g. deleting a non-rejected application.
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrDateConflict signals an approved event already occupies the date.
	ErrDateConflict = errors.New("date conflict with existing event")

	// ErrSlotConflict signals an approved meeting already occupies the
	// date, time and room.
	ErrSlotConflict = errors.New("time and room conflict with existing meeting")

	// ErrStoreFailure signals an underlying transaction failure. The
	// operation was rolled back and no partial state remains.
	ErrStoreFailure = errors.New("store failure")
)

// Validation and token errors outside the core taxonomy.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrInvalidFormat    = errors.New("invalid token format")
	ErrUnknownGroup     = errors.New("unknown group")
)

// CustomError carries a sentinel plus a human-readable message.
type CustomError struct {
	Err     error
	Message string
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
	return &CustomError{Err: err, Message: message}
}

// Message returns the human-readable message when err carries one, falling
// back to the error text itself.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
