package errors

import "fmt"

// ErrorCode represents an astrocusp error code.
type ErrorCode string

const (
	ErrInvalidDate      ErrorCode = "INVALID_DATE"      // 400
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrConflict         ErrorCode = "CONFLICT"          // 409
	ErrStaleModel       ErrorCode = "STALE_MODEL"       // 422 (strict mode only)
	ErrStoreUnavailable ErrorCode = "STORE_UNAVAILABLE" // 503
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// AstroError represents a structured error with code, status, and details.
type AstroError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *AstroError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidDate creates a 400 error for a malformed calendar date or time.
func NewInvalidDate(msg string) *AstroError {
	return &AstroError{
		Code:    ErrInvalidDate,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *AstroError {
	return &AstroError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for missing content.
func NewNotFound(identifier string) *AstroError {
	return &AstroError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("content not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewConflict creates a 409 error for import collisions.
func NewConflict(msg string) *AstroError {
	return &AstroError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewStaleModel creates a 422 error for queries outside the maintained
// ephemeris anchor window, used when strict stale checking is enabled.
func NewStaleModel(planet, instant string) *AstroError {
	return &AstroError{
		Code:    ErrStaleModel,
		Status:  422,
		Message: fmt.Sprintf("ephemeris model data does not cover %s", instant),
		Details: map[string]any{"planet": planet, "instant": instant},
	}
}

// NewStoreUnavailable creates a 503 error wrapping a content-store I/O failure.
// Distinct from NotFound: callers retry this, they do not show an empty state.
func NewStoreUnavailable(err error) *AstroError {
	msg := "content store unavailable"
	if err != nil {
		msg = fmt.Sprintf("content store unavailable: %v", err)
	}
	return &AstroError{
		Code:    ErrStoreUnavailable,
		Status:  503,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *AstroError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &AstroError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an AstroError with the given code.
func Is(err error, code ErrorCode) bool {
	if aErr, ok := err.(*AstroError); ok {
		return aErr.Code == code
	}
	return false
}
