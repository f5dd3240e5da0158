package errors

import (
	"errors"
	"net/http"
)

// Kind discriminates expected business-rule failures. Engine methods return
// an *AppError for every expected violation; anything else is treated as an
// infrastructure fault and surfaces as a generic 500.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindState      Kind = "state"
	KindNotFound   Kind = "not_found"
	// KindExpired marks a check-in attempt past its deadline. The attempt
	// still performs the cancellation, so the caller receives the updated
	// reservation alongside this error.
	KindExpired Kind = "expired"
)

// AppError is a discriminated business error with machine-readable code and
// optional structured details (unresolved emails, conflicting reservation,
// computed group size).
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

// Validation creates a ValidationError.
func Validation(code, message string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message}
}

// Conflict creates a ConflictError.
func Conflict(code, message string) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message}
}

// State creates a StateError (action invalid for the current status).
func State(code, message string) *AppError {
	return &AppError{Kind: KindState, Code: code, Message: message}
}

// NotFound creates a NotFoundError.
func NotFound(code, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

// Expired creates a check-in deadline expiry error.
func Expired(code, message string) *AppError {
	return &AppError{Kind: KindExpired, Code: code, Message: message}
}

// WithDetails attaches structured details and returns the error for chaining.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// AsAppError unwraps err into an *AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var app *AppError
	if errors.As(err, &app) {
		return app, true
	}
	return nil, false
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    map[string]interface{}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	app, ok := AsAppError(err)
	if !ok {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}

	status := http.StatusInternalServerError
	switch app.Kind {
	case KindValidation:
		status = http.StatusBadRequest
	case KindConflict:
		status = http.StatusConflict
	case KindState:
		status = http.StatusConflict
	case KindNotFound:
		status = http.StatusNotFound
	case KindExpired:
		status = http.StatusBadRequest
	}

	httpErr := NewHTTPError(status, app.Message, app.Code)
	httpErr.Details = app.Details
	return httpErr
}
