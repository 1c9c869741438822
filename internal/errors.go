package internal

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Registration and assembly failures. All of them are fatal at startup.
var (
	ErrInvalidGroupPath      = errors.New("portal: route group path must not be empty or start or end with '/'")
	ErrInvalidControllerPath = errors.New("portal: controller path must be '/' or start with '/' and not end with '/'")
	ErrInvalidVersion        = errors.New("portal: route group version must be positive")
	ErrInvalidHandler        = errors.New("portal: controller handler name is empty")
	ErrNilInstance           = errors.New("portal: route group instance is nil")
	ErrDuplicateGroup        = errors.New("portal: route group already declared")
	ErrDuplicatePrefix       = errors.New("portal: route groups share a mount prefix")
	ErrRegistryFrozen        = errors.New("portal: registry is frozen")
	ErrModuleLoad            = errors.New("portal: failed to load controller module")
	ErrUnresolvedHandler     = errors.New("portal: controller handler does not resolve to a handler method")
	ErrAlreadyBuilt          = errors.New("portal: app routes already built")
)

// HTTPError is an error with an HTTP status code and a user-facing message.
// The default error handler renders it as a "fail" envelope.
type HTTPError struct {
	// Err is the underlying error. It is logged, never sent to the client.
	Err error

	// Data is optional payload rendered next to the message.
	Data any

	Message string
	Code    int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// WithError attaches the underlying cause.
func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// WithData attaches a payload to the rendered error.
func WithData(data any) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Data = data
	}
}

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusConflict, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// AsHTTPError extracts the HTTPError from an error chain.
// Returns nil if there is none.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// IsHTTPError reports whether err carries an HTTPError.
func IsHTTPError(err error) bool {
	return AsHTTPError(err) != nil
}

// PanicError represents a panic recovered from a handler or middleware.
type PanicError struct {
	Value any    // The panic value
	Stack []byte // Stack trace (nil if disabled)
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// TimeoutError represents a request that exceeded its deadline.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}
