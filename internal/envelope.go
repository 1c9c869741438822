package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"

	serverErrorMessage = "Unexpected server error"
)

// envelope is the body of every JSON response.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success writes a "success" envelope with the given status code.
// A nil data is omitted from the body.
//
// Example:
//
//	return portal.Success(c, http.StatusCreated, "Successfully added report", nil)
func Success(c Context, code int, message string, data any) error {
	return c.JSON(code, envelope{Status: statusSuccess, Message: message, Data: data})
}

// Fail writes a "fail" envelope with the given status code.
func Fail(c Context, code int, message string, data any) error {
	return c.JSON(code, envelope{Status: statusFail, Message: message, Data: data})
}

// DefaultErrorHandler renders err as a "fail" envelope.
//
//   - *HTTPError keeps its code, message and data.
//   - ValidationErrors become 400 with the joined messages.
//   - *TimeoutError and context.DeadlineExceeded become 503.
//   - Anything else is logged and becomes 500 "Unexpected server error".
func DefaultErrorHandler(c Context, err error) error {
	if httpErr := AsHTTPError(err); httpErr != nil {
		if httpErr.Code >= http.StatusInternalServerError {
			c.LogError("request failed",
				slog.Int("status", httpErr.Code),
				slog.Any("error", errors.Join(httpErr, httpErr.Err)),
			)
		}
		return Fail(c, httpErr.Code, httpErr.Message, httpErr.Data)
	}

	var ve ValidationErrors
	if errors.As(err, &ve) {
		return Fail(c, http.StatusBadRequest, ve.Error(), ve)
	}

	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) || errors.Is(err, context.DeadlineExceeded) {
		c.LogWarn("request timed out", slog.Any("error", err))
		return Fail(c, http.StatusServiceUnavailable, "Request timed out", nil)
	}

	attrs := []any{slog.Any("error", err)}
	var panicErr *PanicError
	if errors.As(err, &panicErr) && panicErr.Stack != nil {
		attrs = append(attrs, slog.String("stack", string(panicErr.Stack)))
	}
	c.LogError("unexpected error", attrs...)

	return Fail(c, http.StatusInternalServerError, serverErrorMessage, nil)
}
