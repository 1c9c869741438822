package internal_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relawan/portal/internal"
	"github.com/relawan/portal/pkg/validator"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("options", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("no rows")
		err := internal.ErrNotFound("User not found", internal.WithError(cause), internal.WithData(map[string]int{"id": 3}))

		require.Equal(t, http.StatusNotFound, err.StatusCode())
		require.Equal(t, "Not Found", err.StatusText())
		require.Equal(t, "User not found", err.Error())
		require.ErrorIs(t, err, cause)
		require.Equal(t, map[string]int{"id": 3}, err.Data)
	})

	t.Run("constructors", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, http.StatusBadRequest, internal.ErrBadRequest("x").Code)
		require.Equal(t, http.StatusUnauthorized, internal.ErrUnauthorized("x").Code)
		require.Equal(t, http.StatusForbidden, internal.ErrForbidden("x").Code)
		require.Equal(t, http.StatusConflict, internal.ErrConflict("x").Code)
		require.Equal(t, http.StatusInternalServerError, internal.ErrInternal("x").Code)
	})

	t.Run("found through wrapping", func(t *testing.T) {
		t.Parallel()
		httpErr := internal.ErrForbidden("You don't have the permission to access this content")
		err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", httpErr))

		require.True(t, internal.IsHTTPError(err))
		require.Same(t, httpErr, internal.AsHTTPError(err))
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()
		require.False(t, internal.IsHTTPError(errors.New("plain")))
		require.False(t, internal.IsHTTPError(nil))
		require.Nil(t, internal.AsHTTPError(nil))
	})
}

// failingRoute returns whatever error it was built with.
type failingRoute struct{ err error }

func (r *failingRoute) Handle(internal.Context) error { return r.err }

func TestDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		err     error
		code    int
		message string
		data    string
	}{
		{
			name:    "http error with data",
			err:     internal.ErrConflict("already exists", internal.WithData(map[string]string{"email": "taken"})),
			code:    http.StatusConflict,
			message: "already exists",
			data:    `{"email":"taken"}`,
		},
		{
			name:    "wrapped http error",
			err:     fmt.Errorf("repo: %w", internal.ErrNotFound("Cannot find article")),
			code:    http.StatusNotFound,
			message: "Cannot find article",
		},
		{
			name: "validation errors",
			err: validator.ValidationErrors{
				{Field: "title", Rule: "required", Message: "title is a required field"},
				{Field: "content", Rule: "max", Message: "content must be a maximum of 2,000 characters in length"},
			},
			code:    http.StatusBadRequest,
			message: "title is a required field; content must be a maximum of 2,000 characters in length",
			data:    `[{"field":"title","rule":"required","message":"title is a required field"},{"field":"content","rule":"max","message":"content must be a maximum of 2,000 characters in length"}]`,
		},
		{
			name:    "timeout",
			err:     &internal.TimeoutError{Duration: time.Second},
			code:    http.StatusServiceUnavailable,
			message: "Request timed out",
		},
		{
			name:    "deadline exceeded",
			err:     fmt.Errorf("query: %w", context.DeadlineExceeded),
			code:    http.StatusServiceUnavailable,
			message: "Request timed out",
		},
		{
			name:    "unknown error",
			err:     errors.New("connection reset"),
			code:    http.StatusInternalServerError,
			message: "Unexpected server error",
		},
		{
			name:    "server http error",
			err:     internal.ErrInternal("Unexpected server error", internal.WithError(errors.New("db down"))),
			code:    http.StatusInternalServerError,
			message: "Unexpected server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			reg := internal.NewRegistry()
			require.NoError(t, reg.Declare(&failingRoute{err: tc.err}, internal.RouteGroup{Path: "fail"},
				internal.GET("/", "Handle"),
			))
			app := newApp(t, internal.WithRegistry(reg))

			w := do(app, http.MethodGet, "/v1/fail/", "")
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

			b := decode(t, w)
			require.Equal(t, "fail", b.Status)
			require.Equal(t, tc.message, b.Message)
			if tc.data == "" {
				require.Empty(t, b.Data)
			} else {
				require.JSONEq(t, tc.data, string(b.Data))
			}
		})
	}
}

func TestPanicAndTimeoutErrors(t *testing.T) {
	t.Parallel()

	pe := &internal.PanicError{Value: "boom"}
	require.Equal(t, "panic: boom", pe.Error())

	te := &internal.TimeoutError{Duration: 30 * time.Second}
	require.Equal(t, "request timeout after 30s", te.Error())
}
