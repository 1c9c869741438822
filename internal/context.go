package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/relawan/portal/pkg/validator"
)

// ValidationErrors is re-exported for handler signatures.
type ValidationErrors = validator.ValidationErrors

// maxJSONBody caps request bodies decoded by BindJSON.
const maxJSONBody = 1 << 20

// Context provides request and response access to handlers and middleware.
// It implements context.Context, so it can be passed to stores and services directly.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the response writer.
	Response() http.ResponseWriter

	// Param returns a URL path parameter by name.
	Param(name string) string

	// Query returns a query parameter by name.
	Query(name string) string

	// QueryDefault returns a query parameter or a default value if empty.
	QueryDefault(name, defaultValue string) string

	// Header returns a request header value.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes v as a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Error creates an HTTPError for the error stage to render.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// BindJSON decodes the JSON body into v and validates it.
	// Validation failures are returned as ValidationErrors with a nil error.
	BindJSON(v any) (ValidationErrors, error)

	// BindParams copies route parameters into fields tagged `param:"name"`
	// and validates the result like BindJSON.
	BindParams(v any) (ValidationErrors, error)

	// Written reports whether the response has been written.
	Written() bool

	// Logger returns the request logger.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	// The value is visible to later stages and to log context extractors.
	Set(key, value any)

	// Get retrieves a value stored with Set.
	Get(key any) any

	// SetContext replaces the request context. ctx must be derived from
	// the current one, or values stored with Set are lost.
	SetContext(ctx context.Context)
}

// contextKey stores the request Context inside the http.Request context,
// so every stage of one request shares the same Context.
type contextKey struct{}

// requestContext implements the Context interface.
type requestContext struct {
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
	validator      *validator.Validator
	// mu guards request: a handler left running by the timeout
	// middleware may still call Set while the error stage reads.
	mu sync.RWMutex
}

// newContext creates a request Context and links it into the request.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}

	c := &requestContext{
		responseWriter: rw,
		logger:         app.logger,
		validator:      app.validator,
	}
	c.request = r.WithContext(context.WithValue(r.Context(), contextKey{}, c))
	return c
}

// contextFor returns the Context that belongs to r, creating one if the
// request did not pass through App.ServeHTTP. The stored request is
// replaced with r so route parameters added by the router are visible.
func contextFor(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	if c, ok := r.Context().Value(contextKey{}).(*requestContext); ok {
		c.mu.Lock()
		c.request = r
		c.mu.Unlock()
		return c
	}
	return newContext(w, r, app)
}

// adopt takes over r, typically from a buffered Context, keeping c as
// the Context the request resolves to.
func (c *requestContext) adopt(r *http.Request) {
	c.mu.Lock()
	c.request = r.WithContext(context.WithValue(r.Context(), contextKey{}, c))
	c.mu.Unlock()
}

func (c *requestContext) Request() *http.Request {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.Request().Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.Request().Context().Done()
}

func (c *requestContext) Err() error {
	return c.Request().Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.Request().Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.Request(), name)
}

func (c *requestContext) Query(name string) string {
	return c.Request().URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	if v := c.Request().URL.Query().Get(name); v != "" {
		return v
	}
	return defaultValue
}

func (c *requestContext) Header(name string) string {
	return c.Request().Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.responseWriter.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.responseWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	return json.NewEncoder(c.responseWriter).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.responseWriter.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.responseWriter.WriteHeader(code)
	_, err := c.responseWriter.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.responseWriter.WriteHeader(code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) BindJSON(v any) (ValidationErrors, error) {
	dec := json.NewDecoder(http.MaxBytesReader(c.responseWriter, c.Request().Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		return nil, ErrBadRequest("Malformed JSON body", WithError(fmt.Errorf("bind json: %w", err)))
	}
	return c.validate(v)
}

func (c *requestContext) BindParams(v any) (ValidationErrors, error) {
	ve, err := bindParams(chi.RouteContext(c.Request().Context()), v)
	if err != nil || len(ve) > 0 {
		return ve, err
	}
	return c.validate(v)
}

func (c *requestContext) validate(v any) (ValidationErrors, error) {
	if err := c.validator.Struct(v); err != nil {
		var ve ValidationErrors
		if errors.As(err, &ve) {
			return ve, nil
		}
		return nil, fmt.Errorf("validate: %w", err)
	}
	return nil, nil
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.Request().Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.Request().Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.Request().Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.Request().Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *requestContext) SetContext(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.Request().Context().Value(key)
}
