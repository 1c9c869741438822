package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/relawan/portal/internal"
	"github.com/relawan/portal/pkg/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds ids accepted from clients.
const maxRequestIDLen = 128

type requestIDKey struct{}

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

type requestIDConfig struct {
	generate func() string
	trust    bool
}

// WithRequestIDGenerator replaces uuid.NewString.
func WithRequestIDGenerator(fn func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if fn != nil {
			cfg.generate = fn
		}
	}
}

// WithoutIncomingRequestID ignores ids sent by clients.
func WithoutIncomingRequestID() RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.trust = false
	}
}

// RequestID assigns every request an id, stores it in the context and
// echoes it in the X-Request-ID response header. A well-formed incoming
// X-Request-ID is reused so ids survive proxies.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &requestIDConfig{generate: uuid.NewString, trust: true}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := ""
			if cfg.trust {
				id = c.Header(RequestIDHeader)
			}
			if !validRequestID(id) {
				id = cfg.generate()
			}

			c.Set(requestIDKey{}, id)
			c.SetHeader(RequestIDHeader, id)
			return next(c)
		}
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := range len(id) {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c internal.Context) string {
	id, _ := c.Get(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds "request_id" to log records of the request.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
