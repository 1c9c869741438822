package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/relawan/portal/internal"
)

// AccessLogOption configures AccessLog.
type AccessLogOption func(*accessLogConfig)

type accessLogConfig struct {
	skip func(r *http.Request) bool
}

// WithAccessLogSkip excludes requests for which skip returns true.
func WithAccessLogSkip(skip func(r *http.Request) bool) AccessLogOption {
	return func(cfg *accessLogConfig) {
		cfg.skip = skip
	}
}

// AccessLog writes one line per request with the method, URL, status,
// response time and user agent.
//
// Failures of later stages are rendered before AccessLog sees them, so the
// logged status is the one the client received.
func AccessLog(opts ...AccessLogOption) internal.Middleware {
	cfg := &accessLogConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			if cfg.skip != nil && cfg.skip(r) {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := http.StatusOK
			var size int64
			if rw, ok := c.Response().(*internal.ResponseWriter); ok {
				status = rw.Status()
				size = rw.Size()
			}
			if err != nil && !c.Written() {
				status = http.StatusInternalServerError
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			c.Logger().Log(c.Request().Context(), level, "request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.RequestURI()),
				slog.Int("status", status),
				slog.Int64("bytes", size),
				slog.Float64("response_time_ms", float64(time.Since(start).Microseconds())/1000),
				slog.String("user_agent", r.UserAgent()),
			)
			return err
		}
	}
}
