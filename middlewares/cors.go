package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/relawan/portal/internal"
)

// CORSOption configures CORS.
type CORSOption func(*corsConfig)

type corsConfig struct {
	origins          []string
	methods          []string
	headers          []string
	expose           []string
	credentials      bool
	maxAge           time.Duration
	preflightStatus  int
	preflightForward bool
}

// WithAllowOrigins restricts the allowed origins. "*" allows any origin.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *corsConfig) {
		cfg.origins = origins
	}
}

// WithAllowMethods sets Access-Control-Allow-Methods for preflights.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *corsConfig) {
		cfg.methods = methods
	}
}

// WithAllowHeaders sets Access-Control-Allow-Headers for preflights.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *corsConfig) {
		cfg.headers = headers
	}
}

// WithExposeHeaders sets Access-Control-Expose-Headers.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(cfg *corsConfig) {
		cfg.expose = headers
	}
}

// WithAllowCredentials echoes the request origin and allows credentials.
func WithAllowCredentials() CORSOption {
	return func(cfg *corsConfig) {
		cfg.credentials = true
	}
}

// WithMaxAge sets how long browsers may cache a preflight.
func WithMaxAge(d time.Duration) CORSOption {
	return func(cfg *corsConfig) {
		cfg.maxAge = d
	}
}

// WithPreflightStatus sets the status of answered preflights. Default: 200,
// which older browsers handle better than 204.
func WithPreflightStatus(code int) CORSOption {
	return func(cfg *corsConfig) {
		cfg.preflightStatus = code
	}
}

// WithPreflightContinue passes preflights on to the next stage after the
// CORS headers are set, instead of answering them.
func WithPreflightContinue() CORSOption {
	return func(cfg *corsConfig) {
		cfg.preflightForward = true
	}
}

// CORS sets Cross-Origin Resource Sharing headers and answers preflights.
// By default any origin is allowed.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := &corsConfig{
		origins: []string{"*"},
		methods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
			http.MethodPost, http.MethodDelete,
		},
		headers:         []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		maxAge:          12 * time.Hour,
		preflightStatus: http.StatusOK,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	anyOrigin := slices.Contains(cfg.origins, "*")
	methods := strings.Join(cfg.methods, ", ")
	headers := strings.Join(cfg.headers, ", ")
	expose := strings.Join(cfg.expose, ", ")
	maxAge := strconv.Itoa(int(cfg.maxAge.Seconds()))

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			if origin == "" || (!anyOrigin && !slices.Contains(cfg.origins, origin)) {
				return next(c)
			}

			h := c.Response().Header()
			h.Add("Vary", "Origin")
			if anyOrigin && !cfg.credentials {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
			}
			if cfg.credentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if expose != "" {
				h.Set("Access-Control-Expose-Headers", expose)
			}

			if c.Request().Method != http.MethodOptions || c.Header("Access-Control-Request-Method") == "" {
				return next(c)
			}

			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			if cfg.maxAge > 0 {
				h.Set("Access-Control-Max-Age", maxAge)
			}

			if cfg.preflightForward {
				return next(c)
			}
			h.Set("Content-Length", "0")
			return c.NoContent(cfg.preflightStatus)
		}
	}
}
