package middlewares

import (
	"fmt"
	"time"

	"github.com/relawan/portal/internal"
)

// SecureOption configures Secure.
type SecureOption func(*secureConfig)

type secureConfig struct {
	hstsMaxAge            time.Duration
	hstsIncludeSubdomains bool
	frameOptions          string
	csp                   string
	referrerPolicy        string
}

// WithHSTS sets Strict-Transport-Security. A zero maxAge omits the header.
func WithHSTS(maxAge time.Duration, includeSubdomains bool) SecureOption {
	return func(cfg *secureConfig) {
		cfg.hstsMaxAge = maxAge
		cfg.hstsIncludeSubdomains = includeSubdomains
	}
}

// WithFrameOptions sets X-Frame-Options. An empty value omits the header.
func WithFrameOptions(v string) SecureOption {
	return func(cfg *secureConfig) {
		cfg.frameOptions = v
	}
}

// WithContentSecurityPolicy sets Content-Security-Policy. An empty value omits the header.
func WithContentSecurityPolicy(v string) SecureOption {
	return func(cfg *secureConfig) {
		cfg.csp = v
	}
}

// WithReferrerPolicy sets Referrer-Policy.
func WithReferrerPolicy(v string) SecureOption {
	return func(cfg *secureConfig) {
		cfg.referrerPolicy = v
	}
}

// Secure sets conservative security headers on every response.
func Secure(opts ...SecureOption) internal.Middleware {
	cfg := &secureConfig{
		hstsMaxAge:            180 * 24 * time.Hour,
		hstsIncludeSubdomains: true,
		frameOptions:          "SAMEORIGIN",
		csp:                   "default-src 'none'; frame-ancestors 'none'",
		referrerPolicy:        "no-referrer",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	static := map[string]string{
		"X-Content-Type-Options":            "nosniff",
		"X-DNS-Prefetch-Control":            "off",
		"X-Download-Options":                "noopen",
		"X-Permitted-Cross-Domain-Policies": "none",
		"X-XSS-Protection":                  "0",
		"Cross-Origin-Opener-Policy":        "same-origin",
		"Cross-Origin-Resource-Policy":      "same-origin",
		"Origin-Agent-Cluster":              "?1",
		"Referrer-Policy":                   cfg.referrerPolicy,
		"X-Frame-Options":                   cfg.frameOptions,
		"Content-Security-Policy":           cfg.csp,
	}
	if cfg.hstsMaxAge > 0 {
		hsts := fmt.Sprintf("max-age=%d", int(cfg.hstsMaxAge.Seconds()))
		if cfg.hstsIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		static["Strict-Transport-Security"] = hsts
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			h := c.Response().Header()
			for k, v := range static {
				if v != "" {
					h.Set(k, v)
				}
			}
			return next(c)
		}
	}
}
