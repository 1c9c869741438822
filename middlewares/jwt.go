package middlewares

import (
	"errors"

	"github.com/relawan/portal/internal"
	"github.com/relawan/portal/pkg/jwt"
)

// DefaultNoSessionMessage is the 401 message for a missing or rejected token.
const DefaultNoSessionMessage = "You don't have an account session"

type claimsKey struct{}

// JWTOption configures JWT.
type JWTOption func(*jwtConfig)

type jwtConfig struct {
	extractor internal.Extractor
	optional  bool
	message   string
}

// WithJWTExtractor replaces the default Bearer token extractor.
func WithJWTExtractor(ext internal.Extractor) JWTOption {
	return func(cfg *jwtConfig) {
		cfg.extractor = ext
	}
}

// WithJWTOptional lets requests without a token through anonymously.
// A token that is present but invalid is still rejected.
func WithJWTOptional() JWTOption {
	return func(cfg *jwtConfig) {
		cfg.optional = true
	}
}

// WithJWTMessage sets the 401 message.
func WithJWTMessage(msg string) JWTOption {
	return func(cfg *jwtConfig) {
		cfg.message = msg
	}
}

// JWT verifies the request token with svc and stores the parsed claims,
// readable with GetJWTClaims[T]. *T must embed jwt.StandardClaims.
func JWT[T any](svc *jwt.Service, opts ...JWTOption) internal.Middleware {
	cfg := &jwtConfig{
		extractor: internal.NewExtractor(internal.FromBearerToken()),
		message:   DefaultNoSessionMessage,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			token, ok := cfg.extractor.Extract(c)
			if !ok {
				if cfg.optional {
					return next(c)
				}
				return internal.ErrUnauthorized(cfg.message)
			}

			claims := new(T)
			if err := svc.Parse(token, claims); err != nil {
				if errors.Is(err, jwt.ErrInvalidClaims) {
					return err
				}
				c.LogDebug("token rejected", "error", err)
				return internal.ErrUnauthorized(cfg.message, internal.WithError(err))
			}

			c.Set(claimsKey{}, claims)
			return next(c)
		}
	}
}

// GetJWTClaims returns the claims stored by JWT[T], or nil for anonymous
// requests and mismatched types.
func GetJWTClaims[T any](c internal.Context) *T {
	claims, _ := c.Get(claimsKey{}).(*T)
	return claims
}
