package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultTTL = 15 * time.Minute

// StandardClaims carries the registered claims. Embed it in claim types.
type StandardClaims struct {
	jwt.RegisteredClaims
}

// Standard returns the embedded registered claims for Generate to fill.
func (c *StandardClaims) Standard() *StandardClaims {
	return c
}

// Claims is implemented by any pointer to a struct embedding StandardClaims.
type Claims interface {
	jwt.Claims
	Standard() *StandardClaims
}

// Service signs and verifies tokens with a single secret.
type Service struct {
	secret    []byte
	ttl       time.Duration
	notBefore time.Duration
	issuer    string
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTTL sets the token lifetime. Defaults to 15 minutes.
func WithTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithNotBefore delays the moment a new token becomes valid.
func WithNotBefore(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.notBefore = d
		}
	}
}

// WithIssuer sets the iss claim and requires it when parsing.
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		s.issuer = issuer
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Service. The secret must not be empty.
func New(secret string, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	s := &Service{
		secret: []byte(secret),
		ttl:    defaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Generate fills the registered claims of claims and returns the signed token.
// A fresh random jti is assigned on every call.
func (s *Service) Generate(claims Claims) (string, error) {
	now := s.now()

	std := claims.Standard()
	std.ID = uuid.NewString()
	std.Issuer = s.issuer
	std.IssuedAt = jwt.NewNumericDate(now)
	std.NotBefore = jwt.NewNumericDate(now.Add(s.notBefore))
	std.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return token, nil
}

// Parse verifies token and decodes its claims into dest.
// dest must be a pointer to a struct embedding StandardClaims.
func (s *Service) Parse(token string, dest any) error {
	claims, ok := dest.(Claims)
	if !ok {
		return ErrInvalidClaims
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Join(ErrExpiredToken, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return errors.Join(ErrTokenNotYetValid, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return errors.Join(ErrInvalidSignature, err)
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}
