// Package auth connects access tokens to portal users and roles.
package auth

import (
	"context"
	"errors"
	"slices"

	"github.com/relawan/portal/internal"
	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/middlewares"
	"github.com/relawan/portal/pkg/jwt"
)

const (
	NoSessionMessage    = middlewares.DefaultNoSessionMessage
	NoPermissionMessage = "You don't have the permission to access this content"
)

// Claims is the token payload for both access and refresh tokens.
type Claims struct {
	jwt.StandardClaims
	UserID      int64      `json:"id"`
	Email       string     `json:"email"`
	AccessLevel store.Role `json:"accessLevel"`
}

// NewClaims builds the payload for u.
func NewClaims(u store.User) *Claims {
	return &Claims{UserID: u.ID, Email: u.Email, AccessLevel: u.AccessLevel}
}

// RoleSource returns the current role of a user. It is consulted instead of
// the token's accessLevel, which may be stale.
type RoleSource interface {
	Role(ctx context.Context, userID int64) (store.Role, error)
}

// Authenticate requires a valid access token.
func Authenticate(access *jwt.Service) internal.Middleware {
	return middlewares.JWT[Claims](access)
}

// Optional accepts requests without a token. A token that is present must
// still be valid.
func Optional(access *jwt.Service) internal.Middleware {
	return middlewares.JWT[Claims](access, middlewares.WithJWTOptional())
}

// ClaimsFrom returns the claims of the authenticated user, or nil.
func ClaimsFrom(c internal.Context) *Claims {
	return middlewares.GetJWTClaims[Claims](c)
}

type roleKey struct{}

// RequireRole admits users whose current role is one of roles. It must run
// after Authenticate. A user that no longer exists has no session.
func RequireRole(src RoleSource, roles ...store.Role) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			claims := ClaimsFrom(c)
			if claims == nil {
				return internal.ErrUnauthorized(NoSessionMessage)
			}

			role, err := src.Role(c, claims.UserID)
			if errors.Is(err, store.ErrNotFound) {
				return internal.ErrUnauthorized(NoSessionMessage, internal.WithError(err))
			}
			if err != nil {
				return err
			}
			if !slices.Contains(roles, role) {
				return internal.ErrForbidden(NoPermissionMessage)
			}

			c.Set(roleKey{}, role)
			return next(c)
		}
	}
}

// Privileged reports whether the caller may see unpublished content. It
// is false for anonymous callers and users that no longer exist.
func Privileged(c internal.Context, src RoleSource) (bool, error) {
	if role, ok := c.Get(roleKey{}).(store.Role); ok {
		return role.Privileged(), nil
	}

	claims := ClaimsFrom(c)
	if claims == nil {
		return false, nil
	}

	role, err := src.Role(c, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return role.Privileged(), nil
}
