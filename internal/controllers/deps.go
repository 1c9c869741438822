package controllers

import (
	"errors"

	"github.com/relawan/portal"
	"github.com/relawan/portal/internal/auth"
	"github.com/relawan/portal/internal/services"
	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/pkg/jwt"
)

// Deps is what every controller module is registered with.
type Deps struct {
	Services *services.Services
	Access   *jwt.Service
}

func (d *Deps) authenticate() portal.Middleware {
	return auth.Authenticate(d.Access)
}

func (d *Deps) optionalAuth() portal.Middleware {
	return auth.Optional(d.Access)
}

// requireRole must follow authenticate.
func (d *Deps) requireRole(roles ...store.Role) portal.Middleware {
	return auth.RequireRole(d.Services.Users, roles...)
}

// member admits any user that still exists.
func (d *Deps) member() portal.Middleware {
	return d.requireRole(store.RoleAdmin, store.RoleEditor, store.RoleContributor)
}

// translate turns service errors into client-facing HTTP errors.
// Unknown errors pass through and become 500.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrBadCredentials):
		return portal.ErrBadRequest("Incorrect email or password", portal.WithError(err))
	case errors.Is(err, services.ErrEmailTaken):
		return portal.ErrBadRequest("This email is already registered", portal.WithError(err))
	case errors.Is(err, services.ErrInvalidRefreshToken):
		return portal.ErrUnauthorized(auth.NoSessionMessage, portal.WithError(err))
	case errors.Is(err, services.ErrUserNotFound):
		return portal.ErrNotFound("User not found", portal.WithError(err))
	case errors.Is(err, services.ErrAdminRole):
		return portal.ErrBadRequest("The access level of an admin cannot be changed", portal.WithError(err))
	case errors.Is(err, services.ErrArticleNotFound):
		return portal.ErrNotFound("Cannot find article", portal.WithError(err))
	case errors.Is(err, services.ErrReportNotFound):
		return portal.ErrNotFound("Report not found", portal.WithError(err))
	}
	return err
}
