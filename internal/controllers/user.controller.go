package controllers

import (
	"errors"
	"net/http"

	"github.com/relawan/portal"
	"github.com/relawan/portal/internal/auth"
	"github.com/relawan/portal/internal/services"
	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/middlewares"
)

// UserRoute serves /v1/users.
type UserRoute struct {
	svc *services.Users
}

type userParams struct {
	UserID int64 `param:"userId" validate:"gte=1"`
}

func RegisterUsers(reg *portal.Registry, deps *Deps) error {
	admin := deps.requireRole(store.RoleAdmin)

	return reg.Declare(&UserRoute{svc: deps.Services.Users}, portal.RouteGroup{
		Path:        "users",
		Middlewares: []portal.Middleware{deps.authenticate()},
	},
		portal.GET("/profile", "Profile"),
		portal.GET("/", "List", admin),
		portal.PUT("/:userId", "ToggleAccessLevel", admin, middlewares.ValidateParams[userParams]()),
	)
}

func (r *UserRoute) Profile(c portal.Context) error {
	u, err := r.svc.Profile(c, auth.ClaimsFrom(c).UserID)
	if errors.Is(err, services.ErrUserNotFound) {
		return portal.ErrUnauthorized(auth.NoSessionMessage, portal.WithError(err))
	}
	if err != nil {
		return err
	}
	return portal.Success(c, http.StatusOK, "Successfully found user data", map[string]any{"user": u})
}

func (r *UserRoute) List(c portal.Context) error {
	users, err := r.svc.List(c)
	if err != nil {
		return err
	}
	return portal.Success(c, http.StatusOK, "Successfully found all users", map[string]any{"users": users})
}

func (r *UserRoute) ToggleAccessLevel(c portal.Context) error {
	role, err := r.svc.ToggleRole(c, middlewares.ValidParams[userParams](c).UserID)
	if err != nil {
		return translate(err)
	}
	return portal.Success(c, http.StatusOK, "Successfully change user access level", map[string]any{"accessLevel": role})
}
