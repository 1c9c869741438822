package controllers

import (
	"net/http"

	"github.com/relawan/portal"
	"github.com/relawan/portal/internal/services"
	"github.com/relawan/portal/middlewares"
)

// AuthRoute serves /v1/auth.
type AuthRoute struct {
	svc *services.Auth
}

func RegisterAuth(reg *portal.Registry, deps *Deps) error {
	refresh := middlewares.Validate[services.RefreshRequest]()

	return reg.Declare(&AuthRoute{svc: deps.Services.Auth}, portal.RouteGroup{Path: "auth"},
		portal.POST("/login", "Login", middlewares.Validate[services.Credentials]()),
		portal.POST("/register", "Register", middlewares.Validate[services.Registration]()),
		portal.POST("/refresh", "Refresh", refresh),
		portal.POST("/logout", "Logout", refresh),
	)
}

func (r *AuthRoute) Login(c portal.Context) error {
	pair, err := r.svc.Login(c, *middlewares.Valid[services.Credentials](c))
	if err != nil {
		return translate(err)
	}
	return portal.Success(c, http.StatusOK, "Successfully logged in as a user", pair)
}

func (r *AuthRoute) Register(c portal.Context) error {
	if _, err := r.svc.Register(c, *middlewares.Valid[services.Registration](c)); err != nil {
		return translate(err)
	}
	return portal.Success(c, http.StatusCreated, "Successfully registered new user", nil)
}

func (r *AuthRoute) Refresh(c portal.Context) error {
	pair, err := r.svc.Refresh(c, middlewares.Valid[services.RefreshRequest](c).RefreshToken)
	if err != nil {
		return translate(err)
	}
	return portal.Success(c, http.StatusOK, "Successfully refreshed session", pair)
}

func (r *AuthRoute) Logout(c portal.Context) error {
	if err := r.svc.Logout(c, middlewares.Valid[services.RefreshRequest](c).RefreshToken); err != nil {
		return translate(err)
	}
	return portal.Success(c, http.StatusOK, "Successfully logged out", nil)
}
