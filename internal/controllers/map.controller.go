package controllers

import (
	"net/http"

	"github.com/relawan/portal"
	"github.com/relawan/portal/internal/services"
	"github.com/relawan/portal/middlewares"
)

// MapRoute serves /v1/map.
type MapRoute struct {
	svc *services.Locations
}

func RegisterMap(reg *portal.Registry, deps *Deps) error {
	return reg.Declare(&MapRoute{svc: deps.Services.Locations}, portal.RouteGroup{Path: "map"},
		portal.POST("/add", "Add", deps.authenticate(), middlewares.Validate[services.NewLocation]()),
		portal.GET("/", "List"),
	)
}

func (r *MapRoute) Add(c portal.Context) error {
	loc, err := r.svc.Add(c, *middlewares.Valid[services.NewLocation](c))
	if err != nil {
		return err
	}
	return portal.Success(c, http.StatusCreated, "Successfully added location", map[string]any{"location": loc})
}

func (r *MapRoute) List(c portal.Context) error {
	locations, err := r.svc.List(c)
	if err != nil {
		return err
	}
	return portal.Success(c, http.StatusOK, "Found locations", map[string]any{"locations": locations})
}
