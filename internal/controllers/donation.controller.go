package controllers

import (
	"net/http"

	"github.com/relawan/portal"
	"github.com/relawan/portal/internal/services"
	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/middlewares"
)

// DonationRoute serves /v1/donations.
type DonationRoute struct {
	svc *services.Donations
}

func RegisterDonations(reg *portal.Registry, deps *Deps) error {
	return reg.Declare(&DonationRoute{svc: deps.Services.Donations}, portal.RouteGroup{Path: "donations"},
		portal.POST("/add", "Add", middlewares.Validate[services.NewDonation]()),
		portal.GET("/", "List", deps.authenticate(), deps.requireRole(store.RoleAdmin)),
	)
}

func (r *DonationRoute) Add(c portal.Context) error {
	if _, err := r.svc.Add(c, *middlewares.Valid[services.NewDonation](c)); err != nil {
		return err
	}
	return portal.Success(c, http.StatusOK, "Successfully added donation", nil)
}

func (r *DonationRoute) List(c portal.Context) error {
	donations, err := r.svc.List(c)
	if err != nil {
		return err
	}
	return portal.Success(c, http.StatusOK, "Found donations", map[string]any{"donations": donations})
}
