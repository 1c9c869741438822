package controllers

import (
	"net/http"

	"github.com/relawan/portal"
	"github.com/relawan/portal/internal/auth"
	"github.com/relawan/portal/internal/services"
	"github.com/relawan/portal/middlewares"
)

// ReportRoute serves /v1/reports.
type ReportRoute struct {
	svc *services.Reports
}

type reportParams struct {
	ReportID int64 `param:"reportId" validate:"gte=1"`
}

func RegisterReports(reg *portal.Registry, deps *Deps) error {
	return reg.Declare(&ReportRoute{svc: deps.Services.Reports}, portal.RouteGroup{
		Path:        "reports",
		Middlewares: []portal.Middleware{deps.authenticate()},
	},
		portal.GET("/", "List"),
		portal.POST("/add", "Add", middlewares.Validate[services.NewReport]()),
		portal.PUT("/status-update/:reportId", "UpdateStatus", deps.member(), middlewares.ValidateParams[reportParams]()),
	)
}

func (r *ReportRoute) List(c portal.Context) error {
	reports, err := r.svc.List(c)
	if err != nil {
		return err
	}
	return portal.Success(c, http.StatusOK, "Managed to get all reports", map[string]any{"reports": reports})
}

func (r *ReportRoute) Add(c portal.Context) error {
	if _, err := r.svc.Add(c, *middlewares.Valid[services.NewReport](c)); err != nil {
		return err
	}
	return portal.Success(c, http.StatusCreated, "Successfully added report", nil)
}

func (r *ReportRoute) UpdateStatus(c portal.Context) error {
	id := middlewares.ValidParams[reportParams](c).ReportID
	if err := r.svc.Resolve(c, id, auth.ClaimsFrom(c).UserID); err != nil {
		return translate(err)
	}
	return portal.Success(c, http.StatusOK, "Successfully mark the report status as resolved", nil)
}
