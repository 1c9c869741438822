package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultHealthTimeout = 5 * time.Second

	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"

	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthCheckFunc reports whether a dependency is usable.
// db.Healthcheck and redis.Healthcheck return functions of this shape.
type HealthCheckFunc func(ctx context.Context) error

// HealthChecks maps check names to their functions.
type HealthChecks map[string]HealthCheckFunc

type healthConfig struct {
	checks        HealthChecks
	livenessPath  string
	readinessPath string
}

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
//
// Example:
//
//	portal.WithReadinessCheck("db", db.Healthcheck(pool))
func WithReadinessCheck(name string, fn HealthCheckFunc) HealthOption {
	return func(c *healthConfig) {
		if fn != nil {
			c.checks[name] = fn
		}
	}
}

type healthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func livenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, healthReport{Status: statusHealthy})
	}
}

// readinessHandler runs every check in parallel under a shared timeout.
// A failing check does not cancel the others, so the report is complete.
func readinessHandler(checks HealthChecks, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := runChecks(r.Context(), checks, log)

		status := http.StatusOK
		if report.Status == statusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		writeHealth(w, status, report)
	}
}

func runChecks(ctx context.Context, checks HealthChecks, log *slog.Logger) healthReport {
	report := healthReport{Status: statusHealthy}
	if len(checks) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, defaultHealthTimeout)
	defer cancel()

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	report.Checks = make(map[string]string, len(checks))

	for name, check := range checks {
		g.Go(func() error {
			result := statusHealthy
			if err := check(ctx); err != nil {
				result = statusUnhealthy
				log.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.Any("error", err),
				)
			}

			mu.Lock()
			report.Checks[name] = result
			if result == statusUnhealthy {
				report.Status = statusUnhealthy
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return report
}

func writeHealth(w http.ResponseWriter, code int, report healthReport) {
	env := envelope{Status: statusSuccess, Message: report.Status}
	if len(report.Checks) > 0 {
		env.Data = report.Checks
	}
	if code != http.StatusOK {
		env.Status = statusFail
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(env)
}
