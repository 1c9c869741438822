package internal

import (
	"log/slog"

	"github.com/relawan/portal/pkg/logger"
	"github.com/relawan/portal/pkg/validator"
)

// Option configures the application.
type Option func(*App)

// WithModules adds controller modules to load during Build.
// The slice order is the merge order, so cross-group route order follows it.
//
// Example:
//
//	portal.New(
//	    portal.WithModules(controllers.Modules(svc)...),
//	)
func WithModules(modules ...Module) Option {
	return func(a *App) {
		a.modules = append(a.modules, modules...)
	}
}

// WithRegistry uses reg instead of a fresh registry.
// Groups already declared on reg are assembled together with the modules.
func WithRegistry(reg *Registry) Option {
	return func(a *App) {
		if reg != nil {
			a.registry = reg
		}
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided and runs before routing.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithErrorHandler replaces DefaultErrorHandler.
// It is called at most once per request, and only while nothing was written.
//
// Example:
//
//	portal.WithErrorHandler(func(c portal.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live) always reports healthy while the process runs.
// Readiness (/health/ready) runs all configured checks.
//
// Example:
//
//	portal.WithHealthChecks(
//	    portal.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    portal.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(HealthChecks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger creates a logger with a component name and optional extractors.
//
// Example:
//
//	portal.New(
//	    portal.WithLogger("api", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithValidator replaces the validator used by Context.BindJSON.
func WithValidator(v *validator.Validator) Option {
	return func(a *App) {
		if v != nil {
			a.validator = v
		}
	}
}
