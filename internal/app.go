package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/relawan/portal/pkg/logger"
	"github.com/relawan/portal/pkg/validator"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App owns the registry, the dispatch tree and the error stage.
// Routes are not mounted until Build runs; Run builds implicitly.
type App struct {
	router                  chi.Router
	registry                *Registry
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	validator               *validator.Validator
	middlewares             []Middleware
	modules                 []Module
	root                    HandlerFunc

	buildMu  sync.Mutex
	built    bool
	bindings []Binding
}

// New creates a new application with the given options.
//
// Example:
//
//	app := portal.New(
//	    portal.WithLogger("api", middlewares.RequestIDExtractor()),
//	    portal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    portal.WithModules(controllers.Modules(svc)...),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:    chi.NewRouter(),
		logger:    logger.NewNope(),
		validator: validator.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.registry == nil {
		a.registry = NewRegistry()
	}

	a.setupRoutes()
	return a
}

// Registry returns the registry modules declare into.
func (a *App) Registry() *Registry {
	return a.registry
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Build loads every module, freezes the registry and mounts the assembled
// route tree. Later calls return the bindings of the first successful call.
func (a *App) Build(ctx context.Context) ([]Binding, error) {
	a.buildMu.Lock()
	defer a.buildMu.Unlock()

	if a.built {
		return a.bindings, nil
	}

	if err := LoadModules(ctx, a.registry, a.modules...); err != nil {
		return nil, err
	}

	bindings, err := Assemble(a.registry, &chiRouter{mux: a.router, app: a}, a.logger)
	if err != nil {
		return nil, err
	}

	a.built = true
	a.bindings = bindings
	a.logger.InfoContext(ctx, "routes assembled",
		slog.Int("groups", len(a.registry.Groups())),
		slog.Int("routes", len(bindings)),
	)
	return bindings, nil
}

// Bindings returns the routes mounted by Build, or nil before it ran.
func (a *App) Bindings() []Binding {
	a.buildMu.Lock()
	defer a.buildMu.Unlock()
	return a.bindings
}

// ServeHTTP implements http.Handler. It creates the request Context,
// runs the global middleware and dispatches into the route tree. The
// response is sealed on return.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, nested := w.(*ResponseWriter)
	c := newContext(w, r, a)
	c.Set(failureKey{}, new(failure))
	_ = a.root(c)
	if !nested {
		c.responseWriter.Seal()
	}
}

// Run builds the routes and starts the HTTP server. It blocks until
// SIGINT/SIGTERM or the context passed via WithContext is canceled.
//
// Example:
//
//	err := app.Run(":3000",
//	    portal.Logger(log),
//	    portal.ShutdownHook(db.Shutdown(pool)),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.address == "" {
		cfg.address = addr
	}
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	if _, err := a.Build(cfg.baseCtx); err != nil {
		return fmt.Errorf("build routes: %w", err)
	}
	return runServer(a, cfg)
}

// setupRoutes installs the fallback handlers, health probes and the
// global middleware chain. Module routes are mounted later by Build.
func (a *App) setupRoutes() {
	notFound := a.notFoundHandler
	if notFound == nil {
		notFound = func(c Context) error {
			return ErrNotFound("Route not found")
		}
	}
	a.router.NotFound(a.adapt(a.compose(notFound)))

	methodNotAllowed := a.methodNotAllowedHandler
	if methodNotAllowed == nil {
		methodNotAllowed = func(c Context) error {
			return NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
	a.router.MethodNotAllowed(a.adapt(a.compose(methodNotAllowed)))

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, livenessHandler())
		a.router.Get(a.healthConfig.readinessPath, readinessHandler(a.healthConfig.checks, a.logger))
	}

	dispatch := func(c Context) error {
		a.router.ServeHTTP(c.Response(), c.Request())
		return nil
	}
	a.root = a.compose(dispatch, a.middlewares...)
}

// handleError is the error sink every wrapped stage reports to.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogDebug("error after response was written", slog.Any("error", err))
		return
	}

	h := a.errorHandler
	if h == nil {
		h = DefaultErrorHandler
	}
	if herr := h(c, err); herr != nil {
		c.LogError("error handler failed",
			slog.Any("error", herr),
			slog.Any("cause", err),
		)
	}
}
