package portal

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/relawan/portal/internal"
	"github.com/relawan/portal/pkg/logger"
	"github.com/relawan/portal/pkg/validator"
)

// Type aliases - public API
type (
	// App owns the registry, the dispatch tree and the error stage.
	App = internal.App

	// Registry holds route groups and controllers between declaration and assembly.
	Registry = internal.Registry

	// RouteGroup configures a route group declaration.
	RouteGroup = internal.RouteGroup

	// Controller configures a controller declaration.
	Controller = internal.Controller

	// GroupDescriptor describes a declared route group.
	GroupDescriptor = internal.GroupDescriptor

	// ControllerDescriptor describes a declared controller.
	ControllerDescriptor = internal.ControllerDescriptor

	// Module is one controller file's registration function.
	Module = internal.Module

	// Binding is one route produced by assembly.
	Binding = internal.Binding

	// Router is the dispatch tree routes are assembled onto.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler renders errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// ErrorSink receives a request failure.
	ErrorSink = internal.ErrorSink

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// HealthCheckFunc reports whether a dependency is usable.
	HealthCheckFunc = internal.HealthCheckFunc

	// ValidationErrors is a collection of field validation failures.
	ValidationErrors = internal.ValidationErrors

	// HTTPError is an error with a status code and a user-facing message.
	HTTPError = internal.HTTPError

	// PanicError is a panic recovered from a handler or middleware.
	PanicError = internal.PanicError

	// TimeoutError is a request that exceeded its deadline.
	TimeoutError = internal.TimeoutError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// ResponseWriter records status, size and whether anything was written.
	ResponseWriter = internal.ResponseWriter

	// Extractor tries request sources in order.
	Extractor = internal.Extractor

	// ExtractorSource reads one value from the request.
	ExtractorSource = internal.ExtractorSource

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// Registration and assembly errors.
var (
	ErrInvalidGroupPath      = internal.ErrInvalidGroupPath
	ErrInvalidControllerPath = internal.ErrInvalidControllerPath
	ErrInvalidVersion        = internal.ErrInvalidVersion
	ErrInvalidHandler        = internal.ErrInvalidHandler
	ErrNilInstance           = internal.ErrNilInstance
	ErrDuplicateGroup        = internal.ErrDuplicateGroup
	ErrDuplicatePrefix       = internal.ErrDuplicatePrefix
	ErrRegistryFrozen        = internal.ErrRegistryFrozen
	ErrModuleLoad            = internal.ErrModuleLoad
	ErrUnresolvedHandler     = internal.ErrUnresolvedHandler
	ErrBindTarget            = internal.ErrBindTarget
)

// DefaultVersion is the API version used when a group does not set one.
const DefaultVersion = internal.DefaultVersion

// ControllerMarker is the file name marker that identifies controller modules.
const ControllerMarker = internal.ControllerMarker

// Constructors

// New creates a new application with the given options.
//
// Example:
//
//	app := portal.New(
//	    portal.WithLogger("api", middlewares.RequestIDExtractor()),
//	    portal.WithModules(controllers.Modules(deps)...),
//	)
//
//	err := app.Run(":3000", portal.ShutdownHook(db.Shutdown(pool)))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// NewRegistry creates an empty, writable registry.
func NewRegistry() *Registry {
	return internal.NewRegistry()
}

// NewModule creates a Module for the manifest.
func NewModule(name string, declare func(*Registry) error) Module {
	return internal.NewModule(name, declare)
}

// LoadModules runs every module against reg, merges them in order and freezes reg.
func LoadModules(ctx context.Context, reg *Registry, modules ...Module) error {
	return internal.LoadModules(ctx, reg, modules...)
}

// Assemble binds every group of reg onto r and freezes reg.
func Assemble(reg *Registry, r Router, log *slog.Logger) ([]Binding, error) {
	return internal.Assemble(reg, r, log)
}

// Wrap forwards the failure of h to sink once per request.
func Wrap(h HandlerFunc, sink ErrorSink) HandlerFunc {
	return internal.Wrap(h, sink)
}

// Reported reports whether a failure of this request already reached the error stage.
func Reported(c Context) bool {
	return internal.Reported(c)
}

// GroupName returns the default group name for instance.
func GroupName(instance any) string {
	return internal.GroupName(instance)
}

// Controller builders

// Method builds a Controller for any HTTP method.
func Method(method, path, handler string, mw ...Middleware) Controller {
	return internal.Method(method, path, handler, mw...)
}

// GET builds a GET Controller.
func GET(path, handler string, mw ...Middleware) Controller {
	return internal.GET(path, handler, mw...)
}

// POST builds a POST Controller.
func POST(path, handler string, mw ...Middleware) Controller {
	return internal.POST(path, handler, mw...)
}

// PUT builds a PUT Controller.
func PUT(path, handler string, mw ...Middleware) Controller {
	return internal.PUT(path, handler, mw...)
}

// PATCH builds a PATCH Controller.
func PATCH(path, handler string, mw ...Middleware) Controller {
	return internal.PATCH(path, handler, mw...)
}

// DELETE builds a DELETE Controller.
func DELETE(path, handler string, mw ...Middleware) Controller {
	return internal.DELETE(path, handler, mw...)
}

// App options

// WithModules adds controller modules to load during Build.
func WithModules(modules ...Module) Option {
	return internal.WithModules(modules...)
}

// WithRegistry uses reg instead of a fresh registry.
func WithRegistry(reg *Registry) Option {
	return internal.WithRegistry(reg)
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithErrorHandler replaces the default envelope error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables health check endpoints with optional configuration.
//
// Example:
//
//	portal.WithHealthChecks(
//	    portal.WithReadinessCheck("db", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a logger with a component name and optional extractors.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithValidator replaces the validator used by Context.BindJSON.
func WithValidator(v *validator.Validator) Option {
	return internal.WithValidator(v)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn HealthCheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Address overrides the address passed to App.Run.
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Listener serves on ln instead of listening on the address.
func Listener(ln net.Listener) RunOption {
	return internal.Listener(ln)
}

// Logger sets the server lifecycle logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook registers a cleanup function to run during shutdown.
//
// Example:
//
//	portal.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Responses and errors

// Success writes a "success" envelope.
func Success(c Context, code int, message string, data any) error {
	return internal.Success(c, code, message, data)
}

// Fail writes a "fail" envelope.
func Fail(c Context, code int, message string, data any) error {
	return internal.Fail(c, code, message, data)
}

// DefaultErrorHandler renders errors as "fail" envelopes.
func DefaultErrorHandler(c Context, err error) error {
	return internal.DefaultErrorHandler(c, err)
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrConflict(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// WithError attaches the underlying cause to an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// WithData attaches a payload to an HTTPError.
func WithData(data any) HTTPErrorOption {
	return internal.WithData(data)
}

// AsHTTPError extracts the HTTPError from an error chain.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// Extractors

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource {
	return internal.FromHeader(name)
}

// FromQuery reads a query parameter.
func FromQuery(name string) ExtractorSource {
	return internal.FromQuery(name)
}

// FromParam reads a URL path parameter.
func FromParam(name string) ExtractorSource {
	return internal.FromParam(name)
}

// FromBearerToken reads a Bearer token from the Authorization header.
func FromBearerToken() ExtractorSource {
	return internal.FromBearerToken()
}
