// Package portal is a small framework for JSON APIs whose routes are
// declared next to their handlers and assembled into a chi tree at startup.
//
// # Quick Start
//
// Controller files (named "*.controller.go") declare route groups on a
// [Registry]. The routegen command collects them into a manifest, and the
// App loads the manifest, freezes the registry and mounts every group at
// "/v{version}/{path}":
//
//	//go:generate go run github.com/relawan/portal/cmd/routegen -root . -out manifest_gen.go
//
//	app := portal.New(
//	    portal.WithLogger("api", middlewares.RequestIDExtractor()),
//	    portal.WithMiddleware(middlewares.RequestID(), middlewares.AccessLog()),
//	    portal.WithModules(controllers.Modules(deps)...),
//	)
//
//	if err := app.Run(":3000"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Route Groups
//
// A group is any value with exported methods of type func(portal.Context) error.
// Controllers reference those methods by name:
//
//	type ReportRoute struct{ svc *services.Reports }
//
//	func (r *ReportRoute) UpdateStatus(c portal.Context) error { ... }
//
//	func RegisterReports(reg *portal.Registry, deps *Deps) error {
//	    return reg.Declare(&ReportRoute{svc: deps.Services.Reports}, portal.RouteGroup{Path: "reports"},
//	        portal.PUT("/status-update/:reportId", "UpdateStatus", deps.authenticate()),
//	    )
//	}
//
// Handler names are resolved once during assembly. A name that does not
// match a handler method stops startup with [ErrUnresolvedHandler].
//
// # Middleware
//
// Middleware wraps handlers to add cross-cutting concerns:
//
//	func Admin(next portal.HandlerFunc) portal.HandlerFunc {
//	    return func(c portal.Context) error {
//	        if auth.ClaimsFrom(c).AccessLevel != store.RoleAdmin {
//	            return portal.ErrForbidden("You don't have the permission to access this content")
//	        }
//	        return next(c)
//	    }
//	}
//
// Order within a route is group middleware, then controller middleware,
// then the handler.
//
// # Errors
//
// Returned errors and panics from any stage reach the error handler exactly
// once per request and are rendered as {"status":"fail","message":...}.
// Use [ErrNotFound], [ErrForbidden] and friends for client-facing failures.
//
// # Shutdown
//
// Run handles SIGINT/SIGTERM. Register cleanup with ShutdownHook:
//
//	app.Run(":3000",
//	    portal.ShutdownHook(db.Shutdown(pool)),
//	    portal.ShutdownHook(redis.Shutdown(client)),
//	)
package portal
