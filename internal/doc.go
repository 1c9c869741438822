// Package internal provides the core types and implementation for the portal framework.
//
// This package is internal and should not be used directly. Import
// "github.com/relawan/portal" instead, which re-exports the public API.
//
// # Core Types
//
//   - Registry: the process-wide record of route groups and their controllers
//   - RouteGroup and Controller: declaration values, built with GET, POST, PUT, PATCH and DELETE
//   - Module: one controller file's registration function, loaded by LoadModules
//   - App: owns the registry, the chi dispatch tree and the error stage
//   - Context: request/response access shared by every stage of one request
//   - HandlerFunc, Middleware, ErrorHandler: the pipeline signatures
//
// # Lifecycle
//
// Startup runs in three phases, and each one only reads what the previous produced:
//
//  1. Declare: modules call Declare, DeclareRouteGroup and DeclareController
//     on a registry. Modules run concurrently against private scratch
//     registries.
//  2. Freeze: LoadModules merges the scratch registries in manifest order and
//     freezes the result. Further declarations fail with ErrRegistryFrozen.
//  3. Assemble: Assemble mounts every group at "/v{version}/{path}" and binds
//     its controllers in declaration order.
//
// App.Build runs all three; App.Run calls Build before serving.
//
// # Declaring Routes
//
// A route group is any value with handler methods of type func(Context) error.
// Controllers name those methods; Assemble resolves them once at startup:
//
//	type articleRoutes struct{ svc *services.Services }
//
//	func (r *articleRoutes) Find(c portal.Context) error { ... }
//
//	func registerArticles(reg *portal.Registry, svc *services.Services) error {
//	    return reg.Declare(&articleRoutes{svc: svc},
//	        portal.RouteGroup{Path: "articles"},
//	        portal.GET("/:articleId", "Find", middlewares.JWT[auth.Claims](svc.Tokens, middlewares.WithJWTOptional())),
//	    )
//	}
//
// # Errors
//
// Every handler and middleware stage is passed through Wrap. A failure, whether
// returned, panicked or returned after the handler waited on other goroutines,
// reaches the error stage exactly once per request. DefaultErrorHandler renders
// it as {"status":"fail","message":...}.
//
// # Context as context.Context
//
// Context embeds context.Context, so handlers pass it straight to stores:
//
//	func (r *userRoutes) Profile(c portal.Context) error {
//	    user, err := r.svc.Users.FindByID(c, auth.ClaimsFrom(c).ID)
//	    if err != nil {
//	        return err
//	    }
//	    return portal.Success(c, http.StatusOK, "Found user", user)
//	}
package internal
