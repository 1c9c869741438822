// Package middlewares provides the HTTP middleware used by the portal API.
//
// Global middleware is installed with portal.WithMiddleware and runs for
// every request, matched or not:
//
//	app := portal.New(
//	    portal.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.AccessLog(),
//	        middlewares.Secure(),
//	        middlewares.CORS(),
//	        middlewares.Timeout(30*time.Second),
//	    ),
//	)
//
// Route middleware is attached in controller declarations:
//
//	portal.POST("/add", "Add", auth.Authenticate, middlewares.Validate[CreateReport]())
//
// Middleware returns errors instead of writing failure responses, so every
// failure is rendered by the application's error handler.
package middlewares
