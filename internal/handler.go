package internal

// HandlerFunc is the signature for route handlers and the shape every
// controller method must have to be bound by the assembler.
// Returning a non-nil error sends the request to the error stage.
//
// Example:
//
//	type ArticleRoute struct {
//	    articles services.ArticleStore
//	}
//
//	func (r *ArticleRoute) GetArticle(c portal.Context) error {
//	    return c.JSON(http.StatusOK, article)
//	}
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect the request, short-circuit processing,
// or observe the error returned by the rest of the chain.
//
// Example:
//
//	func AdminOnly(next portal.HandlerFunc) portal.HandlerFunc {
//	    return func(c portal.Context) error {
//	        if !isAdmin(c) {
//	            return portal.ErrForbidden("forbidden")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error

// ErrorSink receives a request failure. The async wrapper calls it
// at most once per request.
type ErrorSink func(Context, error)
