package internal

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
)

// Router is the dispatch tree routes are assembled onto.
type Router interface {
	// Handle binds h for method at path. mw runs inside the router's own stack.
	Handle(method, path string, h HandlerFunc, mw ...Middleware)

	// Route opens a sub-tree at pattern that inherits a copy of the stack.
	Route(pattern string, fn func(r Router))

	// Use appends to the stack of routes bound after the call.
	Use(mw ...Middleware)
}

// chiRouter binds onto chi. The middleware stack is composed per route
// rather than through chi.Use, so every stage of a route shares the one
// Context the request started with.
type chiRouter struct {
	mux   chi.Router
	app   *App
	stack []Middleware
}

func (r *chiRouter) Handle(method, path string, h HandlerFunc, mw ...Middleware) {
	chain := append(slices.Clone(r.stack), mw...)
	r.mux.Method(method, path, r.app.adapt(r.app.compose(h, chain...)))
}

func (r *chiRouter) Route(pattern string, fn func(Router)) {
	r.mux.Route(pattern, func(sub chi.Router) {
		fn(&chiRouter{mux: sub, app: r.app, stack: slices.Clone(r.stack)})
	})
}

func (r *chiRouter) Use(mw ...Middleware) {
	r.stack = append(r.stack, mw...)
}

// compose wraps h and then each middleware around it, innermost first.
// Each stage goes through Wrap once.
func (a *App) compose(h HandlerFunc, mw ...Middleware) HandlerFunc {
	h = Wrap(h, a.handleError)
	for _, m := range slices.Backward(mw) {
		h = Wrap(m(h), a.handleError)
	}
	return h
}

// adapt turns a composed chain into an http.HandlerFunc running on the
// request's existing Context.
func (a *App) adapt(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		_ = h(contextFor(w, req, a))
	}
}
