package internal

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// DefaultVersion is the API version used when a group does not set one.
const DefaultVersion = 1

// RouteGroup configures a route group declaration.
type RouteGroup struct {
	// Name identifies the group. Defaults to the instance's type, e.g. "*controllers.ArticleRoute".
	Name string

	// Path is the mount segment, e.g. "articles". Required.
	Path string

	// Middlewares apply to every controller in the group.
	Middlewares []Middleware

	// Version sets the "/v{N}" prefix. Zero means DefaultVersion.
	Version int
}

// Controller configures a controller declaration.
type Controller struct {
	Method      string
	Path        string
	Handler     string
	Middlewares []Middleware
}

// Method builds a Controller for any HTTP method.
// Methods the assembler does not bind are kept and skipped at assembly.
func Method(method, path, handler string, mw ...Middleware) Controller {
	return Controller{Method: method, Path: path, Handler: handler, Middlewares: mw}
}

// GET builds a GET Controller.
func GET(path, handler string, mw ...Middleware) Controller {
	return Method(http.MethodGet, path, handler, mw...)
}

// POST builds a POST Controller.
func POST(path, handler string, mw ...Middleware) Controller {
	return Method(http.MethodPost, path, handler, mw...)
}

// PUT builds a PUT Controller.
func PUT(path, handler string, mw ...Middleware) Controller {
	return Method(http.MethodPut, path, handler, mw...)
}

// PATCH builds a PATCH Controller.
func PATCH(path, handler string, mw ...Middleware) Controller {
	return Method(http.MethodPatch, path, handler, mw...)
}

// DELETE builds a DELETE Controller.
func DELETE(path, handler string, mw ...Middleware) Controller {
	return Method(http.MethodDelete, path, handler, mw...)
}

// DeclareRouteGroup registers instance as a route group.
// The path is validated before anything is inserted.
func (r *Registry) DeclareRouteGroup(instance any, g RouteGroup) error {
	desc, err := groupDescriptor(instance, g)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertGroup(desc)
}

// DeclareController appends a controller to the named group.
// The group does not need to be declared yet.
func (r *Registry) DeclareController(group string, c Controller) error {
	desc, err := controllerDescriptor(c)
	if err != nil {
		return fmt.Errorf("group %q: %w", group, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendControllers(group, desc)
}

// Declare registers a route group together with its controllers.
// Every path is validated first, so either all declarations are
// inserted or none are.
//
// Example:
//
//	reg.Declare(&ArticleRoute{}, portal.RouteGroup{Path: "articles"},
//	    portal.POST("/", "PostArticle", auth, validate),
//	    portal.GET("/:articleId", "GetArticle"),
//	)
func (r *Registry) Declare(instance any, g RouteGroup, cs ...Controller) error {
	group, err := groupDescriptor(instance, g)
	if err != nil {
		return err
	}

	descs := make([]ControllerDescriptor, 0, len(cs))
	for _, c := range cs {
		d, err := controllerDescriptor(c)
		if err != nil {
			return fmt.Errorf("group %q: %w", group.Name, err)
		}
		descs = append(descs, d)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.insertGroup(group); err != nil {
		return err
	}
	return r.appendControllers(group.Name, descs...)
}

// GroupName returns the default group name for instance.
func GroupName(instance any) string {
	return reflect.TypeOf(instance).String()
}

func groupDescriptor(instance any, g RouteGroup) (GroupDescriptor, error) {
	if instance == nil {
		return GroupDescriptor{}, ErrNilInstance
	}
	if !ValidGroupPath(g.Path) {
		return GroupDescriptor{}, fmt.Errorf("%w: %q", ErrInvalidGroupPath, g.Path)
	}

	version := g.Version
	switch {
	case version == 0:
		version = DefaultVersion
	case version < 0:
		return GroupDescriptor{}, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}

	name := g.Name
	if name == "" {
		name = GroupName(instance)
	}

	return GroupDescriptor{
		Instance:    instance,
		Name:        name,
		Path:        g.Path,
		Middlewares: g.Middlewares,
		Version:     version,
	}, nil
}

func controllerDescriptor(c Controller) (ControllerDescriptor, error) {
	if !ValidControllerPath(c.Path) {
		return ControllerDescriptor{}, fmt.Errorf("%w: %q", ErrInvalidControllerPath, c.Path)
	}
	if c.Handler == "" {
		return ControllerDescriptor{}, fmt.Errorf("%w: %s %s", ErrInvalidHandler, c.Method, c.Path)
	}
	return ControllerDescriptor{
		Method:      strings.ToUpper(c.Method),
		Path:        c.Path,
		Handler:     c.Handler,
		Middlewares: c.Middlewares,
	}, nil
}

// ValidGroupPath reports whether p is a usable group mount path:
// non-empty, with no leading or trailing '/'.
func ValidGroupPath(p string) bool {
	return p != "" && !strings.HasPrefix(p, "/") && !strings.HasSuffix(p, "/")
}

// ValidControllerPath reports whether p is a usable controller sub-path:
// exactly "/", or starting with '/' and not ending with one.
func ValidControllerPath(p string) bool {
	if p == "/" {
		return true
	}
	return len(p) > 1 && strings.HasPrefix(p, "/") && !strings.HasSuffix(p, "/")
}
