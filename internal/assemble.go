package internal

import (
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
)

// Binding is one route produced by Assemble.
type Binding struct {
	Group   string
	Method  string
	Path    string
	Handler string
	// Chain is the number of stages: group middleware, controller middleware and the handler.
	Chain int
}

var handlerFuncType = reflect.TypeFor[HandlerFunc]()

// Assemble reads the registry once and binds every group onto r.
//
// Each group becomes a sub-router at "/v{N}/{path}" carrying the group
// middleware. Its controllers are bound in declaration order. Controllers
// with a method other than GET, POST, PUT, PATCH or DELETE are skipped.
// A handler name that does not resolve to a method of type
// func(Context) error on the group instance fails the whole assembly
// before anything is bound.
//
// The registry is frozen by the call. Assembling the same registry again
// produces the same bindings.
func Assemble(reg *Registry, r Router, log *slog.Logger) ([]Binding, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	snapshot := reg.Snapshot()

	type route struct {
		ctrl    ControllerDescriptor
		handler HandlerFunc
	}
	resolved := make([][]route, len(snapshot))
	prefixes := make(map[string]string, len(snapshot))
	for i, gr := range snapshot {
		if other, ok := prefixes[gr.Group.Prefix()]; ok {
			return nil, fmt.Errorf("%w: %s used by %s and %s", ErrDuplicatePrefix, gr.Group.Prefix(), other, gr.Group.Name)
		}
		prefixes[gr.Group.Prefix()] = gr.Group.Name

		for _, ctrl := range gr.Controllers {
			if !supportedMethod(ctrl.Method) {
				continue
			}
			h, err := resolveHandler(gr.Group.Instance, ctrl.Handler)
			if err != nil {
				return nil, fmt.Errorf("%w: %s %s%s -> %s.%s", err, ctrl.Method, gr.Group.Prefix(), ctrl.Path, gr.Group.Name, ctrl.Handler)
			}
			resolved[i] = append(resolved[i], route{ctrl: ctrl, handler: h})
		}
	}

	for _, name := range reg.Orphans() {
		log.Warn("controllers declared for unknown route group", slog.String("group", name))
	}

	var bindings []Binding
	for i, gr := range snapshot {
		group := gr.Group
		prefix := group.Prefix()

		for _, ctrl := range gr.Controllers {
			if !supportedMethod(ctrl.Method) {
				log.Debug("skipping controller with unsupported method",
					slog.String("method", ctrl.Method),
					slog.String("path", prefix+ctrl.Path),
					slog.String("group", group.Name),
				)
			}
		}

		routes := resolved[i]
		r.Route(prefix, func(sub Router) {
			sub.Use(group.Middlewares...)
			for _, rt := range routes {
				sub.Handle(rt.ctrl.Method, chiPattern(rt.ctrl.Path), rt.handler, rt.ctrl.Middlewares...)

				b := Binding{
					Group:   group.Name,
					Method:  rt.ctrl.Method,
					Path:    prefix + rt.ctrl.Path,
					Handler: rt.ctrl.Handler,
					Chain:   len(group.Middlewares) + len(rt.ctrl.Middlewares) + 1,
				}
				bindings = append(bindings, b)
				log.Info("route registered",
					slog.String("method", b.Method),
					slog.String("path", b.Path),
					slog.String("group", b.Group),
				)
			}
		})
	}

	return bindings, nil
}

func supportedMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// resolveHandler looks up name on instance and converts it to a HandlerFunc.
func resolveHandler(instance any, name string) (HandlerFunc, error) {
	m := reflect.ValueOf(instance).MethodByName(name)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: method %q not found", ErrUnresolvedHandler, name)
	}
	if !m.Type().ConvertibleTo(handlerFuncType) {
		return nil, fmt.Errorf("%w: method %q has type %s", ErrUnresolvedHandler, name, m.Type())
	}
	return m.Convert(handlerFuncType).Interface().(HandlerFunc), nil
}

// chiPattern rewrites ":name" segments to chi's "{name}" form.
func chiPattern(path string) string {
	if !strings.Contains(path, ":") {
		return path
	}
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if len(s) > 1 && s[0] == ':' {
			segments[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}
