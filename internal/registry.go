package internal

import (
	"fmt"
	"slices"
	"sync"
)

// GroupDescriptor describes one declared route group.
type GroupDescriptor struct {
	// Instance is the live object whose methods are the group's handlers.
	Instance any

	// Name identifies the group and joins it to its controllers.
	Name string

	// Path is the mount segment without leading or trailing '/'.
	Path string

	// Middlewares run for every controller of the group, before controller middleware.
	Middlewares []Middleware

	// Version is the API version used in the external prefix.
	Version int
}

// Prefix returns the externally visible mount point "/v{Version}/{Path}".
func (g GroupDescriptor) Prefix() string {
	return fmt.Sprintf("/v%d/%s", g.Version, g.Path)
}

// ControllerDescriptor describes one declared controller of a group.
type ControllerDescriptor struct {
	// Method is the upper-cased HTTP method.
	Method string

	// Path is the sub-path appended to the group prefix.
	Path string

	// Handler is the name of the handler method on the group instance.
	Handler string

	// Middlewares run after group middleware, before the handler.
	Middlewares []Middleware
}

// GroupRoutes joins a group with its controllers in declaration order.
type GroupRoutes struct {
	Group       GroupDescriptor
	Controllers []ControllerDescriptor
}

// Registry holds route metadata between declaration and assembly.
// It is written while controller modules load and read once when routes
// are assembled. Freeze marks the end of the write phase.
type Registry struct {
	groups      []*GroupDescriptor
	index       map[string]int
	controllers map[string][]ControllerDescriptor
	// pending keeps first-seen order of groups named by controllers,
	// so merges and orphan reports stay deterministic.
	pending []string
	mu      sync.RWMutex
	frozen  bool
}

// NewRegistry creates an empty, writable registry.
func NewRegistry() *Registry {
	return &Registry{
		index:       make(map[string]int),
		controllers: make(map[string][]ControllerDescriptor),
	}
}

// Freeze ends the write phase. It is idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether the registry accepts no more declarations.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Groups returns a copy of the declared groups in insertion order.
func (r *Registry) Groups() []GroupDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]GroupDescriptor, len(r.groups))
	for i, g := range r.groups {
		out[i] = *g
		out[i].Middlewares = slices.Clone(g.Middlewares)
	}
	return out
}

// Controllers returns a copy of the controllers declared for group.
func (r *Registry) Controllers(group string) []ControllerDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneControllers(r.controllers[group])
}

// Snapshot freezes the registry and returns every group with its
// controllers in registry order.
func (r *Registry) Snapshot() []GroupRoutes {
	r.Freeze()

	groups := r.Groups()
	out := make([]GroupRoutes, len(groups))
	for i, g := range groups {
		out[i] = GroupRoutes{Group: g, Controllers: r.Controllers(g.Name)}
	}
	return out
}

// Orphans returns names of groups that have controllers but were never declared.
func (r *Registry) Orphans() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, name := range r.pending {
		if _, ok := r.index[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// insertGroup adds a validated group. Caller must hold the write lock.
func (r *Registry) insertGroup(g GroupDescriptor) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	if _, ok := r.index[g.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateGroup, g.Name)
	}
	r.index[g.Name] = len(r.groups)
	r.groups = append(r.groups, &g)
	return nil
}

// appendControllers adds validated controllers. Caller must hold the write lock.
func (r *Registry) appendControllers(group string, cs ...ControllerDescriptor) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	if _, seen := r.controllers[group]; !seen {
		r.pending = append(r.pending, group)
	}
	r.controllers[group] = append(r.controllers[group], cs...)
	return nil
}

// merge moves every declaration of src into r, keeping src's order.
// It is used by the loader to fold per-module registries together.
func (r *Registry) merge(src *Registry) error {
	src.mu.RLock()
	defer src.mu.RUnlock()
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrRegistryFrozen
	}
	for _, g := range src.groups {
		if _, ok := r.index[g.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateGroup, g.Name)
		}
	}
	for _, g := range src.groups {
		if err := r.insertGroup(*g); err != nil {
			return err
		}
	}
	for _, name := range src.pending {
		if err := r.appendControllers(name, src.controllers[name]...); err != nil {
			return err
		}
	}
	return nil
}

func cloneControllers(cs []ControllerDescriptor) []ControllerDescriptor {
	out := make([]ControllerDescriptor, len(cs))
	for i, c := range cs {
		out[i] = c
		out[i].Middlewares = slices.Clone(c.Middlewares)
	}
	return out
}
