package internal

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// ControllerMarker is the file name marker that identifies controller modules.
const ControllerMarker = ".controller."

// Module is one controller module listed in the generated manifest.
type Module struct {
	// Name is the source file that contributed the module.
	Name string

	// Declare populates the registry with the module's groups and controllers.
	Declare func(*Registry) error
}

// NewModule creates a Module.
func NewModule(name string, declare func(*Registry) error) Module {
	return Module{Name: name, Declare: declare}
}

// LoadModules runs every module's declarations and freezes reg.
//
// Modules run concurrently, each against its own scratch registry, and are
// merged into reg in the order given. Any module failure, including a
// panic, aborts the load and leaves reg untouched, so the app never starts
// with a partially populated registry.
func LoadModules(ctx context.Context, reg *Registry, modules ...Module) error {
	scratch := make([]*Registry, len(modules))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range modules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			local := NewRegistry()
			if err := runModule(m, local); err != nil {
				return err
			}
			scratch[i] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	staged := NewRegistry()
	for i, local := range scratch {
		if err := staged.merge(local); err != nil {
			return fmt.Errorf("%w %s: %w", ErrModuleLoad, modules[i].Name, err)
		}
	}
	if err := reg.merge(staged); err != nil {
		return fmt.Errorf("%w: %w", ErrModuleLoad, err)
	}

	reg.Freeze()
	return nil
}

func runModule(m Module, reg *Registry) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w %s: %w", ErrModuleLoad, m.Name, &PanicError{Value: p, Stack: debug.Stack()})
		}
	}()

	if m.Declare == nil {
		return fmt.Errorf("%w %s: no declare function", ErrModuleLoad, m.Name)
	}
	if err := m.Declare(reg); err != nil {
		return fmt.Errorf("%w %s: %w", ErrModuleLoad, m.Name, err)
	}
	return nil
}
