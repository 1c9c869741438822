package middlewares

import (
	"errors"
	"runtime/debug"

	"github.com/relawan/portal/internal"
)

// DefaultStackSize caps the stack captured for a recovered panic.
const DefaultStackSize = 8 << 10

// RecoverOption configures Recover.
type RecoverOption func(*recoverConfig)

type recoverConfig struct {
	stackSize int
}

// WithStackSize sets the captured stack size. Zero disables stack capture.
func WithStackSize(n int) RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.stackSize = max(n, 0)
	}
}

// Recover logs panics raised by later stages with the request id and a
// bounded stack. Wrapped stages already turn a panic into a *PanicError,
// so Recover acts on that error as it comes back and only recovers
// panics itself when used outside an App.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &recoverConfig{stackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &PanicError{Value: r, Stack: debug.Stack()}
				}

				var pe *PanicError
				if !errors.As(err, &pe) {
					return
				}

				pe.Stack = trimStack(pe.Stack, cfg.stackSize)
				if pe.Stack == nil {
					c.LogError("panic recovered", "panic", pe.Value)
					return
				}
				c.LogError("panic recovered", "panic", pe.Value, "stack", string(pe.Stack))
			}()

			return next(c)
		}
	}
}

func trimStack(stack []byte, size int) []byte {
	if size == 0 || len(stack) == 0 {
		return nil
	}
	return stack[:min(len(stack), size)]
}
