package middlewares

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/relawan/portal/internal"
)

// DefaultTimeout is used when Timeout receives a non-positive duration.
const DefaultTimeout = 30 * time.Second

// Timeout bounds the time later stages may take. The request context gets
// the deadline, so stores observe cancellation through c.
//
// Later stages run on their own goroutine against a buffered response.
// When they finish in time the response is copied through; on expiry a
// *TimeoutError is returned and anything the handler writes afterwards
// fails with http.ErrHandlerTimeout.
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), d)
			defer cancel()
			c.SetContext(ctx)

			bc, commit, discard := internal.Buffer(c)
			done := make(chan error, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						done <- &PanicError{Value: r, Stack: debug.Stack()}
					}
				}()
				done <- next(bc)
			}()

			select {
			case err := <-done:
				commit()
				return err
			case <-ctx.Done():
				discard()
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return &TimeoutError{Duration: d}
				}
				return ctx.Err()
			}
		}
	}
}
