package internal_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relawan/portal/internal"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("success never reaches sink", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/v1/probe/1", nil)

		probe(t, req, func(c internal.Context) {
			called := false
			h := internal.Wrap(func(internal.Context) error { return nil }, func(internal.Context, error) { called = true })

			require.NoError(t, h(c))
			require.False(t, called)
			require.False(t, internal.Reported(c))
		})
	})

	t.Run("nested stages report once", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/v1/probe/1", nil)
		boom := errors.New("boom")

		probe(t, req, func(c internal.Context) {
			var got []error
			sink := func(_ internal.Context, err error) { got = append(got, err) }

			inner := internal.Wrap(func(internal.Context) error { return boom }, sink)
			outer := internal.Wrap(func(c internal.Context) error { return inner(c) }, sink)

			require.ErrorIs(t, outer(c), boom)
			require.Equal(t, []error{boom}, got)
			require.True(t, internal.Reported(c))
		})
	})

	t.Run("panic becomes PanicError", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/v1/probe/1", nil)

		probe(t, req, func(c internal.Context) {
			var got error
			h := internal.Wrap(func(internal.Context) error { panic("bad state") }, func(_ internal.Context, err error) { got = err })

			err := h(c)
			var pe *internal.PanicError
			require.ErrorAs(t, err, &pe)
			require.Equal(t, "bad state", pe.Value)
			require.NotEmpty(t, pe.Stack)
			require.Same(t, err, got)
		})
	})

	t.Run("failure resolved by another goroutine", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/v1/probe/1", nil)
		boom := errors.New("late failure")

		probe(t, req, func(c internal.Context) {
			var (
				mu    sync.Mutex
				count int
			)
			sink := func(internal.Context, error) {
				mu.Lock()
				count++
				mu.Unlock()
			}

			h := internal.Wrap(func(internal.Context) error {
				var wg sync.WaitGroup
				errs := make(chan error, 3)
				for range 3 {
					wg.Go(func() { errs <- boom })
				}
				wg.Wait()
				close(errs)
				return <-errs
			}, sink)

			// Concurrent invocations on one request still share the guard.
			var wg sync.WaitGroup
			for range 4 {
				wg.Go(func() { _ = h(c) })
			}
			wg.Wait()

			require.Equal(t, 1, count)
		})
	})

	t.Run("nil sink", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/v1/probe/1", nil)

		probe(t, req, func(c internal.Context) {
			err := internal.Wrap(func(internal.Context) error { return errors.New("x") }, nil)(c)
			require.Error(t, err)
		})
	})
}
