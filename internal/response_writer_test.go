package internal_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relawan/portal/internal"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("records explicit status", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := internal.NewResponseWriter(rec)

		rw.WriteHeader(http.StatusNotFound)

		require.True(t, rw.Written())
		require.Equal(t, http.StatusNotFound, rw.Status())
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("second WriteHeader is ignored", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := internal.NewResponseWriter(rec)

		rw.WriteHeader(http.StatusCreated)
		rw.WriteHeader(http.StatusInternalServerError)

		require.Equal(t, http.StatusCreated, rw.Status())
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("write implies 200 and counts bytes", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := internal.NewResponseWriter(rec)

		n, err := rw.Write([]byte("hello"))
		require.NoError(t, err)
		require.Equal(t, 5, n)
		_, err = rw.Write([]byte(" world"))
		require.NoError(t, err)

		require.True(t, rw.Written())
		require.Equal(t, http.StatusOK, rw.Status())
		require.Equal(t, int64(11), rw.Size())
		require.Equal(t, "hello world", rec.Body.String())
	})

	t.Run("fresh writer is not written", func(t *testing.T) {
		t.Parallel()

		rw := internal.NewResponseWriter(httptest.NewRecorder())
		require.False(t, rw.Written())
		require.Equal(t, http.StatusOK, rw.Status())
		require.Zero(t, rw.Size())
	})

	t.Run("concurrent writers send one header", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := internal.NewResponseWriter(rec)

		var wg sync.WaitGroup
		for i := range 8 {
			wg.Go(func() {
				if i%2 == 0 {
					rw.WriteHeader(http.StatusServiceUnavailable)
					return
				}
				_, _ = rw.Write([]byte("x"))
			})
		}
		wg.Wait()

		require.True(t, rw.Written())
		require.Equal(t, rec.Code, rw.Status())
		require.Equal(t, int64(4), rw.Size())
	})

	t.Run("sealed writer refuses writes", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := internal.NewResponseWriter(rec)
		_, err := rw.Write([]byte("first"))
		require.NoError(t, err)

		rw.Seal()
		rw.Header().Set("X-Late", "1")
		rw.WriteHeader(http.StatusTeapot)
		n, err := rw.Write([]byte("second"))

		require.ErrorIs(t, err, http.ErrHandlerTimeout)
		require.Zero(t, n)
		require.Equal(t, "first", rec.Body.String())
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("X-Late"))
		require.Equal(t, int64(5), rw.Size())
	})

	t.Run("sealed before anything was sent counts as written", func(t *testing.T) {
		t.Parallel()

		rw := internal.NewResponseWriter(httptest.NewRecorder())
		rw.Seal()
		require.True(t, rw.Written())
	})

	t.Run("flush and unwrap reach the recorder", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := internal.NewResponseWriter(rec)
		require.NoError(t, http.NewResponseController(rw).Flush())
		require.True(t, rec.Flushed)
		require.Same(t, rec, rw.Unwrap())
	})
}

type bufferRoute struct {
	fn func(c internal.Context) error
}

func (b *bufferRoute) Handle(c internal.Context) error { return b.fn(c) }

func serveBuffered(t *testing.T, fn func(c internal.Context) error) *httptest.ResponseRecorder {
	t.Helper()
	reg := internal.NewRegistry()
	require.NoError(t, reg.Declare(&bufferRoute{fn: fn}, internal.RouteGroup{Path: "buffer"},
		internal.GET("/", "Handle"),
	))
	return do(newApp(t, internal.WithRegistry(reg)), http.MethodGet, "/v1/buffer/", "")
}

func TestBuffer(t *testing.T) {
	t.Parallel()

	t.Run("commit copies response and values", func(t *testing.T) {
		t.Parallel()
		var seen any
		w := serveBuffered(t, func(c internal.Context) error {
			bc, commit, _ := internal.Buffer(c)
			bc.Set(ctxKey{}, "from buffer")
			require.NoError(t, internal.Success(bc, http.StatusCreated, "buffered", nil))
			require.False(t, c.Written())

			commit()
			seen = c.Get(ctxKey{})
			return nil
		})

		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, "buffered", decode(t, w).Message)
		require.Equal(t, "from buffer", seen)
	})

	t.Run("failure rendered in the buffer is reported once", func(t *testing.T) {
		t.Parallel()
		w := serveBuffered(t, func(c internal.Context) error {
			bc, commit, _ := internal.Buffer(c)
			err := internal.Wrap(func(internal.Context) error {
				return internal.ErrForbidden("You don't have the permission to access this content")
			}, func(c internal.Context, err error) {
				_ = internal.DefaultErrorHandler(c, err)
			})(bc)
			commit()
			require.True(t, internal.Reported(c))
			return err
		})

		require.Equal(t, http.StatusForbidden, w.Code)
		require.Equal(t, "You don't have the permission to access this content", decode(t, w).Message)
	})

	t.Run("discard seals the buffer", func(t *testing.T) {
		t.Parallel()
		w := serveBuffered(t, func(c internal.Context) error {
			bc, _, discard := internal.Buffer(c)
			discard()

			require.ErrorIs(t, internal.Success(bc, http.StatusOK, "late", nil), http.ErrHandlerTimeout)
			require.True(t, bc.Written())
			require.False(t, c.Written())
			return internal.Fail(c, http.StatusServiceUnavailable, "Request timed out", nil)
		})

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.Equal(t, "Request timed out", decode(t, w).Message)
	})
}
