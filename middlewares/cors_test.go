package middlewares_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relawan/portal/internal"
	"github.com/relawan/portal/middlewares"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	preflight := func(origin string) *http.Request {
		return request(http.MethodOptions, "/v1/test/", "",
			"Origin", origin,
			"Access-Control-Request-Method", http.MethodPost,
		)
	}

	t.Run("simple request from any origin", func(t *testing.T) {
		t.Parallel()
		app := newServer(t, nil, nil, internal.WithMiddleware(middlewares.CORS()))

		w := serve(app, request(http.MethodGet, "/v1/test/", "", "Origin", "https://relawan.example"))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, w.Header().Values("Vary"), "Origin")
	})

	t.Run("no origin header", func(t *testing.T) {
		t.Parallel()
		app := newServer(t, nil, nil, internal.WithMiddleware(middlewares.CORS()))

		w := serve(app, request(http.MethodGet, "/v1/test/", ""))
		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight answered with 200", func(t *testing.T) {
		t.Parallel()
		app := newServer(t, nil, nil, internal.WithMiddleware(middlewares.CORS()))

		w := serve(app, preflight("https://relawan.example"))
		require.Equal(t, http.StatusOK, w.Code)
		require.Empty(t, w.Body.String())
		require.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		require.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		require.Equal(t, "43200", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("preflight status and continue", func(t *testing.T) {
		t.Parallel()
		app := newServer(t, nil, nil, internal.WithMiddleware(middlewares.CORS(middlewares.WithPreflightStatus(http.StatusNoContent))))
		require.Equal(t, http.StatusNoContent, serve(app, preflight("https://a.example")).Code)

		app = newServer(t, nil, nil, internal.WithMiddleware(middlewares.CORS(middlewares.WithPreflightContinue())))
		w := serve(app, preflight("https://a.example"))
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
		require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("restricted origins", func(t *testing.T) {
		t.Parallel()
		app := newServer(t, nil, nil, internal.WithMiddleware(middlewares.CORS(
			middlewares.WithAllowOrigins("https://admin.relawan.example"),
			middlewares.WithMaxAge(time.Minute),
		)))

		w := serve(app, preflight("https://admin.relawan.example"))
		require.Equal(t, "https://admin.relawan.example", w.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "60", w.Header().Get("Access-Control-Max-Age"))

		w = serve(app, request(http.MethodGet, "/v1/test/", "", "Origin", "https://evil.example"))
		require.Equal(t, http.StatusOK, w.Code)
		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("credentials echo origin", func(t *testing.T) {
		t.Parallel()
		app := newServer(t, nil, nil, internal.WithMiddleware(middlewares.CORS(
			middlewares.WithAllowCredentials(),
			middlewares.WithExposeHeaders(middlewares.RequestIDHeader),
		)))

		w := serve(app, request(http.MethodGet, "/v1/test/", "", "Origin", "https://relawan.example"))
		require.Equal(t, "https://relawan.example", w.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		require.Equal(t, middlewares.RequestIDHeader, w.Header().Get("Access-Control-Expose-Headers"))
	})
}
