package middlewares_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relawan/portal/internal"
)

// endpoint serves every method on /v1/test/ and /v1/test/:id.
type endpoint struct {
	fn internal.HandlerFunc
}

func (e *endpoint) Handle(c internal.Context) error {
	if e.fn == nil {
		return c.String(http.StatusOK, "ok")
	}
	return e.fn(c)
}

// newServer builds an app whose test routes run fn behind routeMW.
func newServer(t *testing.T, fn internal.HandlerFunc, routeMW []internal.Middleware, opts ...internal.Option) *internal.App {
	t.Helper()

	var controllers []internal.Controller
	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		controllers = append(controllers,
			internal.Method(m, "/", "Handle", routeMW...),
			internal.Method(m, "/:id", "Handle", routeMW...),
		)
	}

	reg := internal.NewRegistry()
	require.NoError(t, reg.Declare(&endpoint{fn: fn}, internal.RouteGroup{Path: "test"}, controllers...))

	app := internal.New(append([]internal.Option{internal.WithRegistry(reg)}, opts...)...)
	_, err := app.Build(context.Background())
	require.NoError(t, err)
	return app
}

func request(method, target, body string, headers ...string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return req
}

func serve(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e), w.Body.String())
	return e
}
