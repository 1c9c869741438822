package controllers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relawan/portal"
	"github.com/relawan/portal/internal/auth"
	"github.com/relawan/portal/internal/controllers"
	"github.com/relawan/portal/internal/services"
	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/internal/store/storetest"
	"github.com/relawan/portal/pkg/cache"
	"github.com/relawan/portal/pkg/jwt"
	"github.com/relawan/portal/pkg/password"
)

const testPassword = "Secret123?"

type server struct {
	app    *portal.App
	db     *storetest.DB
	access *jwt.Service
	hasher *password.Hasher
}

func newServer(t *testing.T) *server {
	t.Helper()

	access, err := jwt.New(strings.Repeat("a", 32), jwt.WithNotBefore(0))
	require.NoError(t, err)
	refresh, err := jwt.New(strings.Repeat("r", 32), jwt.WithNotBefore(0))
	require.NoError(t, err)

	sessions := cache.NewMemory[int64](cache.WithCleanupInterval(0))
	profiles := cache.NewMemory[store.User](cache.WithCleanupInterval(0))
	t.Cleanup(func() {
		_ = sessions.Close()
		_ = profiles.Close()
	})

	db := storetest.New()
	hasher := password.New(4)
	svc := services.New(services.Deps{
		Users:     db.Users(),
		Articles:  db.Articles(),
		Reports:   db.Reports(),
		Donations: db.Donations(),
		Locations: db.Locations(),
		Hasher:    hasher,
		Access:    access,
		Refresh:   refresh,
		Sessions:  sessions,
		Profiles:  profiles,
	})

	app := portal.New(portal.WithModules(controllers.Modules(&controllers.Deps{Services: svc, Access: access})...))
	_, err = app.Build(context.Background())
	require.NoError(t, err)

	return &server{app: app, db: db, access: access, hasher: hasher}
}

// user creates an account and returns it with an access token.
func (s *server) user(t *testing.T, email string, role store.Role) (store.User, string) {
	t.Helper()
	hash, err := s.hasher.Hash(testPassword)
	require.NoError(t, err)

	u := store.User{FullName: "Test", Email: email, Phone: "62811", Password: hash, AccessLevel: role}
	require.NoError(t, s.db.Users().Create(context.Background(), &u))

	tok, err := s.access.Generate(auth.NewClaims(u))
	require.NoError(t, err)
	return u, tok
}

type response struct {
	Code    int
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *server) do(t *testing.T, method, target, token, body string) response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.app.ServeHTTP(w, req)

	res := response{Code: w.Code}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	return res
}

func (r response) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v), string(r.Data))
}

