package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relawan/portal/internal/services"
	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/internal/store/storetest"
	"github.com/relawan/portal/pkg/cache"
	"github.com/relawan/portal/pkg/jwt"
	"github.com/relawan/portal/pkg/password"
)

const testPassword = "Secret123?"

type fixture struct {
	svc      *services.Services
	db       *storetest.DB
	hasher   *password.Hasher
	access   *jwt.Service
	refresh  *jwt.Service
	sessions *cache.Memory[int64]
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	access, err := jwt.New(strings.Repeat("a", 32), jwt.WithNotBefore(0))
	require.NoError(t, err)
	refresh, err := jwt.New(strings.Repeat("r", 32), jwt.WithNotBefore(0), jwt.WithTTL(time.Hour))
	require.NoError(t, err)

	f := &fixture{
		db:       storetest.New(),
		hasher:   password.New(4),
		access:   access,
		refresh:  refresh,
		sessions: cache.NewMemory[int64](cache.WithCleanupInterval(0)),
		now:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	profiles := cache.NewMemory[store.User](cache.WithCleanupInterval(0))
	t.Cleanup(func() {
		_ = f.sessions.Close()
		_ = profiles.Close()
	})

	f.svc = services.New(services.Deps{
		Users:     f.db.Users(),
		Articles:  f.db.Articles(),
		Reports:   f.db.Reports(),
		Donations: f.db.Donations(),
		Locations: f.db.Locations(),
		Hasher:    f.hasher,
		Access:    access,
		Refresh:   refresh,
		Sessions:  f.sessions,
		Profiles:  profiles,
		Now:       func() time.Time { return f.now },
	})
	return f
}

// user creates an account with testPassword.
func (f *fixture) user(t *testing.T, email string, role store.Role) store.User {
	t.Helper()
	hash, err := f.hasher.Hash(testPassword)
	require.NoError(t, err)

	u := store.User{FullName: "Test User", Email: email, Phone: "62811", Password: hash, AccessLevel: role}
	require.NoError(t, f.db.Users().Create(context.Background(), &u))
	return u
}
