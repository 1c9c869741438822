package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/pkg/cache"
)

const profileTTL = 5 * time.Minute

type Users struct {
	repo     UserRepository
	profiles cache.Store[store.User]
}

func profileKey(id int64) string {
	return "user:" + strconv.FormatInt(id, 10)
}

// Profile returns the user with the given id. The result wraps
// store.ErrNotFound when there is none.
func (s *Users) Profile(ctx context.Context, id int64) (store.User, error) {
	u, err := cache.GetOrSet(ctx, s.profiles, profileKey(id), func(ctx context.Context) (store.User, time.Duration, error) {
		u, err := s.repo.FindByID(ctx, id)
		u.Password = ""
		return u, profileTTL, err
	})
	if errors.Is(err, store.ErrNotFound) {
		return store.User{}, errors.Join(ErrUserNotFound, err)
	}
	return u, err
}

// Role implements auth.RoleSource.
func (s *Users) Role(ctx context.Context, id int64) (store.Role, error) {
	u, err := s.Profile(ctx, id)
	if err != nil {
		return 0, err
	}
	return u.AccessLevel, nil
}

// List returns every contributor and editor.
func (s *Users) List(ctx context.Context) ([]store.User, error) {
	return s.repo.ListByRole(ctx, store.RoleContributor, store.RoleEditor)
}

// ToggleRole switches a user between contributor and editor and returns
// the new role.
func (s *Users) ToggleRole(ctx context.Context, id int64) (store.Role, error) {
	u, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return 0, errors.Join(ErrUserNotFound, err)
	}
	if err != nil {
		return 0, err
	}

	role := store.RoleContributor
	switch u.AccessLevel {
	case store.RoleAdmin:
		return 0, ErrAdminRole
	case store.RoleContributor:
		role = store.RoleEditor
	}

	if err := s.repo.SetRole(ctx, id, role); err != nil {
		return 0, err
	}
	if err := cache.Invalidate(ctx, s.profiles, profileKey(id)); err != nil {
		return 0, err
	}
	return role, nil
}
