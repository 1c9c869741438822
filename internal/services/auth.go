package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/relawan/portal/internal/auth"
	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/pkg/cache"
	"github.com/relawan/portal/pkg/jwt"
	"github.com/relawan/portal/pkg/password"
	"github.com/relawan/portal/pkg/sanitizer"
)

// Credentials is the login request.
type Credentials struct {
	Email    string `json:"email" validate:"required,max=64,email"`
	Password string `json:"password" validate:"required,password"`
}

// Registration is the sign-up request.
type Registration struct {
	Email    string `json:"email" validate:"required,max=64,email"`
	Password string `json:"password" validate:"required,password"`
	FullName string `json:"fullName" validate:"required,max=64"`
	Phone    string `json:"phone" validate:"required,max=32,digits"`
}

// RefreshRequest carries a refresh token for rotation or revocation.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Auth issues and rotates sessions. Every refresh token is single-use:
// its id lives in the session store until it is exchanged or revoked.
type Auth struct {
	users    UserRepository
	hasher   *password.Hasher
	access   *jwt.Service
	refresh  *jwt.Service
	sessions cache.Store[int64]
	log      *slog.Logger
}

func (s *Auth) Login(ctx context.Context, in Credentials) (TokenPair, error) {
	u, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, store.ErrNotFound) {
		return TokenPair{}, ErrBadCredentials
	}
	if err != nil {
		return TokenPair{}, err
	}

	if err := s.hasher.Compare(u.Password, in.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return TokenPair{}, ErrBadCredentials
		}
		return TokenPair{}, err
	}

	s.log.InfoContext(ctx, "user logged in", slog.Int64("user_id", u.ID))
	return s.issue(ctx, u)
}

// Register creates a contributor account.
func (s *Auth) Register(ctx context.Context, in Registration) (store.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return store.User{}, err
	}

	u := store.User{
		FullName:    sanitizer.PlainText(in.FullName),
		Email:       in.Email,
		Phone:       in.Phone,
		Password:    hash,
		AccessLevel: store.RoleContributor,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return store.User{}, ErrEmailTaken
		}
		return store.User{}, err
	}

	s.log.InfoContext(ctx, "user registered", slog.Int64("user_id", u.ID))
	return u, nil
}

// Refresh exchanges a live refresh token for a new pair. The old token
// stops working whether or not the exchange succeeds.
func (s *Auth) Refresh(ctx context.Context, token string) (TokenPair, error) {
	var claims auth.Claims
	if err := s.refresh.Parse(token, &claims); err != nil {
		return TokenPair{}, errors.Join(ErrInvalidRefreshToken, err)
	}

	userID, err := s.sessions.Take(ctx, claims.ID)
	if errors.Is(err, cache.ErrNotFound) {
		s.log.WarnContext(ctx, "refresh token reuse or revoked",
			slog.Int64("user_id", claims.UserID),
			slog.String("jti", claims.ID),
		)
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return TokenPair{}, fmt.Errorf("take session: %w", err)
	}
	if userID != claims.UserID {
		return TokenPair{}, ErrInvalidRefreshToken
	}

	u, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return TokenPair{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return TokenPair{}, err
	}
	return s.issue(ctx, u)
}

// Logout revokes a refresh token. Revoking an unknown token succeeds.
func (s *Auth) Logout(ctx context.Context, token string) error {
	var claims auth.Claims
	if err := s.refresh.Parse(token, &claims); err != nil {
		return errors.Join(ErrInvalidRefreshToken, err)
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Auth) issue(ctx context.Context, u store.User) (TokenPair, error) {
	access, err := s.access.Generate(auth.NewClaims(u))
	if err != nil {
		return TokenPair{}, err
	}

	rc := auth.NewClaims(u)
	refresh, err := s.refresh.Generate(rc)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.sessions.Set(ctx, rc.ID, u.ID, s.refresh.TTL()); err != nil {
		return TokenPair{}, fmt.Errorf("store session: %w", err)
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
