package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relawan/portal/pkg/jwt"
)

type testClaims struct {
	jwt.StandardClaims
	Email       string `json:"email"`
	AccessLevel string `json:"accessLevel"`
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := jwt.New("")
	require.ErrorIs(t, err, jwt.ErrMissingSecret)

	svc, err := jwt.New("secret")
	require.NoError(t, err)
	require.Equal(t, 15*time.Minute, svc.TTL())

	svc, err = jwt.New("secret", jwt.WithTTL(30*24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 30*24*time.Hour, svc.TTL())
}

func TestService_RoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, err := jwt.New("secret", jwt.WithIssuer("portal"), jwt.WithClock(fixedClock(now)))
	require.NoError(t, err)

	token, err := svc.Generate(&testClaims{Email: "admin@admin.com", AccessLevel: "admin"})
	require.NoError(t, err)

	var got testClaims
	require.NoError(t, svc.Parse(token, &got))
	require.Equal(t, "admin@admin.com", got.Email)
	require.Equal(t, "admin", got.AccessLevel)
	require.Equal(t, "portal", got.Issuer)
	require.NotEmpty(t, got.ID)
	require.Equal(t, now.Add(15*time.Minute).Unix(), got.ExpiresAt.Unix())
}

func TestService_UniqueID(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New("secret")
	require.NoError(t, err)

	a, err := svc.Generate(&testClaims{Email: "a@b.c"})
	require.NoError(t, err)
	b, err := svc.Generate(&testClaims{Email: "a@b.c"})
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestService_ParseErrors(t *testing.T) {
	t.Parallel()

	issued := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	issuer, err := jwt.New("secret", jwt.WithNotBefore(3*time.Second), jwt.WithClock(fixedClock(issued)))
	require.NoError(t, err)
	token, err := issuer.Generate(&testClaims{Email: "a@b.c"})
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		svc, err := jwt.New("secret", jwt.WithClock(fixedClock(issued.Add(time.Hour))))
		require.NoError(t, err)
		require.ErrorIs(t, svc.Parse(token, &testClaims{}), jwt.ErrExpiredToken)
	})

	t.Run("not yet valid", func(t *testing.T) {
		t.Parallel()
		svc, err := jwt.New("secret", jwt.WithClock(fixedClock(issued.Add(time.Second))))
		require.NoError(t, err)
		require.ErrorIs(t, svc.Parse(token, &testClaims{}), jwt.ErrTokenNotYetValid)
	})

	t.Run("valid after not-before", func(t *testing.T) {
		t.Parallel()
		svc, err := jwt.New("secret", jwt.WithClock(fixedClock(issued.Add(5*time.Second))))
		require.NoError(t, err)
		require.NoError(t, svc.Parse(token, &testClaims{}))
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		svc, err := jwt.New("other", jwt.WithClock(fixedClock(issued.Add(5*time.Second))))
		require.NoError(t, err)
		require.ErrorIs(t, svc.Parse(token, &testClaims{}), jwt.ErrInvalidSignature)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		require.ErrorIs(t, issuer.Parse("not-a-token", &testClaims{}), jwt.ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		t.Parallel()
		svc, err := jwt.New("secret", jwt.WithIssuer("portal"), jwt.WithClock(fixedClock(issued.Add(5*time.Second))))
		require.NoError(t, err)
		require.ErrorIs(t, svc.Parse(token, &testClaims{}), jwt.ErrInvalidToken)
	})

	t.Run("claims without standard claims", func(t *testing.T) {
		t.Parallel()
		var dest map[string]any
		require.ErrorIs(t, issuer.Parse(token, &dest), jwt.ErrInvalidClaims)
	})
}
