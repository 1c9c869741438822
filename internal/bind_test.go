package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relawan/portal/internal"
)

func TestContext_BindParams(t *testing.T) {
	t.Parallel()

	t.Run("typed fields", func(t *testing.T) {
		t.Parallel()
		var got struct {
			ID     int64  `param:"id" validate:"gte=1"`
			Raw    string `param:"id"`
			Ignore string
		}

		probe(t, httptest.NewRequest(http.MethodGet, "/v1/probe/12", nil), func(c internal.Context) {
			ve, err := c.BindParams(&got)
			require.NoError(t, err)
			require.Empty(t, ve)
		})
		require.Equal(t, int64(12), got.ID)
		require.Equal(t, "12", got.Raw)
		require.Empty(t, got.Ignore)
	})

	t.Run("unparsable value", func(t *testing.T) {
		t.Parallel()
		var got struct {
			ID uint `param:"id"`
		}

		probe(t, httptest.NewRequest(http.MethodGet, "/v1/probe/-3", nil), func(c internal.Context) {
			ve, err := c.BindParams(&got)
			require.NoError(t, err)
			require.Len(t, ve, 1)
			require.Equal(t, "id", ve[0].Field)
			require.Equal(t, "type", ve[0].Rule)
			require.Equal(t, "id must be a positive number", ve[0].Message)
		})
	})

	t.Run("rule failure", func(t *testing.T) {
		t.Parallel()
		var got struct {
			ID int `param:"id" validate:"max=10"`
		}

		probe(t, httptest.NewRequest(http.MethodGet, "/v1/probe/99", nil), func(c internal.Context) {
			ve, err := c.BindParams(&got)
			require.NoError(t, err)
			require.Len(t, ve, 1)
			require.Equal(t, "id", ve[0].Field)
			require.Equal(t, "max", ve[0].Rule)
		})
	})

	t.Run("bad target", func(t *testing.T) {
		t.Parallel()
		probe(t, httptest.NewRequest(http.MethodGet, "/v1/probe/1", nil), func(c internal.Context) {
			var n int
			_, err := c.BindParams(&n)
			require.ErrorIs(t, err, internal.ErrBindTarget)
		})
	})
}
