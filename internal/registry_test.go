package internal_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relawan/portal/internal"
)

type articleRoute struct{}

func (articleRoute) List(internal.Context) error { return nil }
func (articleRoute) Find(internal.Context) error { return nil }

type userRoute struct{}

func (userRoute) Profile(internal.Context) error { return nil }

func TestRegistry_DeclareRouteGroup(t *testing.T) {
	t.Parallel()

	t.Run("defaults name and version", func(t *testing.T) {
		t.Parallel()
		reg := internal.NewRegistry()

		require.NoError(t, reg.DeclareRouteGroup(&articleRoute{}, internal.RouteGroup{Path: "articles"}))

		groups := reg.Groups()
		require.Len(t, groups, 1)
		require.Equal(t, "*internal_test.articleRoute", groups[0].Name)
		require.Equal(t, 1, groups[0].Version)
		require.Equal(t, "/v1/articles", groups[0].Prefix())
	})

	t.Run("explicit version", func(t *testing.T) {
		t.Parallel()
		reg := internal.NewRegistry()

		require.NoError(t, reg.DeclareRouteGroup(&articleRoute{}, internal.RouteGroup{Path: "articles", Version: 2}))
		require.Equal(t, "/v2/articles", reg.Groups()[0].Prefix())
	})

	t.Run("rejects negative version", func(t *testing.T) {
		t.Parallel()
		reg := internal.NewRegistry()

		err := reg.DeclareRouteGroup(&articleRoute{}, internal.RouteGroup{Path: "articles", Version: -1})
		require.ErrorIs(t, err, internal.ErrInvalidVersion)
		require.Empty(t, reg.Groups())
	})

	t.Run("rejects nil instance", func(t *testing.T) {
		t.Parallel()
		reg := internal.NewRegistry()

		err := reg.DeclareRouteGroup(nil, internal.RouteGroup{Path: "articles"})
		require.ErrorIs(t, err, internal.ErrNilInstance)
	})

	t.Run("rejects invalid paths", func(t *testing.T) {
		t.Parallel()
		for _, p := range []string{"", "/articles", "articles/", "/"} {
			reg := internal.NewRegistry()
			err := reg.DeclareRouteGroup(&articleRoute{}, internal.RouteGroup{Path: p})
			require.ErrorIs(t, err, internal.ErrInvalidGroupPath, "path %q", p)
			require.Empty(t, reg.Groups())
		}
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		t.Parallel()
		reg := internal.NewRegistry()

		require.NoError(t, reg.DeclareRouteGroup(&articleRoute{}, internal.RouteGroup{Path: "articles"}))
		err := reg.DeclareRouteGroup(&articleRoute{}, internal.RouteGroup{Path: "posts"})
		require.ErrorIs(t, err, internal.ErrDuplicateGroup)
		require.Len(t, reg.Groups(), 1)
	})
}

func TestRegistry_DeclareController(t *testing.T) {
	t.Parallel()

	t.Run("keeps declaration order and upper-cases method", func(t *testing.T) {
		t.Parallel()
		reg := internal.NewRegistry()

		require.NoError(t, reg.DeclareController("articles", internal.Method("get", "/", "List")))
		require.NoError(t, reg.DeclareController("articles", internal.GET("/:articleId", "Find")))

		cs := reg.Controllers("articles")
		require.Len(t, cs, 2)
		require.Equal(t, http.MethodGet, cs[0].Method)
		require.Equal(t, "/", cs[0].Path)
		require.Equal(t, "/:articleId", cs[1].Path)
	})

	t.Run("group may be declared later", func(t *testing.T) {
		t.Parallel()
		reg := internal.NewRegistry()

		require.NoError(t, reg.DeclareController("articles", internal.GET("/", "List")))
		require.Equal(t, []string{"articles"}, reg.Orphans())

		require.NoError(t, reg.DeclareRouteGroup(&articleRoute{}, internal.RouteGroup{Name: "articles", Path: "articles"}))
		require.Empty(t, reg.Orphans())
	})

	t.Run("rejects invalid paths", func(t *testing.T) {
		t.Parallel()
		for _, p := range []string{"", "a", "articles", "/articles/"} {
			reg := internal.NewRegistry()
			err := reg.DeclareController("articles", internal.GET(p, "List"))
			require.ErrorIs(t, err, internal.ErrInvalidControllerPath, "path %q", p)
			require.Empty(t, reg.Controllers("articles"))
		}
	})

	t.Run("rejects empty handler", func(t *testing.T) {
		t.Parallel()
		reg := internal.NewRegistry()

		err := reg.DeclareController("articles", internal.GET("/", ""))
		require.ErrorIs(t, err, internal.ErrInvalidHandler)
	})
}

func TestRegistry_Declare(t *testing.T) {
	t.Parallel()

	t.Run("inserts group with controllers", func(t *testing.T) {
		t.Parallel()
		reg := internal.NewRegistry()

		err := reg.Declare(&articleRoute{}, internal.RouteGroup{Name: "articles", Path: "articles"},
			internal.GET("/", "List"),
			internal.GET("/:articleId", "Find"),
		)
		require.NoError(t, err)

		snap := reg.Snapshot()
		require.Len(t, snap, 1)
		require.Equal(t, "articles", snap[0].Group.Name)
		require.Len(t, snap[0].Controllers, 2)
	})

	t.Run("one bad controller rejects everything", func(t *testing.T) {
		t.Parallel()
		reg := internal.NewRegistry()

		err := reg.Declare(&articleRoute{}, internal.RouteGroup{Name: "articles", Path: "articles"},
			internal.GET("/", "List"),
			internal.GET("bad/", "Find"),
		)
		require.ErrorIs(t, err, internal.ErrInvalidControllerPath)
		require.Empty(t, reg.Groups())
		require.Empty(t, reg.Controllers("articles"))
	})
}

func TestRegistry_Freeze(t *testing.T) {
	t.Parallel()

	reg := internal.NewRegistry()
	require.NoError(t, reg.DeclareRouteGroup(&userRoute{}, internal.RouteGroup{Name: "users", Path: "users"}))
	require.False(t, reg.Frozen())

	snap := reg.Snapshot()
	require.True(t, reg.Frozen())
	require.Len(t, snap, 1)

	require.ErrorIs(t, reg.DeclareRouteGroup(&articleRoute{}, internal.RouteGroup{Path: "articles"}), internal.ErrRegistryFrozen)
	require.ErrorIs(t, reg.DeclareController("users", internal.GET("/profile", "Profile")), internal.ErrRegistryFrozen)

	reg.Freeze()
	require.True(t, reg.Frozen())
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	t.Parallel()

	reg := internal.NewRegistry()
	require.NoError(t, reg.Declare(&userRoute{}, internal.RouteGroup{Name: "users", Path: "users"},
		internal.GET("/profile", "Profile"),
	))

	groups := reg.Groups()
	groups[0].Path = "changed"
	cs := reg.Controllers("users")
	cs[0].Path = "/changed"

	require.Equal(t, "users", reg.Groups()[0].Path)
	require.Equal(t, "/profile", reg.Controllers("users")[0].Path)
}

func TestRegistry_ConcurrentDeclarations(t *testing.T) {
	t.Parallel()

	reg := internal.NewRegistry()

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			_ = reg.DeclareController("articles", internal.GET("/", "List"))
		})
	}
	wg.Wait()

	require.Len(t, reg.Controllers("articles"), 50)
}

func TestValidPaths(t *testing.T) {
	t.Parallel()

	groups := map[string]bool{
		"articles":      true,
		"status-update": true,
		"a":             true,
		"":              false,
		"/":             false,
		"/articles":     false,
		"articles/":     false,
	}
	for p, want := range groups {
		require.Equal(t, want, internal.ValidGroupPath(p), "group path %q", p)
	}

	controllers := map[string]bool{
		"/":                        true,
		"/:articleId":              true,
		"/status-update/:reportId": true,
		"":                         false,
		"a":                        false,
		"profile":                  false,
		"/profile/":                false,
	}
	for p, want := range controllers {
		require.Equal(t, want, internal.ValidControllerPath(p), "controller path %q", p)
	}
}
