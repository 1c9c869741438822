package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// tree writes files under a temp dir holding a go.mod for example.com/app.
func tree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	files["go.mod"] = "module example.com/app\n\ngo 1.25\n"
	for name, src := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(src), 0o644))
	}
	return dir
}

const reportController = `package controllers

import "github.com/relawan/portal"

func RegisterReports(reg *portal.Registry, deps *Deps) error { return nil }

func registerReportAdmin(reg *portal.Registry, deps *Deps) error { return nil }

// Wrong shapes are ignored.
func RegisterHelper(reg *portal.Registry) error { return nil }
func registerCount(reg *portal.Registry, deps *Deps) int { return 0 }
func (d *Deps) RegisterMethod(reg *portal.Registry, deps *Deps) error { return nil }
`

const articleController = `package controllers

import p "github.com/relawan/portal"

func RegisterArticles(reg *p.Registry, a, b *Deps) error { return nil }
func RegisterArticles2(reg *p.Registry, deps *Deps) error { return nil }
`

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("root package", func(t *testing.T) {
		t.Parallel()
		files := map[string]string{}
		files["controllers/deps.go"] = "package controllers\n\ntype Deps struct{}\n"
		files["controllers/report.controller.go"] = reportController
		files["controllers/article.controller.go"] = articleController
		files["controllers/report.controller_test.go"] = "package controllers\n"
		files["controllers/util.go"] = "package controllers\n\nimport \"github.com/relawan/portal\"\n\nfunc RegisterUtil(reg *portal.Registry, deps *Deps) error { return nil }\n"
		dir := tree(t, files)

		src, err := Generate(Config{Root: filepath.Join(dir, "controllers")})
		require.NoError(t, err)

		want := `// Code generated by routegen. DO NOT EDIT.

package controllers

import "github.com/relawan/portal"

// Modules returns the controller modules in manifest order.
func Modules(deps *Deps) []portal.Module {
	return []portal.Module{
		portal.NewModule("article.controller.go", func(reg *portal.Registry) error { return RegisterArticles2(reg, deps) }),
		portal.NewModule("report.controller.go", func(reg *portal.Registry) error { return RegisterReports(reg, deps) }),
		portal.NewModule("report.controller.go", func(reg *portal.Registry) error { return registerReportAdmin(reg, deps) }),
	}
}
`
		require.Equal(t, want, string(src))
	})

	t.Run("sub-packages share an external deps type", func(t *testing.T) {
		t.Parallel()
		files := map[string]string{}
		files["app/deps/deps.go"] = "package deps\n\ntype Deps struct{}\n"
		files["app/routes/routes.go"] = "package routes\n"
		files["app/routes/health.controller.go"] = `package routes

import (
	"example.com/app/app/deps"
	"github.com/relawan/portal"
)

func RegisterHealth(reg *portal.Registry, d *deps.Deps) error { return nil }
`
		files["app/routes/admin/users.controller.go"] = `package admin

import (
	"example.com/app/app/deps"
	"github.com/relawan/portal"
)

func RegisterUsers(reg *portal.Registry, d *deps.Deps) error { return nil }
`
		files["app/routes/_skip/x.controller.go"] = "not go"
		files["app/routes/testdata/x.controller.go"] = "not go"
		dir := tree(t, files)

		src, err := Generate(Config{Root: filepath.Join(dir, "app", "routes")})
		require.NoError(t, err)

		out := string(src)
		require.Contains(t, out, "package routes\n")
		require.Contains(t, out, `admin "example.com/app/app/routes/admin"`)
		require.Contains(t, out, `deps "example.com/app/app/deps"`)
		require.Contains(t, out, "func Modules(deps *deps.Deps) []portal.Module {")
		require.Less(t,
			strings.Index(out, `"admin/users.controller.go"`),
			strings.Index(out, `"health.controller.go"`))
		require.Contains(t, out, "return admin.RegisterUsers(reg, deps)")
	})

	t.Run("package override", func(t *testing.T) {
		t.Parallel()
		dir := tree(t, map[string]string{
			"c/report.controller.go": strings.ReplaceAll(reportController, "*Deps", "*string"),
		})

		src, err := Generate(Config{Root: filepath.Join(dir, "c"), Package: "manifest"})
		require.NoError(t, err)
		require.Contains(t, string(src), "package manifest\n")
		require.Contains(t, string(src), "func Modules(deps *string)")
	})
}

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		files map[string]string
		err   error
		msg   string
	}{
		{
			name:  "no modules",
			files: map[string]string{"c/deps.go": "package c\n"},
			err:   ErrNoModules,
		},
		{
			name: "parse failure",
			files: map[string]string{
				"c/broken.controller.go": "package c\n\nfunc RegisterX(",
			},
			msg: "routegen: parse",
		},
		{
			name: "deps mismatch",
			files: map[string]string{
				"c/a.controller.go": "package c\n\nimport \"github.com/relawan/portal\"\n\nfunc RegisterA(reg *portal.Registry, d *Deps) error { return nil }\n",
				"c/b.controller.go": "package c\n\nimport \"github.com/relawan/portal\"\n\nfunc RegisterB(reg *portal.Registry, d *Other) error { return nil }\n",
			},
			err: ErrDepsMismatch,
		},
		{
			name: "unexported in sub-package",
			files: map[string]string{
				"c/sub/a.controller.go": "package sub\n\nimport \"github.com/relawan/portal\"\n\nfunc registerA(reg *portal.Registry, d *Deps) error { return nil }\n",
			},
			err: ErrUnexported,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dir := tree(t, tc.files)

			_, err := Generate(Config{Root: filepath.Join(dir, "c")})
			require.Error(t, err)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
			}
			if tc.msg != "" {
				require.Contains(t, err.Error(), tc.msg)
			}
		})
	}

	t.Run("no go.mod", func(t *testing.T) {
		t.Parallel()
		_, err := importPath(string(filepath.Separator))
		require.ErrorIs(t, err, ErrNoGoMod)
	})
}
