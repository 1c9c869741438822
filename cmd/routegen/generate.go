package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/mod/modfile"
	"golang.org/x/sync/errgroup"
)

const (
	portalImport = "github.com/relawan/portal"
	marker       = ".controller."
)

var (
	ErrNoModules    = errors.New("routegen: no controller modules found")
	ErrDepsMismatch = errors.New("routegen: controller modules disagree on the deps type")
	ErrUnexported   = errors.New("routegen: register function in a sub-package must be exported")
	ErrNoGoMod      = errors.New("routegen: go.mod not found")
)

// Config controls a generation run.
type Config struct {
	// Root is the package directory the manifest is written to.
	Root string
	// Package is the manifest's package name. Detected from Root when empty.
	Package string
}

// register is one matching function found in a controller file.
type register struct {
	file    string // slash path relative to root
	dir     string // slash directory relative to root, "." for root
	pkg     string // package name of the file
	name    string
	pos     int
	depsPkg string // import path of the deps type
	deps    string // deps type name
}

// Generate scans cfg.Root and returns the formatted manifest source.
func Generate(cfg Config) ([]byte, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, err
	}

	rootImport, err := importPath(root)
	if err != nil {
		return nil, err
	}

	found, err := scan(root, rootImport)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoModules, root)
	}

	slices.SortFunc(found, func(a, b register) int {
		return cmp.Or(cmp.Compare(a.file, b.file), cmp.Compare(a.pos, b.pos))
	})

	first := found[0]
	for _, r := range found[1:] {
		if r.depsPkg != first.depsPkg || r.deps != first.deps {
			return nil, fmt.Errorf("%w: %s.%s uses %s.%s, %s.%s uses %s.%s", ErrDepsMismatch,
				first.file, first.name, first.depsPkg, first.deps,
				r.file, r.name, r.depsPkg, r.deps)
		}
	}

	pkgName := cfg.Package
	if pkgName == "" {
		if pkgName, err = packageName(root); err != nil {
			return nil, err
		}
	}

	return render(pkgName, rootImport, found)
}

// importPath resolves the import path of dir from the nearest go.mod.
func importPath(dir string) (string, error) {
	for d := dir; ; {
		data, err := os.ReadFile(filepath.Join(d, "go.mod"))
		if err == nil {
			mod := modfile.ModulePath(data)
			if mod == "" {
				return "", fmt.Errorf("routegen: %s has no module line", filepath.Join(d, "go.mod"))
			}
			rel, err := filepath.Rel(d, dir)
			if err != nil {
				return "", err
			}
			if rel == "." {
				return mod, nil
			}
			return path.Join(mod, filepath.ToSlash(rel)), nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}

		parent := filepath.Dir(d)
		if parent == d {
			return "", fmt.Errorf("%w above %s", ErrNoGoMod, dir)
		}
		d = parent
	}
}

// scan walks root, visiting sub-directories concurrently.
func scan(root, rootImport string) ([]register, error) {
	var (
		mu    sync.Mutex
		found []register
	)

	var g errgroup.Group
	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() {
				if skipDir(name) {
					continue
				}
				sub := filepath.Join(dir, name)
				g.Go(func() error { return walk(sub) })
				continue
			}
			if !strings.Contains(name, marker) || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
				continue
			}

			regs, err := parseFile(root, rootImport, filepath.Join(dir, name))
			if err != nil {
				return err
			}
			mu.Lock()
			found = append(found, regs...)
			mu.Unlock()
		}
		return nil
	}

	g.Go(func() error { return walk(root) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata" || name == "vendor"
}

func parseFile(root, rootImport, filename string) ([]register, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("routegen: parse: %w", err)
	}

	rel, err := filepath.Rel(root, filename)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)
	dir := path.Dir(rel)

	filePkg := rootImport
	if dir != "." {
		filePkg = path.Join(rootImport, dir)
	}
	imports := fileImports(f)

	var regs []register
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || !isRegisterName(fn.Name.Name) {
			continue
		}
		depsPkg, deps, ok := registerSignature(fn.Type, imports)
		if !ok {
			continue
		}
		if depsPkg == "" {
			depsPkg = filePkg
		}
		if dir != "." && !fn.Name.IsExported() {
			return nil, fmt.Errorf("%w: %s in %s", ErrUnexported, fn.Name.Name, rel)
		}

		regs = append(regs, register{
			file:    rel,
			dir:     dir,
			pkg:     f.Name.Name,
			name:    fn.Name.Name,
			pos:     fset.Position(fn.Pos()).Offset,
			depsPkg: depsPkg,
			deps:    deps,
		})
	}
	return regs, nil
}

func isRegisterName(name string) bool {
	return strings.HasPrefix(name, "Register") || strings.HasPrefix(name, "register")
}

// fileImports maps the local name of each import to its path.
func fileImports(f *ast.File) map[string]string {
	imports := make(map[string]string, len(f.Imports))
	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(p)
		if spec.Name != nil {
			name = spec.Name.Name
		}
		imports[name] = p
	}
	return imports
}

// registerSignature matches func(*portal.Registry, *Deps) error and
// returns the import path and name of the deps type. The path is empty
// for a type declared in the same package.
func registerSignature(ft *ast.FuncType, imports map[string]string) (string, string, bool) {
	params := flatten(ft.Params)
	results := flatten(ft.Results)
	if len(params) != 2 || len(results) != 1 {
		return "", "", false
	}
	if id, ok := results[0].(*ast.Ident); !ok || id.Name != "error" {
		return "", "", false
	}

	regPkg, regName, ok := pointerTo(params[0], imports)
	if !ok || regPkg != portalImport || regName != "Registry" {
		return "", "", false
	}
	return pointerTo(params[1], imports)
}

func flatten(fl *ast.FieldList) []ast.Expr {
	if fl == nil {
		return nil
	}
	var out []ast.Expr
	for _, f := range fl.List {
		n := max(len(f.Names), 1)
		for range n {
			out = append(out, f.Type)
		}
	}
	return out
}

// pointerTo resolves *T or *pkg.T.
func pointerTo(expr ast.Expr, imports map[string]string) (string, string, bool) {
	star, ok := expr.(*ast.StarExpr)
	if !ok {
		return "", "", false
	}
	switch x := star.X.(type) {
	case *ast.Ident:
		return "", x.Name, true
	case *ast.SelectorExpr:
		id, ok := x.X.(*ast.Ident)
		if !ok {
			return "", "", false
		}
		p, ok := imports[id.Name]
		if !ok {
			return "", "", false
		}
		return p, x.Sel.Name, true
	}
	return "", "", false
}

// packageName reads the package clause of the first non-test Go file in dir.
func packageName(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(token.NewFileSet(), filepath.Join(dir, name), nil, parser.PackageClauseOnly)
		if err != nil {
			return "", fmt.Errorf("routegen: parse: %w", err)
		}
		return f.Name.Name, nil
	}
	return filepath.Base(dir), nil
}

func render(pkgName, rootImport string, regs []register) ([]byte, error) {
	aliases := map[string]string{}
	taken := map[string]bool{"portal": true}
	alias := func(importPath, name string) string {
		if a, ok := aliases[importPath]; ok {
			return a
		}
		a := name
		for i := 2; taken[a]; i++ {
			a = name + strconv.Itoa(i)
		}
		taken[a] = true
		aliases[importPath] = a
		return a
	}

	depsType := regs[0].deps
	if p := regs[0].depsPkg; p != rootImport {
		name := path.Base(p)
		for _, r := range regs {
			if r.dir != "." && path.Join(rootImport, r.dir) == p {
				name = r.pkg
				break
			}
		}
		depsType = alias(p, name) + "." + depsType
	}

	var lines []string
	for _, r := range regs {
		call := r.name
		if r.dir != "." {
			call = alias(path.Join(rootImport, r.dir), r.pkg) + "." + r.name
		}
		lines = append(lines, fmt.Sprintf("\t\tportal.NewModule(%q, func(reg *portal.Registry) error { return %s(reg, deps) }),", r.file, call))
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by routegen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)
	if len(aliases) == 0 {
		fmt.Fprintf(&buf, "import %q\n\n", portalImport)
	} else {
		buf.WriteString("import (\n")
		fmt.Fprintf(&buf, "\t%q\n\n", portalImport)
		for _, p := range slices.Sorted(maps.Keys(aliases)) {
			fmt.Fprintf(&buf, "\t%s %q\n", aliases[p], p)
		}
		buf.WriteString(")\n\n")
	}
	buf.WriteString("// Modules returns the controller modules in manifest order.\n")
	fmt.Fprintf(&buf, "func Modules(deps *%s) []portal.Module {\n", depsType)
	buf.WriteString("\treturn []portal.Module{\n")
	buf.WriteString(strings.Join(lines, "\n"))
	buf.WriteString("\n\t}\n}\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("routegen: format: %w", err)
	}
	return src, nil
}
