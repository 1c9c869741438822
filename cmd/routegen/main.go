// Command routegen writes the controller manifest for a package.
//
// It scans the package directory and its sub-directories for controller
// files (names containing ".controller.") and lists every top-level
// Register function of the form
//
//	func RegisterX(reg *portal.Registry, deps *Deps) error
//
// in a generated Modules function. Typical use:
//
//	//go:generate go run github.com/relawan/portal/cmd/routegen -root . -out manifest_gen.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	var (
		root = flag.String("root", ".", "Package directory to scan")
		out  = flag.String("out", "manifest_gen.go", "Output file, relative to root")
		pkg  = flag.String("pkg", "", "Package name of the output file (detected when empty)")
	)
	flag.Parse()

	src, err := Generate(Config{Root: *root, Package: *pkg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "routegen: %v\n", err)
		os.Exit(1)
	}

	path := *out
	if !filepath.IsAbs(path) {
		path = filepath.Join(*root, path)
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "routegen: %v\n", err)
		os.Exit(1)
	}
}
