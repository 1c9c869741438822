// Package controllers declares the portal's route groups. Each
// "*.controller.go" file contributes one module to the generated manifest.
package controllers

//go:generate go run github.com/relawan/portal/cmd/routegen -root . -out manifest_gen.go
