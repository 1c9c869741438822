package services

import (
	"context"

	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/pkg/sanitizer"
)

// NewLocation is a map point submission. Coordinates are required, so the
// pointers tell a missing field from zero.
type NewLocation struct {
	Name      string   `json:"name" validate:"required,max=100"`
	Type      string   `json:"type" validate:"required,max=30"`
	Address   string   `json:"address" validate:"required,max=300"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

type Locations struct {
	repo LocationRepository
}

func (s *Locations) Add(ctx context.Context, in NewLocation) (store.Location, error) {
	l := store.Location{
		Name:    sanitizer.PlainText(in.Name),
		Type:    sanitizer.PlainText(in.Type),
		Address: sanitizer.PlainText(in.Address),
	}
	if in.Latitude != nil {
		l.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		l.Longitude = *in.Longitude
	}
	if err := s.repo.Create(ctx, &l); err != nil {
		return store.Location{}, err
	}
	return l, nil
}

func (s *Locations) List(ctx context.Context) ([]store.Location, error) {
	return s.repo.List(ctx)
}
