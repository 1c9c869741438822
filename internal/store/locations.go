package store

import (
	"context"
	"fmt"

	"github.com/relawan/portal/pkg/db"
)

type Locations struct {
	q db.Querier
}

func (r *Locations) Create(ctx context.Context, l *Location) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO locations (name, type, address, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		l.Name, l.Type, l.Address, l.Latitude, l.Longitude,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *Locations) List(ctx context.Context) ([]Location, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, type, address, latitude, longitude, created_at, updated_at
		FROM locations ORDER BY id`)
	return all[Location](rows, err)
}
