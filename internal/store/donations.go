package store

import (
	"context"
	"fmt"

	"github.com/relawan/portal/pkg/db"
)

type Donations struct {
	q db.Querier
}

func (r *Donations) Create(ctx context.Context, d *Donation) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO donations (donator, money) VALUES ($1, $2)
		RETURNING id, donated_at`,
		d.Donator, d.Money,
	).Scan(&d.ID, &d.DonatedAt)
	if err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

func (r *Donations) List(ctx context.Context) ([]Donation, error) {
	rows, err := r.q.Query(ctx, `SELECT id, donator, money, donated_at FROM donations ORDER BY donated_at DESC, id DESC`)
	return all[Donation](rows, err)
}
