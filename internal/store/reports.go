package store

import (
	"context"
	"fmt"
	"time"

	"github.com/relawan/portal/pkg/db"
)

const reportColumns = `id, content, status, created_at, updated_at, resolver_id`

type Reports struct {
	q db.Querier
}

func (r *Reports) Create(ctx context.Context, rep *Report) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO reports (content, status, updated_at, resolver_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		rep.Content, rep.Status, rep.UpdatedAt, rep.ResolverID,
	).Scan(&rep.ID, &rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *Reports) List(ctx context.Context) ([]Report, error) {
	rows, err := r.q.Query(ctx, `SELECT `+reportColumns+` FROM reports ORDER BY created_at DESC, id DESC`)
	return all[Report](rows, err)
}

// Resolve marks a pending report resolved by resolverID. Reports that do
// not exist or are already resolved yield ErrNotFound.
func (r *Reports) Resolve(ctx context.Context, id, resolverID int64, at time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE reports SET status = $2, resolver_id = $3, updated_at = $4
		WHERE id = $1 AND status = $5`,
		id, ReportResolved, resolverID, at, ReportPending)
	if err != nil {
		return fmt.Errorf("resolve report: %w", err)
	}
	return affected(tag.RowsAffected())
}
