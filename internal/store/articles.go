package store

import (
	"context"
	"fmt"

	"github.com/relawan/portal/pkg/db"
)

const articleColumns = `id, title, content, created_at, updated_at, is_deleted, is_approved, author_id, approver_id`

// Articles persists articles. Deletion is soft.
type Articles struct {
	q db.Querier
}

// Create inserts a as an unapproved article and fills ID and timestamps.
func (r *Articles) Create(ctx context.Context, a *Article) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO articles (title, content, author_id, is_approved, approver_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		a.Title, a.Content, a.AuthorID, a.IsApproved, a.ApproverID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *Articles) FindByID(ctx context.Context, id int64) (Article, error) {
	rows, err := r.q.Query(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	return one[Article](rows, err)
}

// List returns articles newest first. With visibleOnly, deleted and
// unapproved articles are left out.
func (r *Articles) List(ctx context.Context, visibleOnly bool) ([]Article, error) {
	q := `SELECT ` + articleColumns + ` FROM articles`
	if visibleOnly {
		q += ` WHERE is_approved AND NOT is_deleted`
	}
	rows, err := r.q.Query(ctx, q+` ORDER BY created_at DESC, id DESC`)
	return all[Article](rows, err)
}

func (r *Articles) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE articles SET is_deleted = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return affected(tag.RowsAffected())
}

func (r *Articles) Approve(ctx context.Context, id, approverID int64) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE articles SET is_approved = true, approver_id = $2, updated_at = now()
		WHERE id = $1 AND NOT is_deleted`, id, approverID)
	if err != nil {
		return fmt.Errorf("approve article: %w", err)
	}
	return affected(tag.RowsAffected())
}
