package store

import (
	"context"
	"fmt"

	"github.com/relawan/portal/pkg/db"
)

const userColumns = `id, full_name, email, phone, password, access_level, created_at`

// Users persists accounts.
type Users struct {
	q db.Querier
}

// Create inserts u and fills its ID and CreatedAt. A taken email fails
// with ErrDuplicate.
func (r *Users) Create(ctx context.Context, u *User) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO users (full_name, email, phone, password, access_level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		u.FullName, u.Email, u.Phone, u.Password, u.AccessLevel,
	).Scan(&u.ID, &u.CreatedAt)
	if db.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *Users) FindByID(ctx context.Context, id int64) (User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return one[User](rows, err)
}

// FindByEmail matches the address case-insensitively.
func (r *Users) FindByEmail(ctx context.Context, email string) (User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return one[User](rows, err)
}

// ListByRole returns users holding any of roles, oldest first.
func (r *Users) ListByRole(ctx context.Context, roles ...Role) ([]User, error) {
	levels := make([]int16, len(roles))
	for i, role := range roles {
		levels[i] = int16(role)
	}
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE access_level = ANY($1) ORDER BY id`, levels)
	return all[User](rows, err)
}

func (r *Users) SetRole(ctx context.Context, id int64, role Role) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET access_level = $2 WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	return affected(tag.RowsAffected())
}
