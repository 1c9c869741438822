package store

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"

	"github.com/relawan/portal/pkg/db"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations is the schema, for db.Migrate.
var Migrations = mustSub(migrationFiles, "migrations")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(fmt.Sprintf("store: embedded migrations: %v", err))
	}
	return sub
}

// Store groups the repositories over one Querier.
type Store struct {
	Users     *Users
	Articles  *Articles
	Reports   *Reports
	Donations *Donations
	Locations *Locations
}

// New creates a Store over q, typically a *pgxpool.Pool or a pgx.Tx.
func New(q db.Querier) *Store {
	return &Store{
		Users:     &Users{q: q},
		Articles:  &Articles{q: q},
		Reports:   &Reports{q: q},
		Donations: &Donations{q: q},
		Locations: &Locations{q: q},
	}
}

// one collects exactly one row into T, mapping an empty result to ErrNotFound.
func one[T any](rows pgx.Rows, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if db.IsNoRows(err) {
		return v, ErrNotFound
	}
	return v, err
}

func all[T any](rows pgx.Rows, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// affected maps an update that matched nothing to ErrNotFound.
func affected(n int64) error {
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
