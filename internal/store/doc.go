// Package store holds the portal's PostgreSQL repositories and schema.
//
// Repositories accept a db.Querier, so the same code runs against a pool
// or inside a transaction:
//
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//	    return store.New(tx).Users.Create(ctx, &u)
//	})
package store
