// Package db opens the PostgreSQL pool used by the portal repositories.
//
// Connect retries with a linear backoff so the API can start before the
// database container is ready. Migrate applies the embedded goose
// migrations through a database/sql bridge over the same pool.
//
//	pool, err := db.Connect(ctx, cfg.Database)
//	if err != nil {
//	    return err
//	}
//	if err := db.Migrate(ctx, pool, store.Migrations, cfg.Database.MigrationsTable, log); err != nil {
//	    return err
//	}
//
// Repositories accept a [Querier], so the same code runs against the pool
// or inside [WithTx].
package db
