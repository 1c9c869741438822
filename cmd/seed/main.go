// Command seed fills an empty database with demo users, articles and reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5"

	"github.com/relawan/portal/internal/store"
	"github.com/relawan/portal/pkg/db"
	"github.com/relawan/portal/pkg/logger"
	"github.com/relawan/portal/pkg/password"
)

func main() {
	var (
		cost    = flag.Int("cost", 12, "bcrypt cost for seeded passwords")
		migrate = flag.Bool("migrate", true, "apply migrations before seeding")
	)
	flag.Parse()

	log := logger.New()
	if err := run(context.Background(), log, *cost, *migrate); err != nil {
		log.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("seeding finished")
}

func run(ctx context.Context, log *slog.Logger, cost int, migrate bool) error {
	cfg, err := env.ParseAsWithOptions[db.Config](env.Options{Prefix: "DATABASE_"})
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if migrate {
		if err := db.Migrate(ctx, pool, store.Migrations, cfg.MigrationsTable, log); err != nil {
			return err
		}
	}

	hasher := password.New(cost)
	return db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		s := store.New(tx)
		return seed(ctx, repos{users: s.Users, articles: s.Articles, reports: s.Reports}, hasher, time.Now())
	})
}
