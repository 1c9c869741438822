package db

import "time"

// Config holds PostgreSQL pool settings, loaded from DATABASE_* variables.
type Config struct {
	URL             string `env:"URL,required"`
	MigrationsTable string `env:"MIGRATIONS_TABLE" envDefault:"schema_migrations"`

	MaxConns          int32         `env:"MAX_CONNS" envDefault:"10"`
	MinConns          int32         `env:"MIN_CONNS" envDefault:"2"`
	MaxConnIdleTime   time.Duration `env:"MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"30m"`
	HealthCheckPeriod time.Duration `env:"HEALTHCHECK_PERIOD" envDefault:"1m"`

	// Attempt n waits n*RetryInterval before the next one.
	RetryAttempts int           `env:"RETRY_ATTEMPTS" envDefault:"5"`
	RetryInterval time.Duration `env:"RETRY_INTERVAL" envDefault:"2s"`
}
