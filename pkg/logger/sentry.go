package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig configures error reporting. An empty DSN disables Sentry.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	Release     string `env:"SENTRY_RELEASE"`
}

// NewWithSentry creates a stdout JSON logger that also reports to Sentry.
// The returned flush waits for queued events and must run before exit.
// Without a DSN, or if Sentry fails to start, the logger is stdout only.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) (*slog.Logger, func(time.Duration)) {
	stdout := newHandler(os.Stdout, Config{})
	noflush := func(time.Duration) {}

	if cfg.DSN == "" {
		return slog.New(withExtractors(stdout, extractors...)), noflush
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	})
	if err != nil {
		slog.New(stdout).Error("sentry init failed", slog.String("error", err.Error()))
		return slog.New(withExtractors(stdout, extractors...)), noflush
	}

	reporter := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	flush := func(timeout time.Duration) {
		sentry.Flush(timeout)
	}
	return slog.New(withExtractors(fanout{stdout, reporter}, extractors...)), flush
}
