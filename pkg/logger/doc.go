// Package logger builds the slog loggers used across the portal.
//
// Loggers write JSON to stdout. Request-scoped values such as the request id
// are pulled from the context on every record through [ContextExtractor]s:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//
// When a Sentry DSN is configured, [NewWithSentry] also forwards warnings
// as Sentry logs and errors as Sentry issues:
//
//	log, flush := logger.NewWithSentry(cfg.Sentry, middlewares.RequestIDExtractor())
//	defer flush(2 * time.Second)
package logger
