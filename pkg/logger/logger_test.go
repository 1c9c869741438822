package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relawan/portal/pkg/logger"
)

type traceKey struct{}

func traceExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(traceKey{}).(string)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}

func TestNewWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("json with extractor", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithConfig(&buf, logger.Config{Level: "info"}, traceExtractor, nil)

		ctx := context.WithValue(context.Background(), traceKey{}, "req-1")
		log.With("component", "api").InfoContext(ctx, "request completed", "status", 200)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "request completed", rec["msg"])
		require.Equal(t, "req-1", rec["request_id"])
		require.Equal(t, "api", rec["component"])
		require.EqualValues(t, 200, rec["status"])
	})

	t.Run("extractor miss adds nothing", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithConfig(&buf, logger.Config{}, traceExtractor)

		log.InfoContext(context.Background(), "hello")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.NotContains(t, rec, "request_id")
	})

	t.Run("level filter", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithConfig(&buf, logger.Config{Level: "WARN"})

		log.Info("dropped")
		require.Zero(t, buf.Len())
		log.Warn("kept")
		require.Contains(t, buf.String(), "kept")
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithConfig(&buf, logger.Config{Format: "text"})

		log.Info("hello", "user", "admin")
		require.Contains(t, buf.String(), "msg=hello")
		require.Contains(t, buf.String(), "user=admin")
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	require.Equal(t, slog.LevelError, logger.ParseLevel("ERROR"))
	require.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
	require.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestNewWithSentry_NoDSN(t *testing.T) {
	t.Parallel()

	log, flush := logger.NewWithSentry(logger.SentryConfig{})
	require.NotNil(t, log)
	flush(0)
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
}
