package app

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"", slog.LevelWarn, slog.LevelInfo},
	}

	for _, tt := range tests {
		logger := NewLogger(tt.level, "text", &bytes.Buffer{})
		require.True(t, logger.Enabled(context.Background(), tt.enabled), "level %q", tt.level)
		require.False(t, logger.Enabled(context.Background(), tt.muted), "level %q", tt.level)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewLogger("info", "json", &buf).Info("hello", "k", 1)
	require.Contains(t, buf.String(), `"msg":"hello"`)
	require.Contains(t, buf.String(), `"k":1`)
}

func TestLoggerFrom_Default(t *testing.T) {
	t.Parallel()

	require.Same(t, slog.Default(), LoggerFrom(context.Background()))

	logger := NewLogger("debug", "text", &bytes.Buffer{})
	require.Same(t, logger, LoggerFrom(WithLogger(context.Background(), logger)))
}
