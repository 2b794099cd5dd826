package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "ngwp", "v1.2.3", "info", FormatJSON)

	log.Debug("hidden")
	log.Info("menu built", "menu_id", 2, "items", 3, "err", errors.New("boom"))
	log.WithGroup("req").Warn("slow", "path", "/menus")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "menu built", lines[0]["message"])
	assert.Equal(t, "ngwp", lines[0]["module"])
	assert.Equal(t, "v1.2.3", lines[0]["version"])
	assert.EqualValues(t, 2, lines[0]["menu_id"])
	assert.Equal(t, "boom", lines[0]["err"])
	assert.NotContains(t, lines[0], "source")

	assert.Equal(t, "warn", lines[1]["level"])
	assert.Equal(t, "/menus", lines[1]["req.path"])
}

func TestNewLoggerDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "ngwp", "dev", "debug", FormatJSON)

	log.Debug("visible")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "debug", lines[0]["level"])
	assert.Contains(t, lines[0]["source"], "logger_test.go")
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "ngwp", "dev", "info", FormatConsole)

	log.Info("hello", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.NotContains(t, out, `"message"`)
}

func TestNewStructuredLogger(t *testing.T) {
	t.Setenv(EnvVarLogFormat, "")

	log := NewStructuredLogger("ngwp", "dev", "warn")
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, log.Enabled(context.Background(), slog.LevelWarn))
}

func TestSetDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Setenv(EnvVarLogLevel, "debug")
	t.Setenv(EnvVarLogFormat, FormatConsole)
	SetDefaultLogger("ngwp", "dev")
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	SetDefaultLoggerWithLevel("ngwp", "dev", "error")
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelError))
}
