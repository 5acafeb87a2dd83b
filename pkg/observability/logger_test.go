package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatText, Output: &buf})

		logger.Info("plan generated", "tasks", 4)

		assert.Contains(t, buf.String(), "plan generated")
		assert.Contains(t, buf.String(), "tasks=4")
	})

	t.Run("json format with service attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{
			Level:          LogLevelInfo,
			Format:         LogFormatJSON,
			Output:         &buf,
			ServiceName:    "dayfocus-test",
			ServiceVersion: "0.1.0",
		})

		logger.Info("ranked", "count", 3)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "ranked", entry["msg"])
		assert.Equal(t, "dayfocus-test", entry["service"])
		assert.Equal(t, "0.1.0", entry["version"])
		assert.EqualValues(t, 3, entry["count"])
	})

	t.Run("level filtering", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelWarn, Output: &buf})

		logger.Debug("hidden debug")
		logger.Info("hidden info")
		logger.Warn("cache unavailable")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "cache unavailable")
	})

	t.Run("invocation attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatJSON, Output: &buf})
		userID := uuid.New()

		ctx := StartInvocation(WithCorrelationID(context.Background(), "corr-1"), Invocation{
			Surface:   SurfaceMCP,
			Operation: "priority.suggest",
			UserID:    userID,
		})
		logger.InfoContext(ctx, "suggest")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "corr-1", entry[CorrelationIDKey])
		inv, ok := entry[InvocationKey].(map[string]any)
		require.True(t, ok, buf.String())
		assert.Equal(t, SurfaceMCP, inv[SurfaceKey])
		assert.Equal(t, "priority.suggest", inv[OperationKey])
		assert.Equal(t, userID.String(), inv[UserIDKey])
	})
}

func TestLogConfigs(t *testing.T) {
	dev := DefaultLogConfig()
	assert.Equal(t, LogFormatText, dev.Format)
	assert.Equal(t, "dayfocus", dev.ServiceName)

	prod := ProductionLogConfig()
	assert.Equal(t, LogFormatJSON, prod.Format)
	assert.True(t, prod.AddSource)
}

func TestConfigFor(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		level      string
		format     string
		wantLevel  LogLevel
		wantFormat LogFormat
	}{
		{"development defaults", false, "", "", LogLevelInfo, LogFormatText},
		{"production defaults", true, "", "", LogLevelInfo, LogFormatJSON},
		{"level override", false, "debug", "", LogLevelDebug, LogFormatText},
		{"format override", true, "", "text", LogLevelInfo, LogFormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ConfigFor(tt.production, tt.level, tt.format)
			assert.Equal(t, tt.wantLevel, cfg.Level)
			assert.Equal(t, tt.wantFormat, cfg.Format)
		})
	}
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected slog.Level
	}{
		{LogLevelDebug, slog.LevelDebug},
		{LogLevelInfo, slog.LevelInfo},
		{LogLevelWarn, slog.LevelWarn},
		{LogLevelError, slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, parseSlogLevel(tt.input))
		})
	}
}

func TestStartInvocation(t *testing.T) {
	t.Run("assigns a correlation id", func(t *testing.T) {
		ctx := StartInvocation(context.Background(), Invocation{Surface: SurfaceCLI, Operation: "dayfocus plan"})

		_, err := uuid.Parse(CorrelationIDFromContext(ctx))
		assert.NoError(t, err)

		inv, ok := InvocationFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "dayfocus plan", inv.Operation)
	})

	t.Run("keeps an existing correlation id", func(t *testing.T) {
		ctx := StartInvocation(WithCorrelationID(context.Background(), "corr-9"), Invocation{Surface: SurfaceCLI})
		assert.Equal(t, "corr-9", CorrelationIDFromContext(ctx))
	})

	t.Run("absent", func(t *testing.T) {
		_, ok := InvocationFromContext(context.Background())
		assert.False(t, ok)
		assert.Empty(t, CorrelationIDFromContext(context.Background()))
	})
}
