package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func debugLogger(buf *bytes.Buffer) *Logger {
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug, ReplaceAttr: roundFloats})
	return &Logger{slog.New(handler)}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	require.NotNil(t, logger)
	require.NotNil(t, logger.Logger)
}

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected slog.Level
	}{
		{"debug level", "DEBUG", slog.LevelDebug},
		{"info level", "INFO", slog.LevelInfo},
		{"warn level", "WARN", slog.LevelWarn},
		{"warning alias", "WARNING", slog.LevelWarn},
		{"error level", "ERROR", slog.LevelError},
		{"lowercase debug", "debug", slog.LevelDebug},
		{"padded value", " error ", slog.LevelError},
		{"invalid level", "INVALID", slog.LevelInfo},
		{"empty value", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(LevelEnvVar, tt.envValue)
			assert.Equal(t, tt.expected, levelFromEnv())
		})
	}
}

func TestNewLoggerWithWriter_RespectsLevel(t *testing.T) {
	t.Setenv(LevelEnvVar, "WARN")
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf)

	logger.Info(context.Background(), "dropped")
	assert.Zero(t, buf.Len())

	logger.Warn(context.Background(), "kept", "drones", 3)
	entry := decodeLine(t, &buf)
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, float64(3), entry["drones"])
}

func TestNewDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	assert.NotPanics(t, func() {
		logger.Error(context.Background(), "nowhere", errors.New("boom"))
	})
}

func TestRunID(t *testing.T) {
	t.Run("fresh ids differ", func(t *testing.T) {
		id1 := NewID()
		id2 := NewID()

		assert.NotEqual(t, id1, id2)
		_, err := uuid.Parse(id1)
		assert.NoError(t, err)
	})

	t.Run("explicit run id", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "nightly-soak")
		assert.Equal(t, "nightly-soak", runID(ctx))
	})

	t.Run("no run id", func(t *testing.T) {
		assert.Empty(t, runID(context.Background()))
	})

	t.Run("generated run id", func(t *testing.T) {
		_, err := uuid.Parse(runID(WithRunID(context.Background(), "")))
		assert.NoError(t, err)
	})
}

func TestRoundFloats(t *testing.T) {
	tests := []struct {
		name     string
		attr     slog.Attr
		expected slog.Value
	}{
		{"rounds distance", slog.Float64("dist", 1.79912345), slog.Float64Value(1.7991)},
		{"rounds negative", slog.Float64("x", -0.123456), slog.Float64Value(-0.1235)},
		{"keeps ints", slog.Int("tick", 42), slog.IntValue(42)},
		{"keeps strings", slog.String("outcome", "victory"), slog.StringValue("victory")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundFloats(nil, tt.attr)
			assert.Equal(t, tt.attr.Key, got.Key)
			assert.True(t, tt.expected.Equal(got.Value), "got %v", got.Value)
		})
	}

	t.Run("keeps infinities", func(t *testing.T) {
		got := roundFloats(nil, slog.Float64("dt", math.Inf(1)))
		assert.True(t, math.IsInf(got.Value.Float64(), 1))
	})
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := debugLogger(&buf)
	ctx := WithRunID(context.Background(), "run-123")

	t.Run("info logging", func(t *testing.T) {
		buf.Reset()
		logger.Info(ctx, "checkpoint collected", "left", 2, "dist", 0.123456)

		entry := decodeLine(t, &buf)
		assert.Equal(t, "checkpoint collected", entry["msg"])
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "run-123", entry["run_id"])
		assert.Equal(t, float64(2), entry["left"])
		assert.Equal(t, 0.1235, entry["dist"])
	})

	t.Run("error logging", func(t *testing.T) {
		buf.Reset()
		logger.Error(ctx, "config rejected", errors.New("radius must be positive"))

		entry := decodeLine(t, &buf)
		assert.Equal(t, "ERROR", entry["level"])
		assert.Equal(t, "radius must be positive", entry["error"])
	})

	t.Run("debug logging", func(t *testing.T) {
		buf.Reset()
		logger.Debug(ctx, "drone destroyed")
		assert.Equal(t, "DEBUG", decodeLine(t, &buf)["level"])
	})

	t.Run("warn without run id", func(t *testing.T) {
		buf.Reset()
		logger.Warn(context.Background(), "tick clamped")

		entry := decodeLine(t, &buf)
		assert.Equal(t, "WARN", entry["level"])
		assert.NotContains(t, entry, "run_id")
	})
}

func TestWithSession(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf).WithSession("session-1")

	logger.Info(context.Background(), "session started")

	assert.Equal(t, "session-1", decodeLine(t, &buf)["session_id"])
}

func TestWrapError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, WrapError(nil, "loading config"))
	})

	t.Run("plain message", func(t *testing.T) {
		original := errors.New("file not found")
		wrapped := WrapError(original, "loading config")

		assert.EqualError(t, wrapped, "loading config: file not found")
		assert.ErrorIs(t, wrapped, original)
	})

	t.Run("formatted message", func(t *testing.T) {
		wrapped := WrapError(errors.New("bad value"), "field %s of session %d", "radius", 3)
		assert.EqualError(t, wrapped, "field radius of session 3: bad value")
	})
}
