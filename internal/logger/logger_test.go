package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	defer slog.SetDefault(prev)

	log := Init(Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
	}, &buf)

	log.Info("test message", "key", "value", "number", 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, float64(42), entry["number"])
}

func TestInitFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	defer slog.SetDefault(prev)

	log := Init(Config{Level: "warn", Format: "text"}, &buf)
	log.Info("should be dropped")
	assert.Empty(t, buf.String())

	log.Warn("should appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "test-req-123")

	id, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "test-req-123", id)

	_, ok = RequestIDFromContext(context.Background())
	assert.False(t, ok)

	assert.NotNil(t, FromContext(ctx))
}

func TestLogLevelParsing(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Config{Level: tt.level}.LogLevel(), tt.level)
	}
}

func TestEnvironmentConfigs(t *testing.T) {
	prod := ProductionConfig()
	assert.True(t, prod.IsJSON())
	assert.False(t, prod.AddSource)

	dev := DevelopmentConfig()
	assert.False(t, dev.IsJSON())
	assert.True(t, dev.AddSource)
	assert.Equal(t, slog.LevelDebug, dev.LogLevel())
}
