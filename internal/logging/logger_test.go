package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewHandler_ProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	conf := &config.Config{Environment: "production", Logging: config.LoggingConfig{Level: "warn"}}

	logger := slog.New(NewHandler(&buf, conf))
	logger.Info("dropped")
	logger.Warn("kept", "phone", "770000001")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "770000001", line["phone"])
	assert.Contains(t, line, slog.SourceKey)
}

func TestNewHandler_DevelopmentIsText(t *testing.T) {
	var buf bytes.Buffer
	conf := &config.Config{Environment: "development", Logging: config.LoggingConfig{Level: "debug"}}

	h := NewHandler(&buf, conf)
	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))

	slog.New(h).Debug("sync completed", "records", 3)
	assert.Contains(t, buf.String(), `msg="sync completed" records=3`)
}
