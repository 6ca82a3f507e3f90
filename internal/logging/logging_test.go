package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Writer: &buf, Service: "api"})

	logger.Info("hidden")
	logger.Warn("shown", "threshold", 0.55)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "service=api")
	assert.Contains(t, out, "threshold=0.55")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "debug", JSON: true, Writer: &buf})

	logger.Debug("graph loaded", "nodes", 12)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "graph loaded", entry["msg"])
	assert.Equal(t, float64(12), entry["nodes"])
	assert.Equal(t, "DEBUG", entry["level"])
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("nothing") })
}
