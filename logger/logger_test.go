package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/dragonsquest/config"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, &config.Config{LogLevel: slog.LevelDebug, LogFormat: "json"})

	logger.Debug("game event", "event", "item_added")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "game event", rec["msg"])
	assert.Equal(t, "item_added", rec["event"])
}

func TestNew_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, &config.Config{LogLevel: slog.LevelWarn, LogFormat: "text"})

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestSetup_NoFileDiscards(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger, closeFn, err := Setup(&config.Config{})
	require.NoError(t, err)
	defer closeFn()

	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
}

func TestSetup_File(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "dq.log")
	logger, closeFn, err := Setup(&config.Config{LogFile: path, LogLevel: slog.LevelInfo, LogFormat: "text"})
	require.NoError(t, err)

	logger.Info("session started")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session started")
	assert.Same(t, logger, slog.Default())
}

func TestSetup_BadFile(t *testing.T) {
	_, _, err := Setup(&config.Config{LogFile: filepath.Join(t.TempDir(), "missing", "dq.log")})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWithSession(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, &config.Config{LogFormat: "json"})

	logger, id := WithSession(base)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	logger.Info("hello")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, id, rec["session_id"])
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := WithError(New(&buf, &config.Config{}), errors.New("boom"))

	logger.Error("failed")
	assert.Contains(t, buf.String(), "error=boom")
}
