// internal/logging/logger_test.go
package logging

import (
	"bytes"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	var buf bytes.Buffer
	lg := New(&buf, "info", "json")
	lg.Info("cycle done", "cycle", "c-1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "cycle done", rec["msg"])
	assert.Equal(t, "c-1", rec["cycle"])
}

func TestNew_LevelFilters(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	var buf bytes.Buffer
	lg := New(&buf, "warn", "text")
	lg.Info("hidden")
	assert.Zero(t, buf.Len())

	lg.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLevel(" ERROR "))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
