package logger

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readJSONLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line), sc.Text())
		lines = append(lines, line)
	}
	require.NoError(t, sc.Err())
	return lines
}

func TestNewJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger := New(&Options{LogLevel: "warn", LogFile: path, LogFormat: "JSON"}, "Contacts API", "1.2.3")

	logger.Info("dropped")
	logger.Warn("kept", "n", 1)

	lines := readJSONLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.Equal(t, "kept", lines[0]["msg"])
	assert.InDelta(t, 1, lines[0]["n"], 0)
	assert.Equal(t, "Contacts API", lines[0]["service"])
	assert.Equal(t, "1.2.3", lines[0]["version"])
}

func TestNewInvalidOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	options := &Options{LogLevel: "loud", LogFile: path, LogFormat: "xml"}
	New(options, "Contacts API", "dev")

	assert.Empty(t, options.LogLevel)
	assert.Equal(t, "text", options.LogFormat)

	f, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(f)
	assert.Contains(t, out, `level=WARN msg="could not parse logger level" service="Contacts API" version=dev option=loud`)
	assert.Contains(t, out, `level=WARN msg="could not parse logger format" service="Contacts API" version=dev option=xml`)
}

func TestNewWarningsAreTagged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	options := &Options{LogLevel: "verbose", LogFile: path, LogFormat: "json"}
	New(options, "Contacts API", "dev")

	lines := readJSONLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.Equal(t, "could not parse logger level", lines[0]["msg"])
	assert.Equal(t, "verbose", lines[0]["option"])
	assert.Equal(t, "Contacts API", lines[0]["service"])
	assert.Equal(t, "dev", lines[0]["version"])
}

func TestNewDiscard(t *testing.T) {
	options := &Options{LogFile: os.DevNull, LogFormat: "xml"}
	logger := New(options, "Contacts API", "dev")

	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
	assert.Equal(t, "text", options.LogFormat)
}

func TestNewUnwritableFile(t *testing.T) {
	options := &Options{LogFile: filepath.Join(t.TempDir(), "missing", "app.log"), LogFormat: "json"}
	logger := New(options, "Contacts API", "dev")

	assert.NotNil(t, logger)
	assert.Empty(t, options.LogFile)
}
