package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv unsets key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadEnv(t *testing.T) {
	unsetenv(t, "PORT")
	unsetenv(t, "SERVICE_PORT")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9000\n"), 0o600))

	loadEnv(path)

	assert.Equal(t, "9000", os.Getenv("PORT"))
	assert.Equal(t, "9000", os.Getenv("SERVICE_PORT"))
}

func TestLoadEnvKeepsServicePort(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SERVICE_PORT", "8080")

	loadEnv(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "8080", os.Getenv("SERVICE_PORT"))
}
