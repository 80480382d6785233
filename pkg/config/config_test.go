package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nindent: true\n"), 0o644))

	settings := DefaultSettings()
	require.NoError(t, Load(path, settings))

	assert.Equal(t, "debug", settings.LogLevel)
	assert.True(t, settings.Indent)
	// Untouched fields keep their defaults.
	assert.Equal(t, "json", settings.LogEncoding)
}

func TestLoadSubstitutesEnvVars(t *testing.T) {
	t.Setenv("QSCHEMAS_TEST_LEVEL", "warn")

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: ${QSCHEMAS_TEST_LEVEL}\n"), 0o644))

	settings := DefaultSettings()
	require.NoError(t, Load(path, settings))
	assert.Equal(t, "warn", settings.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	settings := DefaultSettings()
	assert.Error(t, Load("/nonexistent/settings.yaml", settings))
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Settings{LogLevel: "info", LogEncoding: "console", Development: true}
	require.NoError(t, Save(path, settings))

	loaded := DefaultSettings()
	require.NoError(t, Load(path, loaded))
	assert.Equal(t, settings, loaded)
}
