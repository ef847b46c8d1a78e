package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8181", cfg.Addr)
	assert.Equal(t, "./calendar/events", cfg.Data.Dir)
	assert.Equal(t, "./calendar/settings.yaml", cfg.Data.SettingsFile)
	assert.True(t, cfg.Data.Watch)
	assert.True(t, cfg.Frontend.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yaml")
	content := "addr: \":9000\"\ndata:\n  dir: \"/tmp/events\"\n  watch: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "/tmp/events", cfg.Data.Dir)
	assert.False(t, cfg.Data.Watch)
	// Untouched values keep their defaults.
	assert.Equal(t, "./calendar/settings.yaml", cfg.Data.SettingsFile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("ALMANAK_DATA_DIR", "/srv/calendar")
	t.Setenv("ALMANAK_ADDR", ":7777")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "/srv/calendar", cfg.Data.Dir)
	assert.Equal(t, ":7777", cfg.Addr)
}
