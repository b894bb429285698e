package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	v, err := New()
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".timetracker", "timetracker.db"), cfg.DBPath)
	assert.Equal(t, "127.0.0.1:8742", cfg.Addr)
	assert.Equal(t, time.Second, cfg.Tick)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.Remote())
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TIMETRACKER_BACKEND", "http://tracker.local:8742")
	t.Setenv("TIMETRACKER_TICK", "500ms")
	t.Setenv("TIMETRACKER_LOG_LEVEL", "debug")

	v, err := New()
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.True(t, cfg.Remote())
	assert.Equal(t, "http://tracker.local:8742", cfg.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.Tick)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, "config", "timetracker")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "timetracker.yaml"), []byte("db: /tmp/tt.db\naddr: :9000\n"), 0644))

	v, err := New()
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tt.db", cfg.DBPath)
	assert.Equal(t, ":9000", cfg.Addr)
}

func TestLoad_FlagsWin(t *testing.T) {
	isolate(t)
	t.Setenv("TIMETRACKER_DB", "/from/env.db")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	require.NoError(t, flags.Parse([]string{"--db", "/from/flag.db"}))

	v, err := New()
	require.NoError(t, err)
	require.NoError(t, BindFlags(v, flags))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/from/flag.db", cfg.DBPath)
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("TIMETRACKER_LOG_LEVEL", "loud")
	v, err := New()
	require.NoError(t, err)
	_, err = Load(v)
	assert.Error(t, err)

	t.Setenv("TIMETRACKER_LOG_LEVEL", "info")
	t.Setenv("TIMETRACKER_TICK", "0s")
	v, err = New()
	require.NoError(t, err)
	_, err = Load(v)
	assert.Error(t, err)
}
