package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/eventcal/internal/model"
)

func TestParseFlags_OverridesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	v := model.NewViper()

	flags, err := parseFlags(v, []string{"--config", path, "--backend", "sqlite", "--week-start", "monday", "-m", "2024-06"})
	require.NoError(t, err)
	assert.Equal(t, path, flags.configPath)
	assert.Equal(t, "2024-06", flags.month)

	cfg, err := model.LoadConfigWith(v, flags.configPath)
	require.NoError(t, err)
	assert.Equal(t, model.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, time.Monday, cfg.Calendar.WeekStartDay())
	assert.Equal(t, "events.db", filepath.Base(cfg.Storage.Path))
}

func TestParseFlags_DefaultsKeepConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	v := model.NewViper()

	flags, err := parseFlags(v, []string{"--config", path})
	require.NoError(t, err)

	cfg, err := model.LoadConfigWith(v, flags.configPath)
	require.NoError(t, err)
	assert.Equal(t, model.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, time.Sunday, cfg.Calendar.WeekStartDay())
}

func TestParseFlags_Unknown(t *testing.T) {
	_, err := parseFlags(model.NewViper(), []string{"--nope"})
	assert.Error(t, err)
}

func TestRun_HeadlessExport(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EVENTCAL_STORAGE_PATH", filepath.Join(dir, "events.json"))
	t.Setenv("EVENTCAL_EXPORT_DIR", dir)

	v := model.NewViper()
	flags, err := parseFlags(v, []string{"--config", filepath.Join(dir, "config.yaml"), "--month", "2024-06", "--export", "csv"})
	require.NoError(t, err)

	require.NoError(t, run(v, flags))
	assert.FileExists(t, filepath.Join(dir, "events_June_2024.csv"))
}

func TestRun_BadMonth(t *testing.T) {
	dir := t.TempDir()
	v := model.NewViper()
	flags, err := parseFlags(v, []string{"--config", filepath.Join(dir, "config.yaml"), "--month", "June", "--export", "json"})
	require.NoError(t, err)

	assert.ErrorContains(t, run(v, flags), "invalid --month")
}
