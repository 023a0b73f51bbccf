package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))

	cfg, err := LoadConfig(filepath.Join(tmp, "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(tmp, "data", "eventcal", "events.json"), cfg.Storage.Path)
	assert.Equal(t, "events", cfg.Storage.RedisKey)
	assert.Equal(t, 30*time.Second, cfg.Storage.PollInterval())
	assert.Equal(t, time.Sunday, cfg.Calendar.WeekStartDay())
	assert.Equal(t, DefaultColor, cfg.Calendar.DefaultColor)
	assert.Equal(t, DefaultStartTime, cfg.Calendar.DefaultStart)
	assert.Equal(t, DefaultEndTime, cfg.Calendar.DefaultEnd)
	assert.Equal(t, 3, cfg.Display.MaxChips)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(tmp, "state", "eventcal", "eventcal.log"), cfg.Log.Path)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))

	path := filepath.Join(tmp, "config.yaml")
	content := `storage:
  backend: SQLite
calendar:
  week_start: monday
  default_color: "#00AAFF"
display:
  theme: light
  max_chips: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(tmp, "data", "eventcal", "events.db"), cfg.Storage.Path)
	assert.Equal(t, time.Monday, cfg.Calendar.WeekStartDay())
	assert.Equal(t, "#00AAFF", cfg.Calendar.DefaultColor)
	assert.Equal(t, "light", cfg.Display.Theme)
	assert.Equal(t, 5, cfg.Display.MaxChips)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("EVENTCAL_STORAGE_BACKEND", "redis")
	t.Setenv("EVENTCAL_STORAGE_REDIS_KEY", "cal:events")

	cfg, err := LoadConfig(filepath.Join(tmp, "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "cal:events", cfg.Storage.RedisKey)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unterminated"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "config.yaml")

	want := &AppConfig{
		Storage:  StorageConfig{Backend: BackendRedis, Path: "/tmp/x.json", RedisAddr: "10.0.0.1:6379", RedisKey: "events"},
		Calendar: CalendarConfig{WeekStart: "monday", DefaultColor: "#112233", DefaultStart: "08:00", DefaultEnd: "08:30"},
		Export:   ExportConfig{Dir: "/tmp/exports"},
		Display:  DisplayConfig{Theme: "dark", MaxChips: 2},
		Log:      LogConfig{Level: "debug", Path: "/tmp/eventcal.log"},
	}
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWeekStartDay(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
	}{
		{in: "sunday", want: time.Sunday},
		{in: "Monday", want: time.Monday},
		{in: " monday ", want: time.Monday},
		{in: "friday", want: time.Sunday},
		{in: "", want: time.Sunday},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CalendarConfig{WeekStart: tc.in}.WeekStartDay(), tc.in)
	}
}

func TestLoadConfig_UnreadablePathIsAnError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.Mkdir(dir, 0o755))

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}
