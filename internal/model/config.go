package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backend identifiers.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// StorageConfig selects and configures the event store.
type StorageConfig struct {
	// Backend is one of "file", "sqlite" or "redis".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the JSON file (file backend) or database file (sqlite backend).
	Path string `mapstructure:"path" yaml:"path"`

	RedisAddr string `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db" yaml:"redis_db"`
	RedisKey  string `mapstructure:"redis_key" yaml:"redis_key"`

	// PollIntervalSec is how often a running UI re-reads the store to pick
	// up changes made by other processes. Zero disables polling.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

// PollInterval returns PollIntervalSec as a duration.
func (c StorageConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// CalendarConfig holds month-grid and new-event preferences.
type CalendarConfig struct {
	// WeekStart is "sunday" or "monday".
	WeekStart    string `mapstructure:"week_start" yaml:"week_start"`
	DefaultColor string `mapstructure:"default_color" yaml:"default_color"`
	DefaultStart string `mapstructure:"default_start" yaml:"default_start"`
	DefaultEnd   string `mapstructure:"default_end" yaml:"default_end"`
}

// ExportConfig controls where exported files are written.
type ExportConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme is "auto", "dark" or "light".
	Theme string `mapstructure:"theme" yaml:"theme"`

	// MaxChips caps the event chips drawn inside one grid cell.
	MaxChips int `mapstructure:"max_chips" yaml:"max_chips"`
}

// LogConfig configures the slog file logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	Path  string `mapstructure:"path" yaml:"path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Calendar CalendarConfig `mapstructure:"calendar" yaml:"calendar"`
	Export   ExportConfig   `mapstructure:"export" yaml:"export"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// WeekStartDay maps the configured week start onto a time.Weekday.
// Anything other than "monday" means Sunday, the layout the calendar
// has always used.
func (c CalendarConfig) WeekStartDay() time.Weekday {
	if strings.EqualFold(strings.TrimSpace(c.WeekStart), "monday") {
		return time.Monday
	}
	return time.Sunday
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/eventcal/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "eventcal", "config.yaml")
}

// dataDir returns $XDG_DATA_HOME/eventcal or ~/.local/share/eventcal.
func dataDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); dir != "" {
		return filepath.Join(dir, "eventcal")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "eventcal")
}

// stateDir returns $XDG_STATE_HOME/eventcal or ~/.local/state/eventcal.
func stateDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); dir != "" {
		return filepath.Join(dir, "eventcal")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "state", "eventcal")
}

// setDefaults registers every key so missing keys resolve to sensible values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.redis_addr", "127.0.0.1:6379")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.redis_key", "events")
	v.SetDefault("storage.poll_interval_sec", 30)
	v.SetDefault("calendar.week_start", "sunday")
	v.SetDefault("calendar.default_color", DefaultColor)
	v.SetDefault("calendar.default_start", DefaultStartTime)
	v.SetDefault("calendar.default_end", DefaultEndTime)
	v.SetDefault("export.dir", ".")
	v.SetDefault("display.theme", "auto")
	v.SetDefault("display.max_chips", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(stateDir(), "eventcal.log"))
}

// NewViper returns a viper instance with defaults and the EVENTCAL_ env
// prefix configured. Callers may bind flags before passing it to
// LoadConfigWith.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("EVENTCAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, defaults apply.
func LoadConfig(path string) (*AppConfig, error) {
	return LoadConfigWith(NewViper(), path)
}

// LoadConfigWith is LoadConfig on a caller-supplied viper instance.
func LoadConfigWith(v *viper.Viper, path string) (*AppConfig, error) {
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.normalize()

	return cfg, nil
}

// normalize fills values that depend on the environment or that a
// hand-edited file may have blanked.
func (c *AppConfig) normalize() {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case BackendSQLite:
			c.Storage.Path = filepath.Join(dataDir(), "events.db")
		default:
			c.Storage.Path = filepath.Join(dataDir(), "events.json")
		}
	}
	if c.Storage.RedisKey == "" {
		c.Storage.RedisKey = "events"
	}
	if c.Storage.PollIntervalSec < 0 {
		c.Storage.PollIntervalSec = 0
	}
	if c.Calendar.DefaultColor == "" {
		c.Calendar.DefaultColor = DefaultColor
	}
	if c.Calendar.DefaultStart == "" {
		c.Calendar.DefaultStart = DefaultStartTime
	}
	if c.Calendar.DefaultEnd == "" {
		c.Calendar.DefaultEnd = DefaultEndTime
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.Display.MaxChips <= 0 {
		c.Display.MaxChips = 3
	}
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("calendar", cfg.Calendar)
	v.Set("export", cfg.Export)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
