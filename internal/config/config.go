// Package config holds the watcher's configuration, loaded through viper
// from a YAML file, environment variables, or command-line flags.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete jobwatch configuration
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Watcher WatcherConfig `mapstructure:"watcher"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BackendConfig locates the grading backend
type BackendConfig struct {
	// URL is the backend base address. Trailing slashes are tolerated
	// and stripped before probe URLs are built.
	URL string `mapstructure:"url"`
}

// WatcherConfig controls polling behavior
type WatcherConfig struct {
	// PollIntervalMs is the probe cadence per job in milliseconds (default: 3000)
	PollIntervalMs int `mapstructure:"poll_interval_ms"`
}

// PollInterval returns the probe cadence as a time.Duration
func (c *WatcherConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// SessionConfig controls where the completion ledger lives
type SessionConfig struct {
	// Dir is the session-scoped directory holding completion markers.
	// If empty, defaults to "session" under the config directory.
	// Supports ~ for home directory expansion. Distinct sessions or
	// users must be given distinct directories.
	Dir string `mapstructure:"dir"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is where the log file is written. Empty means stderr.
	Dir string `mapstructure:"dir"`
}

// ResolveSessionDir returns the resolved session directory path.
// If Dir is empty, it returns the default under the config directory.
// If Dir starts with ~, it expands to the user's home directory.
func (s *SessionConfig) ResolveSessionDir() string {
	if s.Dir == "" {
		return filepath.Join(ConfigDir(), "session")
	}

	path := s.Dir
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}
	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL: "http://localhost:8000",
		},
		Watcher: WatcherConfig{
			PollIntervalMs: 3000,
		},
		Session: SessionConfig{
			Dir: "", // Empty means use default: <config dir>/session
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("backend.url", defaults.Backend.URL)
	viper.SetDefault("watcher.poll_interval_ms", defaults.Watcher.PollIntervalMs)
	viper.SetDefault("session.dir", defaults.Session.Dir)
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jobwatch")
	}
	// Fall back to ~/.config/jobwatch
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jobwatch"
	}
	return filepath.Join(home, ".config", "jobwatch")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
