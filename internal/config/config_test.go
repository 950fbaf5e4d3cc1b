package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/gradeflow/jobwatch/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()

	if cfg.Backend.URL != "http://localhost:8000" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Watcher.PollInterval() != 3*time.Second {
		t.Errorf("PollInterval = %v, want 3s", cfg.Watcher.PollInterval())
	}
	if !cfg.Logging.Enabled {
		t.Error("logging should default to enabled")
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("default config should validate cleanly: %v", errs)
	}
}

func TestResolveSessionDir(t *testing.T) {
	s := config.SessionConfig{Dir: ""}
	got := s.ResolveSessionDir()
	if !strings.HasSuffix(got, "session") {
		t.Errorf("default session dir = %q, want a 'session' subdirectory", got)
	}

	s = config.SessionConfig{Dir: "/var/lib/jobwatch/session-abc"}
	if got := s.ResolveSessionDir(); got != "/var/lib/jobwatch/session-abc" {
		t.Errorf("absolute dir = %q, want unchanged", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "bad backend url",
			mutate:  func(c *config.Config) { c.Backend.URL = "not a url" },
			wantErr: "backend.url",
		},
		{
			name:    "relative backend url",
			mutate:  func(c *config.Config) { c.Backend.URL = "/just/a/path" },
			wantErr: "backend.url",
		},
		{
			name:    "negative poll interval",
			mutate:  func(c *config.Config) { c.Watcher.PollIntervalMs = -1 },
			wantErr: "watcher.poll_interval_ms",
		},
		{
			name:    "bogus log level",
			mutate:  func(c *config.Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if len(errs) == 0 {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(config.ValidationErrors(errs).Error(), tt.wantErr) {
				t.Errorf("errors %v do not mention %q", errs, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorsFormatting(t *testing.T) {
	errs := config.ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}
	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("multi-error message = %q", msg)
	}

	single := config.ValidationErrors{{Field: "a", Value: 1, Message: "bad"}}
	if !strings.Contains(single.Error(), "a: bad") {
		t.Errorf("single-error message = %q", single.Error())
	}
}
