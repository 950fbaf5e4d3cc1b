package watcher

import (
	"time"

	"github.com/gradeflow/jobwatch/internal/logging"
)

// defaultPollInterval is how often each job's status is probed.
const defaultPollInterval = 3 * time.Second

// Option configures a Watcher.
type Option func(*config)

type config struct {
	pollInterval time.Duration
	logger       *logging.Logger
	notifier     Notifier
}

// WithPollInterval sets the probe cadence. A zero or negative value is
// replaced with the default (3s).
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		c.pollInterval = d
	}
}

// WithLogger sets the logger for the watcher.
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithNotifier sets the user-facing alert surface.
func WithNotifier(n Notifier) Option {
	return func(c *config) {
		c.notifier = n
	}
}
