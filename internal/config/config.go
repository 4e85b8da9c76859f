package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Tracker configuration
	Tracker TrackerConfig

	// Input capture configuration
	Input InputConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Retention configuration
	Retention RetentionConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string // Path to SQLite database file
}

// TrackerConfig holds tracking behavior configuration
type TrackerConfig struct {
	PollInterval    time.Duration // How often the coordinator loop ticks
	MinPollInterval time.Duration // Minimum allowed poll interval
	MaxPollInterval time.Duration // Maximum allowed poll interval
	MetricsInterval time.Duration // How often input metrics are flushed
	IdleThreshold   time.Duration // Time without input before the user counts as idle
}

// InputConfig holds input capture configuration
type InputConfig struct {
	SampleInterval   time.Duration // How often listeners sample input devices
	EnableController bool          // Whether to watch game controllers
	ControllerID     int           // Controller device index (/dev/input/js<N>)
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
}

// RetentionConfig holds database retention configuration
type RetentionConfig struct {
	Days     int    // Delete records older than this many days (0 disables pruning)
	Schedule string // Cron schedule for the pruning job
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "", // Empty means use default ~/.config/tracker/tracker.db
		},
		Tracker: TrackerConfig{
			PollInterval:    1 * time.Second,
			MinPollInterval: 1 * time.Second,
			MaxPollInterval: 60 * time.Second,
			MetricsInterval: 60 * time.Second,
			IdleThreshold:   180 * time.Second, // 3 minutes without input
		},
		Input: InputConfig{
			SampleInterval:   100 * time.Millisecond,
			EnableController: true,
			ControllerID:     0,
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/tracker-%d.pid", os.Getuid()),
		},
		Retention: RetentionConfig{
			Days:     0, // Keep everything by default
			Schedule: "@daily",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Tracker.PollInterval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be less than minimum (%v)",
			c.Tracker.PollInterval, c.Tracker.MinPollInterval)
	}

	if c.Tracker.PollInterval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be greater than maximum (%v)",
			c.Tracker.PollInterval, c.Tracker.MaxPollInterval)
	}

	if c.Tracker.MetricsInterval < c.Tracker.PollInterval {
		return fmt.Errorf("metrics interval (%v) cannot be less than poll interval (%v)",
			c.Tracker.MetricsInterval, c.Tracker.PollInterval)
	}

	if c.Tracker.IdleThreshold <= 0 {
		return fmt.Errorf("idle threshold must be positive")
	}

	if c.Input.SampleInterval < 10*time.Millisecond {
		return fmt.Errorf("input sample interval (%v) cannot be less than 10ms", c.Input.SampleInterval)
	}

	if c.Input.ControllerID < 0 {
		return fmt.Errorf("controller ID cannot be negative")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	if c.Retention.Days < 0 {
		return fmt.Errorf("retention days cannot be negative")
	}

	if c.Retention.Days > 0 && c.Retention.Schedule == "" {
		return fmt.Errorf("retention schedule cannot be empty when pruning is enabled")
	}

	return nil
}

// SetPollInterval sets the poll interval with validation
func (c *Config) SetPollInterval(interval time.Duration) error {
	if interval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval cannot be less than %v", c.Tracker.MinPollInterval)
	}
	if interval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval cannot be greater than %v", c.Tracker.MaxPollInterval)
	}
	c.Tracker.PollInterval = interval
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Database:
    Path: %s
  Tracker:
    Poll Interval: %v
    Metrics Interval: %v
    Idle Threshold: %v
  Input:
    Sample Interval: %v
    Controller Enabled: %v
    Controller ID: %d
  Daemon:
    PID File: %s
  Retention:
    Days: %d
    Schedule: %s`,
		c.Database.Path,
		c.Tracker.PollInterval,
		c.Tracker.MetricsInterval,
		c.Tracker.IdleThreshold,
		c.Input.SampleInterval,
		c.Input.EnableController,
		c.Input.ControllerID,
		c.Daemon.PIDFile,
		c.Retention.Days,
		c.Retention.Schedule,
	)
}
