package config

import (
	"os"
	"strconv"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// Database configuration
	if dbPath := os.Getenv("TRACKER_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	// Tracker configuration
	if pollInterval := os.Getenv("TRACKER_POLL_INTERVAL"); pollInterval != "" {
		if seconds, err := strconv.Atoi(pollInterval); err == nil && seconds > 0 {
			interval := time.Duration(seconds) * time.Second
			if interval >= cfg.Tracker.MinPollInterval && interval <= cfg.Tracker.MaxPollInterval {
				cfg.Tracker.PollInterval = interval
			}
		}
	}

	if metricsInterval := os.Getenv("TRACKER_METRICS_INTERVAL"); metricsInterval != "" {
		if seconds, err := strconv.Atoi(metricsInterval); err == nil && seconds > 0 {
			cfg.Tracker.MetricsInterval = time.Duration(seconds) * time.Second
		}
	}

	if idleThreshold := os.Getenv("TRACKER_IDLE_THRESHOLD"); idleThreshold != "" {
		if seconds, err := strconv.Atoi(idleThreshold); err == nil && seconds > 0 {
			cfg.Tracker.IdleThreshold = time.Duration(seconds) * time.Second
		}
	}

	// Input configuration
	if sampleMs := os.Getenv("TRACKER_INPUT_SAMPLE_MS"); sampleMs != "" {
		if ms, err := strconv.Atoi(sampleMs); err == nil && ms > 0 {
			cfg.Input.SampleInterval = time.Duration(ms) * time.Millisecond
		}
	}

	if enableController := os.Getenv("TRACKER_ENABLE_CONTROLLER"); enableController != "" {
		if val, err := strconv.ParseBool(enableController); err == nil {
			cfg.Input.EnableController = val
		}
	}

	if controllerID := os.Getenv("TRACKER_CONTROLLER_ID"); controllerID != "" {
		if id, err := strconv.Atoi(controllerID); err == nil && id >= 0 {
			cfg.Input.ControllerID = id
		}
	}

	// Daemon configuration
	if pidFile := os.Getenv("TRACKER_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	// Retention configuration
	if retentionDays := os.Getenv("TRACKER_RETENTION_DAYS"); retentionDays != "" {
		if days, err := strconv.Atoi(retentionDays); err == nil && days >= 0 {
			cfg.Retention.Days = days
		}
	}

	if schedule := os.Getenv("TRACKER_RETENTION_SCHEDULE"); schedule != "" {
		cfg.Retention.Schedule = schedule
	}
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
