package config_test

import (
	"fmt"
	"time"

	"github.com/tdooms/tracker/internal/config"
)

// Example of creating a default configuration
func ExampleDefault() {
	cfg := config.Default()
	fmt.Println("Poll Interval:", cfg.Tracker.PollInterval)
	fmt.Println("Idle Threshold:", cfg.Tracker.IdleThreshold)
	// Output:
	// Poll Interval: 1s
	// Idle Threshold: 3m0s
}

// Example of setting poll interval with validation
func ExampleConfig_SetPollInterval() {
	cfg := config.Default()

	// Valid interval
	if err := cfg.SetPollInterval(2 * time.Second); err != nil {
		fmt.Println("Error:", err)
	} else {
		fmt.Println("Poll interval set to:", cfg.Tracker.PollInterval)
	}

	// Invalid interval (too low)
	if err := cfg.SetPollInterval(500 * time.Millisecond); err != nil {
		fmt.Println("Error:", err)
	}

	// Output:
	// Poll interval set to: 2s
	// Error: poll interval cannot be less than 1s
}

// Example of validating configuration
func ExampleConfig_Validate() {
	cfg := config.Default()

	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
	} else {
		fmt.Println("Configuration is valid")
	}

	// Output:
	// Configuration is valid
}
