package config

import (
	"os"
	"time"
)

// Timeouts bounds individual Azure Resource Manager calls. They are the
// only time limits a run applies; Azure calls are never retried.
type Timeouts struct {
	Create time.Duration // Create calls, including waiting for the long-running operation
	Update time.Duration // In-place container app updates
	Delete time.Duration // Delete calls that are awaited
	Read   time.Duration // Existence checks and key retrieval
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - ACADEPLOY_TIMEOUT_CREATE (default: 30m)
//   - ACADEPLOY_TIMEOUT_UPDATE (default: 15m)
//   - ACADEPLOY_TIMEOUT_DELETE (default: 15m)
//   - ACADEPLOY_TIMEOUT_READ (default: 1m)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Create: parseDuration("ACADEPLOY_TIMEOUT_CREATE", 30*time.Minute),
		Update: parseDuration("ACADEPLOY_TIMEOUT_UPDATE", 15*time.Minute),
		Delete: parseDuration("ACADEPLOY_TIMEOUT_DELETE", 15*time.Minute),
		Read:   parseDuration("ACADEPLOY_TIMEOUT_READ", time.Minute),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}
