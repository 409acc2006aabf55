package config

import (
	"fmt"
	"regexp"

	"github.com/imamik/acadeploy/internal/deployerr"
)

// Validation severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a configuration validation error or warning.
type ValidationError struct {
	Field    string // Environment variable name of the offending key
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == SeverityError
}

// memoryPattern matches Container Apps memory quantities such as 0.5Gi.
var memoryPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?Gi$`)

// Validate returns a ConfigError for the first validation error, if any.
func (c *Config) Validate() error {
	for _, ve := range c.Check() {
		if ve.IsError() {
			return &deployerr.ConfigError{Field: ve.Field, Reason: ve.Message}
		}
	}
	return nil
}

// Check runs all deploy-time checks and returns errors and warnings.
func (c *Config) Check() []ValidationError {
	var out []ValidationError
	add := func(field, severity, format string, args ...any) {
		out = append(out, ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Severity: severity})
	}

	required := []struct {
		field string
		value string
	}{
		{EnvResourceGroup, c.ResourceGroup},
		{"LOCATION", c.Location},
		{"ENVIRONMENT_NAME", c.EnvironmentName},
		{"APP_NAME", c.AppName},
		{"IMAGE", c.Image},
		{"DB_NAME", c.DatabaseName},
		{"DB_USER", c.DatabaseUser},
	}
	for _, r := range required {
		if r.value == "" {
			add(r.field, SeverityError, "must not be empty")
		}
	}

	if c.DatabasePassword == "" {
		add(EnvDatabasePassword, SeverityError, "must not be empty")
	}
	if c.AuthEnabled && c.AuthPassword == "" {
		add(EnvAuthPassword, SeverityError, "required when authentication is enabled")
	}

	if c.CPU <= 0 {
		add("CPU", SeverityError, "must be greater than zero, got %g", c.CPU)
	}
	if !memoryPattern.MatchString(c.Memory) {
		add("MEMORY", SeverityError, "must be a quantity in Gi such as 1.0Gi, got %q", c.Memory)
	}
	if c.MinReplicas < 0 {
		add("MIN_REPLICAS", SeverityError, "must not be negative, got %d", c.MinReplicas)
	}
	if c.MaxReplicas < 1 {
		add("MAX_REPLICAS", SeverityError, "must be at least 1, got %d", c.MaxReplicas)
	}
	if c.MaxReplicas < c.MinReplicas {
		add("MAX_REPLICAS", SeverityError, "must not be lower than MIN_REPLICAS (%d < %d)", c.MaxReplicas, c.MinReplicas)
	}
	if c.TargetPort < 1 || c.TargetPort > 65535 {
		add("TARGET_PORT", SeverityError, "must be a valid port, got %d", c.TargetPort)
	}
	if c.DatabaseStorageGB < 32 {
		add("DB_STORAGE_GB", SeverityError, "must be at least 32, got %d", c.DatabaseStorageGB)
	}

	if c.AuthEnabled && c.AuthUsername == "" {
		add("AUTH_USERNAME", SeverityError, "required when authentication is enabled")
	}
	if !c.AuthEnabled && c.AuthPassword != "" {
		add(EnvAuthPassword, SeverityWarning, "set but authentication is disabled, it will not be used")
	}
	if c.DatabasePassword != "" && len(c.DatabasePassword) < 8 {
		add(EnvDatabasePassword, SeverityWarning, "shorter than 8 characters, Azure will likely reject it")
	}
	if (c.RegistryUsername == "") != (c.RegistryPassword == "") {
		add("REGISTRY_USERNAME", SeverityWarning, "registry username and password must be set together, pull credentials will be skipped")
	}

	return out
}

// Warnings returns only the warnings from Check.
func (c *Config) Warnings() []ValidationError {
	var out []ValidationError
	for _, ve := range c.Check() {
		if !ve.IsError() {
			out = append(out, ve)
		}
	}
	return out
}
