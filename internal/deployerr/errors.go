// Package deployerr defines the error kinds a deployment run can fail with
// and maps them to process exit codes.
//
// Each kind wraps its cause so callers can match with errors.As and still
// reach the underlying SDK or exec error with errors.Is.
package deployerr

import (
	"errors"
	"fmt"
)

// Exit codes returned by the acadeploy binary.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitConfig    = 2
	ExitBuild     = 3
	ExitPublish   = 4
	ExitProvision = 5
)

// ConfigError reports a missing or invalid configuration value, or a
// missing local prerequisite detected before any external call.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// BuildError reports a failed local artifact build.
type BuildError struct {
	Phase string // compile, package or verify
	Image string
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build of %s failed during %s: %v", e.Image, e.Phase, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// PublishError reports a failed push of a built image to a remote registry.
type PublishError struct {
	Image string
	Err   error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish %s: %v", e.Image, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// ProvisionError reports a failed check, create or update of a cloud
// resource. Kind is the resource kind the sequencer was working on.
type ProvisionError struct {
	Kind string
	Name string
	Err  error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("failed to provision %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *ProvisionError) Unwrap() error { return e.Err }

// TeardownStepError reports one failed teardown step. Teardown collects
// these and keeps going.
type TeardownStepError struct {
	Kind string
	Name string
	Err  error
}

func (e *TeardownStepError) Error() string {
	return fmt.Sprintf("failed to delete %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *TeardownStepError) Unwrap() error { return e.Err }

// ExitCode maps an error returned from a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		configErr    *ConfigError
		buildErr     *BuildError
		publishErr   *PublishError
		provisionErr *ProvisionError
	)
	switch {
	case errors.As(err, &configErr):
		return ExitConfig
	case errors.As(err, &buildErr):
		return ExitBuild
	case errors.As(err, &publishErr):
		return ExitPublish
	case errors.As(err, &provisionErr):
		return ExitProvision
	default:
		return ExitFailure
	}
}

// IsConfig reports whether err is or wraps a ConfigError.
func IsConfig(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// AsProvision returns the ProvisionError wrapped in err, if any.
func AsProvision(err error) (*ProvisionError, bool) {
	var target *ProvisionError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
