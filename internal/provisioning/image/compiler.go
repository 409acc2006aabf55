package image

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/imamik/acadeploy/internal/deployerr"
	"github.com/imamik/acadeploy/internal/util/prerequisites"
)

// Compiler compiles the application in dir before it is packaged.
type Compiler interface {
	Compile(ctx context.Context, dir, command string) error
}

// ExecCompiler runs the build command through sh in the source directory.
type ExecCompiler struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecCompiler creates a compiler streaming the command output to w.
func NewExecCompiler(w io.Writer) *ExecCompiler {
	return &ExecCompiler{Stdout: w, Stderr: w}
}

// Compile runs command in dir. A missing build tool is a ConfigError.
func (c *ExecCompiler) Compile(ctx context.Context, dir, command string) error {
	if res := prerequisites.CheckForBuild(command); res.HasErrors() {
		return &deployerr.ConfigError{Field: "BUILD_COMMAND", Reason: "build tool not available", Err: res.Error()}
	}

	// #nosec G204 - the command is operator configuration
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build command %q failed: %w", command, err)
	}
	return nil
}
