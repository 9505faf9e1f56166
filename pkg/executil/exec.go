// Package executil provides shell execution utilities.
package executil

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Executor runs external commands.
type Executor interface {
	// Run executes a command and returns its combined output.
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
	// RunInput executes a command with stdin fed from input.
	RunInput(ctx context.Context, input string, cmd string, args ...string) ([]byte, error)
}

// RealExecutor calls actual shell commands.
type RealExecutor struct{}

// Run executes a command and returns its combined output.
func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, cmd, args...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("exec %s: %w", cmd, err)
	}
	return out, nil
}

// RunInput executes a command with stdin fed from input.
func (e *RealExecutor) RunInput(ctx context.Context, input string, cmd string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	c.Stdin = strings.NewReader(input)
	out, err := c.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("exec %s: %w", cmd, err)
	}
	return out, nil
}

// ExitCode extracts the process exit code from an error returned by an
// Executor. ok is false when err did not come from a finished process.
func ExitCode(err error) (code int, ok bool) {
	var exitErr interface{ ExitCode() int }
	if !errors.As(err, &exitErr) {
		return 0, false
	}
	return exitErr.ExitCode(), true
}
