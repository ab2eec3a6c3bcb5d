// Package pipeline invokes the external banknote generation pipeline. The
// pipeline is an opaque collaborator: it is handed the identity string,
// populates images/<identity>/<denomination>/ with paired front/back SVGs,
// and exits 0 on success.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrTimeout is returned when the pipeline exceeds its wall-clock bound.
var ErrTimeout = errors.New("pipeline timed out")

// Result captures the outcome of one pipeline run.
type Result struct {
	ExitCode int
	Output   string // combined stdout/stderr, surfaced verbatim on failure
}

// Runner runs one generation attempt for an identity string.
type Runner interface {
	Run(ctx context.Context, identity string) (*Result, error)
}

// CommandRunner runs the pipeline as a subprocess.
type CommandRunner struct {
	Command string
	Args    []string // fixed args placed before the identity, e.g. ["--name"]
	Dir     string
}

// NewCommandRunner creates a runner for the given command line.
func NewCommandRunner(command string, args []string, dir string) *CommandRunner {
	return &CommandRunner{Command: command, Args: args, Dir: dir}
}

// Run executes the pipeline until it exits or the context deadline fires.
// A non-zero exit is not an error here; callers inspect Result.ExitCode.
func (r *CommandRunner) Run(ctx context.Context, identity string) (*Result, error) {
	args := append(append([]string{}, r.Args...), identity)
	cmd := exec.CommandContext(ctx, r.Command, args...)
	cmd.Dir = r.Dir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, ErrTimeout
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{ExitCode: exitErr.ExitCode(), Output: output.String()}, nil
		}
		return nil, fmt.Errorf("start pipeline: %w", err)
	}

	return &Result{ExitCode: 0, Output: output.String()}, nil
}
