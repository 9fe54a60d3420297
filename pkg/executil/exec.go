// Package executil provides shell execution utilities.
package executil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Result holds the outcome of one external command invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
}

// Runner runs a single shell command and reports its outcome.
//
// A non-zero exit code is not an error: Run returns an error only when the
// process could not be started at all, which callers treat as a fatal
// condition for the remainder of a batch.
type Runner interface {
	Run(ctx context.Context, command string) (Result, error)
}

// ShellRunner executes commands through `sh -c` with a per-command timeout.
// A zero Timeout means no limit.
type ShellRunner struct {
	Timeout time.Duration
}

// Run executes the command and captures stdout and stderr separately.
// A timeout surfaces as a Result with TimedOut set and a -1 exit code,
// not as an error.
func (r *ShellRunner) Run(ctx context.Context, command string) (Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, "sh", "-c", command)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()

	res := Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err == nil {
		return res, nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		res.ExitCode = -1
		res.TimedOut = true
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	// The process never started (missing shell, permission problem).
	return res, fmt.Errorf("start command: %w", err)
}
