// Package execute runs planned operations against the external CLI and
// classifies their outcomes.
package execute

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fmc-tools/fmca/internal/core/extract"
	"github.com/fmc-tools/fmca/internal/core/plan"
	"github.com/fmc-tools/fmca/pkg/executil"
)

// Status classifies one execution outcome.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailure   Status = "failure"
	StatusSimulated Status = "simulated"
)

// maxOutputLen caps stored CLI output so one chatty command cannot bloat
// the audit ledger.
const maxOutputLen = 2000

const truncationMarker = "...[truncated]"

// Result extends a planned operation with its outcome.
type Result struct {
	plan.Operation

	Status      Status
	GeneratedID string
	CLIOutput   string
	Timestamp   time.Time
}

// Executor runs planned operations sequentially through an injected runner.
// Order matters: command effects may depend on earlier rows.
type Executor struct {
	Runner executil.Runner
	Logger zerolog.Logger
	Now    func() time.Time // defaults to time.Now
}

func (e *Executor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Execute attempts every operation in list order. Per-row failures never
// abort the batch. A fatal condition (the external tool cannot be started
// at all) is recorded once and every remaining operation is marked failed
// without being attempted; the condition is also returned so callers can
// report the truncated batch. The result list always covers every planned
// operation. Cancellation is honored between operations.
func (e *Executor) Execute(ctx context.Context, ops []plan.Operation, dryRun bool) ([]Result, error) {
	results := make([]Result, 0, len(ops))

	var fatal error
	for _, op := range ops {
		if fatal == nil && ctx.Err() != nil {
			fatal = fmt.Errorf("canceled: %w", ctx.Err())
		}
		if fatal != nil {
			results = append(results, Result{
				Operation: op,
				Status:    StatusFailure,
				CLIOutput: truncate(fmt.Sprintf("not attempted: %s", fatal)),
				Timestamp: e.now(),
			})
			continue
		}

		if dryRun {
			e.Logger.Info().Str("operation", op.Operation).Int("row", op.Row).Msg("dry run, skipping execution")
			results = append(results, Result{
				Operation: op,
				Status:    StatusSimulated,
				Timestamp: e.now(),
			})
			continue
		}

		res, err := e.runOne(ctx, op)
		if err != nil {
			// The tool is unreachable; no point attempting further rows.
			fatal = err
			e.Logger.Error().Err(err).Str("operation", op.Operation).Int("row", op.Row).Msg("fatal execution error")
			results = append(results, Result{
				Operation: op,
				Status:    StatusFailure,
				CLIOutput: truncate(err.Error()),
				Timestamp: e.now(),
			})
			continue
		}

		results = append(results, res)
	}

	return results, fatal
}

func (e *Executor) runOne(ctx context.Context, op plan.Operation) (Result, error) {
	e.Logger.Info().Str("operation", op.Operation).Int("row", op.Row).Str("command", op.Command).Msg("executing")

	run, err := e.Runner.Run(ctx, op.Command)
	if err != nil {
		return Result{}, err
	}

	output := run.Stdout + run.Stderr
	if run.TimedOut {
		output = fmt.Sprintf("command timed out\n%s", output)
	}

	result := Result{
		Operation: op,
		CLIOutput: truncate(output),
		Timestamp: e.now(),
	}

	if run.ExitCode == 0 {
		result.Status = StatusSuccess
		result.GeneratedID = extract.ID(result.CLIOutput)
		e.Logger.Info().Str("operation", op.Operation).Int("row", op.Row).Str("generated_id", result.GeneratedID).Msg("command succeeded")
	} else {
		result.Status = StatusFailure
		e.Logger.Error().Str("operation", op.Operation).Int("row", op.Row).Int("exit_code", run.ExitCode).Msg("command failed")
	}

	return result, nil
}

func truncate(s string) string {
	if len(s) <= maxOutputLen {
		return s
	}
	return s[:maxOutputLen] + truncationMarker
}
