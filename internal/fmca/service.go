// Package fmca wires the pipeline stages into operator-facing workflows.
package fmca

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fmc-tools/fmca/internal/core/audit"
	"github.com/fmc-tools/fmca/internal/core/config"
	"github.com/fmc-tools/fmca/internal/core/execute"
	"github.com/fmc-tools/fmca/internal/core/plan"
	"github.com/fmc-tools/fmca/internal/core/registry"
	"github.com/fmc-tools/fmca/internal/core/validate"
	"github.com/fmc-tools/fmca/internal/core/workbook"
	"github.com/fmc-tools/fmca/internal/store/jsonfile"
	"github.com/fmc-tools/fmca/pkg/executil"
)

// AuditWriteError reports a failed audit append. It is distinct from
// execution errors because the underlying commands may have already taken
// effect; the computed results are preserved on the summary so only the
// audit step needs retrying.
type AuditWriteError struct {
	Err error
}

func (e *AuditWriteError) Error() string {
	return fmt.Sprintf("append audit log: %s (execution results are preserved)", e.Err)
}

func (e *AuditWriteError) Unwrap() error {
	return e.Err
}

// Service orchestrates validate, plan, execute, and audit for the commands.
type Service struct {
	reg    *registry.Registry
	cfg    *config.Config
	runner executil.Runner
	logger zerolog.Logger
}

// NewService creates a service around a registry, config, and command runner.
func NewService(reg *registry.Registry, cfg *config.Config, runner executil.Runner, logger zerolog.Logger) *Service {
	return &Service{reg: reg, cfg: cfg, runner: runner, logger: logger}
}

// Registry exposes the operation catalog for introspection commands.
func (s *Service) Registry() *registry.Registry {
	return s.reg
}

// Validate checks a workbook and returns the aggregated findings.
func (s *Service) Validate(wb *workbook.Workbook) validate.Result {
	return validate.Workbook(wb, s.reg)
}

// BuildPlan validates the workbook and produces the plan document plus the
// count of rows skipped for a non-ready Agent Status. A failing validation
// surfaces as *validate.FailedError and nothing is planned.
func (s *Service) BuildPlan(wb *workbook.Workbook, ops []string) (plan.Document, int, error) {
	sel := plan.NewSelection(ops)
	if err := sel.Validate(s.reg.Names()); err != nil {
		return plan.Document{}, 0, err
	}

	vres := s.Validate(wb)
	if !vres.Valid() {
		s.logger.Error().Int("issues", len(vres.Errors)).Msg("validation failed")
		return plan.Document{}, 0, &validate.FailedError{Result: vres}
	}

	planned, skipped, err := plan.Plan(wb, s.reg, sel, vres)
	if err != nil {
		return plan.Document{}, 0, err
	}

	s.logger.Info().Int("planned", len(planned)).Int("skipped", skipped).Msg("plan built")
	return plan.Document{Operations: planned}, skipped, nil
}

// RunRequest describes one run-mode invocation.
type RunRequest struct {
	Store  *jsonfile.WorkbookStore
	Ops    []string
	DryRun bool
	WWID   string
}

// RunSummary is the outcome of a run-mode invocation.
type RunSummary struct {
	Results []execute.Result
	Records []audit.Record
	Skipped int
}

// Counts tallies results by status.
func (r *RunSummary) Counts() (succeeded, failed, simulated int) {
	for _, res := range r.Results {
		switch res.Status {
		case execute.StatusSuccess:
			succeeded++
		case execute.StatusFailure:
			failed++
		case execute.StatusSimulated:
			simulated++
		}
	}
	return
}

// Run loads the workbook, plans, executes, and appends the audit ledger as
// one bulk write. On an audit write failure the summary still carries the
// computed results and records; the error is an *AuditWriteError.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunSummary, error) {
	wb, err := req.Store.Load()
	if err != nil {
		return nil, err
	}

	doc, skipped, err := s.BuildPlan(wb, req.Ops)
	if err != nil {
		return nil, err
	}

	exec := &execute.Executor{
		Runner: s.runner,
		Logger: s.logger.With().Str("cmp", "executor").Logger(),
	}
	results, fatal := exec.Execute(ctx, doc.Operations, req.DryRun)

	summary := &RunSummary{
		Results: results,
		Records: audit.Build(results, req.WWID),
		Skipped: skipped,
	}

	// The ledger is appended even after a fatal abort: every attempted and
	// not-attempted row keeps its explained record.
	if err := req.Store.AppendAudit(summary.Records); err != nil {
		return summary, &AuditWriteError{Err: err}
	}
	if fatal != nil {
		return summary, fmt.Errorf("execution aborted: %w", fatal)
	}

	s.logger.Info().
		Int("planned", len(doc.Operations)).
		Int("skipped", skipped).
		Int("audited", len(summary.Records)).
		Bool("dry_run", req.DryRun).
		Msg("run complete")

	return summary, nil
}
