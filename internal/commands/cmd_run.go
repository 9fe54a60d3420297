package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fmc-tools/fmca/internal/core/logging"
	"github.com/fmc-tools/fmca/internal/core/styles"
	"github.com/fmc-tools/fmca/internal/fmca"
	"github.com/fmc-tools/fmca/internal/store/jsonfile"
	"github.com/fmc-tools/fmca/pkg/randid"
)

type RunCmd struct {
	flags *Flags
	app   *fmca.App

	// flags
	file   string
	ops    []string
	dryRun bool
	wwid   string
}

// NewRunCmd creates a new run command
func NewRunCmd(flags *Flags, app *fmca.App) *RunCmd {
	return &RunCmd{flags: flags, app: app}
}

// Register adds the run command to the application
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Execute planned operations and append the Change Log",
		UsageText: "fmca run -f workbook.json [--ops pattern]... [--dry-run] [--wwid id]",
		Description: `Validates the workbook, plans eligible rows, executes each rendered
command in order, and appends one Change Log entry per operation in
a single bulk write.

A row whose command fails is recorded as Failed and the run moves on
to the next row. The run aborts only when a command cannot be
started at all; rows not attempted are still recorded.

With --dry-run, commands are rendered and audited as Simulated but
never executed. The workbook file must be a regular file because the
ledger is written back to it; stdin is not accepted.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to the workbook JSON file",
				Required:    true,
				Destination: &cmd.file,
			},
			&cli.StringSliceFlag{
				Name:        "ops",
				Usage:       "operation name or glob pattern to include (repeatable)",
				Destination: &cmd.ops,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "render and audit commands without executing them",
				Destination: &cmd.dryRun,
			},
			&cli.StringFlag{
				Name:        "wwid",
				Usage:       "operator id recorded in the Change Log (defaults to config, then $USER)",
				Destination: &cmd.wwid,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	dryRun := cmd.app.Config.DryRun
	if c.IsSet("dry-run") {
		dryRun = cmd.dryRun
	}

	wwid := cmd.wwid
	if wwid == "" {
		wwid = cmd.app.Config.ResolveWWID()
	}

	runID := randid.Generate(6)
	logger := logging.Component("run").With().Str("run_id", runID).Logger()
	logger.Info().Str("file", cmd.file).Bool("dry_run", dryRun).Msg("starting run")

	summary, runErr := cmd.app.Service.Run(ctx, fmca.RunRequest{
		Store:  jsonfile.NewWorkbookStore(cmd.file),
		Ops:    cmd.ops,
		DryRun: dryRun,
		WWID:   wwid,
	})
	if summary == nil {
		return runErr
	}

	out := c.Root().Writer

	// Records map one-to-one onto results and already carry the display
	// form of the operation and status.
	for _, rec := range summary.Records {
		fmt.Fprintf(out, "%s  %s  %s\n", styles.Status(rec.Status), rec.Operation, rec.Details)
	}

	succeeded, failed, simulated := summary.Counts()

	fmt.Fprintln(out)
	if dryRun {
		fmt.Fprintf(out, "Dry run: %d simulated, %d skipped\n", simulated, summary.Skipped)
	} else {
		fmt.Fprintf(out, "Run complete: %d succeeded, %d failed, %d skipped\n", succeeded, failed, summary.Skipped)
	}

	if runErr != nil {
		logger.Error().Err(runErr).Msg("run finished with error")
		return runErr
	}

	// Per-row command failures are recorded in the ledger and reported
	// above; they do not fail the invocation.
	return nil
}
