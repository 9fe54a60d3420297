package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/fmc-tools/fmca/internal/fmca"
	"github.com/fmc-tools/fmca/internal/store/jsonfile"
	"github.com/fmc-tools/fmca/pkg/iojson"
)

type PlanCmd struct {
	flags *Flags
	app   *fmca.App
	fr    *iojson.FileReader[jsonfile.WorkbookFile]

	ops    []string
	output string
}

// NewPlanCmd creates a new plan command
func NewPlanCmd(flags *Flags, app *fmca.App) *PlanCmd {
	return &PlanCmd{
		flags: flags,
		app:   app,
		fr:    &iojson.FileReader[jsonfile.WorkbookFile]{},
	}
}

// Register adds the plan command to the application
func (cmd *PlanCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "plan",
		Usage:     "Build the execution plan without side effects",
		UsageText: "fmca plan -f workbook.json [--ops pattern]... [-o plan.json]",
		Description: `Validates the workbook, then renders one command per eligible row
and emits the plan document as JSON. Nothing is executed and the
Change Log is never touched.

Rows are eligible when their Agent Status is blank; rows marked
Completed, Failed, Processing, or anything unrecognized are skipped.

The --ops flag restricts planning to matching operation names and
accepts glob patterns:

  fmca plan -f workbook.json --ops 'Create Fail Mode' --ops 'Create Control*'`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.StringSliceFlag{
				Name:        "ops",
				Usage:       "operation name or glob pattern to include (repeatable)",
				Destination: &cmd.ops,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write the plan to a file instead of stdout",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PlanCmd) run(ctx context.Context, c *cli.Command) error {
	input, err := cmd.fr.Read()
	if err != nil {
		return fmt.Errorf("read workbook: %w", err)
	}

	doc, skipped, err := cmd.app.Service.BuildPlan(input.Workbook(), cmd.ops)
	if err != nil {
		return err
	}

	if cmd.output != "" {
		bits, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
		if err := os.WriteFile(cmd.output, bits, 0o644); err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
		fmt.Fprintf(c.Root().Writer, "Plan written to %s (%d operations, %d rows skipped)\n", cmd.output, len(doc.Operations), skipped)
		return nil
	}

	return iojson.Write(doc)
}
