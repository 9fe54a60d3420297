package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/fmc-tools/fmca/internal/core/styles"
	"github.com/fmc-tools/fmca/internal/core/validate"
	"github.com/fmc-tools/fmca/internal/fmca"
	"github.com/fmc-tools/fmca/internal/store/jsonfile"
	"github.com/fmc-tools/fmca/pkg/iojson"
)

type ValidateCmd struct {
	flags *Flags
	app   *fmca.App
	fr    *iojson.FileReader[jsonfile.WorkbookFile]

	jsonOutput bool
}

// NewValidateCmd creates a new validate command
func NewValidateCmd(flags *Flags, app *fmca.App) *ValidateCmd {
	return &ValidateCmd{
		flags: flags,
		app:   app,
		fr:    &iojson.FileReader[jsonfile.WorkbookFile]{},
	}
}

// Register adds the validate command to the application
func (cmd *ValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "validate",
		Usage:     "Check workbook structure and content",
		UsageText: "fmca validate -f workbook.json [--json]",
		Description: `Checks every registered operation's sheet for presence, required
columns, and row-level all-or-nothing population. All findings are
reported in one pass; any finding blocks planning and execution.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output findings as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ValidateCmd) run(ctx context.Context, c *cli.Command) error {
	input, err := cmd.fr.Read()
	if err != nil {
		return fmt.Errorf("read workbook: %w", err)
	}

	res := cmd.app.Service.Validate(input.Workbook())

	if cmd.jsonOutput {
		if err := iojson.Write(res); err != nil {
			return err
		}
		if !res.Valid() {
			return &validate.FailedError{Result: res}
		}
		return nil
	}

	if !res.Valid() {
		return &validate.FailedError{Result: res}
	}

	fmt.Fprintln(c.Root().Writer, styles.Success("workbook is valid"))
	return nil
}
