package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/fmc-tools/fmca/internal/core/audit"
	"github.com/fmc-tools/fmca/internal/fmca"
	"github.com/fmc-tools/fmca/internal/store/jsonfile"
	"github.com/fmc-tools/fmca/pkg/iojson"
)

type LogCmd struct {
	flags *Flags
	app   *fmca.App

	// flags
	file       string
	limit      int
	jsonOutput bool
}

// NewLogCmd creates a new log command
func NewLogCmd(flags *Flags, app *fmca.App) *LogCmd {
	return &LogCmd{flags: flags, app: app}
}

// Register adds the log command to the application
func (cmd *LogCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "log",
		Usage:     "Show recent Change Log entries",
		UsageText: "fmca log -f workbook.json [-n count] [--json]",
		Description: `Displays the most recent entries of the workbook's Change Log sheet,
newest last. The ledger is read-only here; entries are only ever
appended by run mode.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to the workbook JSON file",
				Required:    true,
				Destination: &cmd.file,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "number of entries to show",
				Value:       10,
				Destination: &cmd.limit,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LogCmd) run(ctx context.Context, c *cli.Command) error {
	wb, err := jsonfile.NewWorkbookStore(cmd.file).Load()
	if err != nil {
		return err
	}

	table, ok := wb.Table(audit.Sheet)
	if !ok || len(table.Rows) == 0 {
		fmt.Fprintln(os.Stderr, "No Change Log entries found")
		return nil
	}

	rows := table.Rows
	if cmd.limit > 0 && len(rows) > cmd.limit {
		rows = rows[len(rows)-cmd.limit:]
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, row := range rows {
			rec := audit.Record{
				Timestamp: row.Get("Timestamp"),
				WWID:      row.Get("WWID"),
				Operation: row.Get("Operation"),
				Status:    row.Get("Status"),
				Details:   row.Get("Details"),
				CLIOutput: row.Get("CLI Output"),
			}
			if err := iojson.WriteLine(out, rec); err != nil {
				return fmt.Errorf("encode entry: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIMESTAMP\tWWID\tOPERATION\tSTATUS\tDETAILS")

	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			row.Get("Timestamp"),
			row.Get("WWID"),
			row.Get("Operation"),
			row.Get("Status"),
			row.Get("Details"),
		)
	}

	return w.Flush()
}
