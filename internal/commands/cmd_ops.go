package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/fmc-tools/fmca/internal/fmca"
	"github.com/fmc-tools/fmca/pkg/iojson"
)

type OpsCmd struct {
	flags *Flags
	app   *fmca.App

	// flags
	jsonOutput bool
}

// NewOpsCmd creates a new ops command
func NewOpsCmd(flags *Flags, app *fmca.App) *OpsCmd {
	return &OpsCmd{flags: flags, app: app}
}

// Register adds the ops command to the application
func (cmd *OpsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ops",
		Usage:     "List registered operations",
		UsageText: "fmca ops [--json]",
		Description: `Displays a table of the registered operations with their source
sheet and required and optional columns.`,
		Flags: []cli.Flag{
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

// opInfo is the JSON output format for fmca ops --json.
type opInfo struct {
	Name     string   `json:"name"`
	Sheet    string   `json:"sheet"`
	Required []string `json:"required"`
	Optional []string `json:"optional"`
}

func (cmd *OpsCmd) run(ctx context.Context, c *cli.Command) error {
	defs := cmd.app.Service.Registry().All()
	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, def := range defs {
			info := opInfo{
				Name:     def.Name,
				Sheet:    def.Sheet,
				Required: def.Required,
				Optional: def.Optional,
			}
			if err := iojson.WriteLine(out, info); err != nil {
				return fmt.Errorf("encode operation: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "OPERATION\tSHEET\tREQUIRED\tOPTIONAL")

	for _, def := range defs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			def.Name,
			def.Sheet,
			strings.Join(def.Required, ", "),
			strings.Join(def.Optional, ", "),
		)
	}

	return w.Flush()
}
