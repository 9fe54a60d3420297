package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/fmc-tools/fmca/internal/core/workbook"
	"github.com/fmc-tools/fmca/internal/fmca"
	"github.com/fmc-tools/fmca/internal/store/jsonfile"
)

type MockCmd struct {
	flags *Flags
	app   *fmca.App

	// flags
	output string
	force  bool
}

// NewMockCmd creates a new mock command
func NewMockCmd(flags *Flags, app *fmca.App) *MockCmd {
	return &MockCmd{flags: flags, app: app}
}

// Register adds the mock command to the application
func (cmd *MockCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "mock",
		Usage:     "Write a sample workbook for trying the pipeline",
		UsageText: "fmca mock [-o workbook.json]",
		Description: `Writes a small workbook covering every registered operation. It has
a mix of ready and already-completed rows, so it exercises planning,
skipping, and dry runs end to end:

  fmca mock -o demo.json
  fmca run -f demo.json --dry-run`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "path to write the sample workbook",
				Value:       "workbook.json",
				Destination: &cmd.output,
			},
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "overwrite an existing file",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *MockCmd) run(ctx context.Context, c *cli.Command) error {
	if !cmd.force {
		if _, err := os.Stat(cmd.output); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", cmd.output)
		}
	}

	if err := jsonfile.NewWorkbookStore(cmd.output).Write(sampleWorkbook()); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Sample workbook written to %s\n", cmd.output)
	return nil
}

func sampleWorkbook() jsonfile.WorkbookFile {
	status := workbook.StatusColumn

	return jsonfile.WorkbookFile{
		Sheets: []jsonfile.SheetData{
			{
				Name: "Create Fail Modes",
				Columns: []string{
					"Functional System ID", "Functional System Name",
					"Fail Mode ID", "Fail Mode Name", "Fail Mode Description",
					"Comments", "Priority", "Severity", status,
				},
				Rows: []map[string]string{
					{
						"Functional System ID":   "FS-100",
						"Functional System Name": "Coolant Loop",
						"Fail Mode ID":           "FM-001",
						"Fail Mode Name":         "Pump cavitation",
						"Fail Mode Description":  "Pump loses prime under low inlet pressure",
						"Priority":               "High",
						status:                   "",
					},
					{
						"Functional System ID":   "FS-100",
						"Functional System Name": "Coolant Loop",
						"Fail Mode ID":           "FM-002",
						"Fail Mode Name":         "Seal leak",
						"Fail Mode Description":  "Shaft seal degrades and weeps coolant",
						status:                   "Completed",
					},
				},
			},
			{
				Name: "Create Causes",
				Columns: []string{
					"Fail Mode ID", "Cause ID", "Cause Name", "Cause Description",
					"Comments", "Probability", "Impact", status,
				},
				Rows: []map[string]string{
					{
						"Fail Mode ID":      "FM-001",
						"Cause ID":          "CA-001",
						"Cause Name":        "Clogged inlet strainer",
						"Cause Description": "Debris accumulation restricts inlet flow",
						"Probability":       "Medium",
						status:              "",
					},
				},
			},
			{
				Name: "Create Controls",
				Columns: []string{
					"Cause ID", "Control ID", "Control Name", "Control Description",
					"Control Type", "Comments", "Effectiveness", "Implementation Status", status,
				},
				Rows: []map[string]string{
					{
						"Cause ID":            "CA-001",
						"Control ID":          "CT-001",
						"Control Name":        "Strainer inspection interval",
						"Control Description": "Inspect and clean inlet strainer every 500 hours",
						"Control Type":        "Preventive",
						status:                "",
					},
				},
			},
			{
				Name: "Create Control Causes",
				Columns: []string{
					"Control ID", "Cause ID", "Comments", "Relationship Type", status,
				},
				Rows: []map[string]string{
					{
						"Control ID": "CT-001",
						"Cause ID":   "CA-001",
						status:       "",
					},
				},
			},
		},
	}
}
