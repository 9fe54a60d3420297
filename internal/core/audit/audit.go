// Package audit turns execution results into the append-only Change Log
// ledger.
package audit

import (
	"fmt"

	"github.com/fmc-tools/fmca/internal/core/execute"
	"github.com/fmc-tools/fmca/internal/core/workbook"
)

// Sheet is the ledger's sheet name within the workbook.
const Sheet = "Change Log"

// timeLayout matches the timestamp format operators see in the sheet.
const timeLayout = "2006-01-02 15:04:05"

// Columns is the ledger schema, in column order. The storage collaborator
// writes these headers when creating the sheet.
var Columns = []string{"Timestamp", "WWID", "Operation", "Status", "Details", "CLI Output"}

// Record is one immutable ledger entry. Records are only ever appended;
// their order is the historical order of attempts.
type Record struct {
	Timestamp string `json:"timestamp"`
	WWID      string `json:"wwid"`
	Operation string `json:"operation"`
	Status    string `json:"status"`
	Details   string `json:"details"`
	CLIOutput string `json:"cli_output"`
}

// Row converts the record to a workbook row under the ledger schema.
func (r Record) Row() workbook.Row {
	return workbook.Row{
		"Timestamp":  r.Timestamp,
		"WWID":       r.WWID,
		"Operation":  r.Operation,
		"Status":     r.Status,
		"Details":    r.Details,
		"CLI Output": r.CLIOutput,
	}
}

// Build maps execution results one-to-one onto audit records, preserving
// order. Nothing is merged, reordered, or deduplicated: in run mode every
// attempt — success, failure, or dry-run simulation — leaves a trace.
func Build(results []execute.Result, wwid string) []Record {
	records := make([]Record, 0, len(results))
	for _, res := range results {
		records = append(records, Record{
			Timestamp: res.Timestamp.Format(timeLayout),
			WWID:      wwid,
			Operation: fmt.Sprintf("%s - Row %d", res.Operation.Operation, res.Row),
			Status:    displayStatus(res.Status),
			Details:   details(res),
			CLIOutput: res.CLIOutput,
		})
	}
	return records
}

func displayStatus(s execute.Status) string {
	switch s {
	case execute.StatusSuccess:
		return "Success"
	case execute.StatusFailure:
		return "Failed"
	case execute.StatusSimulated:
		return "Simulated"
	default:
		return string(s)
	}
}

func details(res execute.Result) string {
	if res.GeneratedID != "" {
		return fmt.Sprintf("ID: %s", res.GeneratedID)
	}
	if res.Status == execute.StatusSimulated {
		return "Dry run"
	}
	return "No ID extracted"
}
