// Package validate checks workbook structure and content before planning.
package validate

import (
	"fmt"
	"strings"

	"github.com/fmc-tools/fmca/internal/core/registry"
	"github.com/fmc-tools/fmca/internal/core/workbook"
)

// Kind identifies a class of validation failure.
type Kind string

const (
	KindMissingSheet  Kind = "missing_sheet"
	KindMissingColumn Kind = "missing_column"
	KindIncompleteRow Kind = "incomplete_row"
)

// Error is one validation finding. Row is the visible spreadsheet row
// number; it is zero for sheet- and column-level findings.
type Error struct {
	Kind    Kind   `json:"kind"`
	Sheet   string `json:"sheet"`
	Row     int    `json:"row,omitempty"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

// Result aggregates every finding so the operator sees the full list in
// one pass.
type Result struct {
	Errors []Error `json:"errors"`
}

// Valid reports whether the workbook may be planned.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// FailedError wraps a failing Result so callers can map it to the
// validation exit code.
type FailedError struct {
	Result Result
}

func (e *FailedError) Error() string {
	msgs := make([]string, 0, len(e.Result.Errors))
	for _, ve := range e.Result.Errors {
		msgs = append(msgs, ve.Message)
	}
	return fmt.Sprintf("validation failed with %d issues: %s", len(msgs), strings.Join(msgs, "; "))
}

// Workbook validates the loaded tables against every registered operation,
// in registration order. It never mutates its inputs and never stops at the
// first finding. Extra columns are ignored.
func Workbook(wb *workbook.Workbook, reg *registry.Registry) Result {
	var res Result

	for _, def := range reg.All() {
		table, ok := wb.Table(def.Sheet)
		if !ok {
			res.Errors = append(res.Errors, Error{
				Kind:    KindMissingSheet,
				Sheet:   def.Sheet,
				Message: fmt.Sprintf("missing required sheet %q", def.Sheet),
			})
			continue
		}

		missingColumn := false
		for _, col := range append(append([]string{}, def.Required...), workbook.StatusColumn) {
			if table.HasColumn(col) {
				continue
			}
			missingColumn = true
			res.Errors = append(res.Errors, Error{
				Kind:    KindMissingColumn,
				Sheet:   def.Sheet,
				Column:  col,
				Message: fmt.Sprintf("sheet %q missing required column %q", def.Sheet, col),
			})
		}
		if missingColumn {
			// Row checks against an incomplete schema would only repeat
			// the column findings.
			continue
		}

		res.Errors = append(res.Errors, checkRows(def, table)...)
	}

	return res
}

// checkRows enforces all-or-nothing population of required columns.
// A fully blank row is a spacer, not an error.
func checkRows(def registry.Definition, table *workbook.Table) []Error {
	var errs []Error

	for i, row := range table.Rows {
		populated := 0
		firstMissing := ""
		for _, col := range def.Required {
			if strings.TrimSpace(row.Get(col)) != "" {
				populated++
			} else if firstMissing == "" {
				firstMissing = col
			}
		}

		if populated == 0 || populated == len(def.Required) {
			continue
		}

		errs = append(errs, Error{
			Kind:    KindIncompleteRow,
			Sheet:   def.Sheet,
			Row:     workbook.RowNumber(i),
			Column:  firstMissing,
			Message: fmt.Sprintf("sheet %q row %d is partially filled: missing %q", def.Sheet, workbook.RowNumber(i), firstMissing),
		})
	}

	return errs
}
