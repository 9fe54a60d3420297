// Package plan turns validated workbook rows into side-effect-free command
// descriptions.
package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fmc-tools/fmca/internal/core/registry"
	"github.com/fmc-tools/fmca/internal/core/validate"
	"github.com/fmc-tools/fmca/internal/core/workbook"
)

// ErrNotValidated is returned when planning is attempted over tables that
// have not passed validation. Planning over invalid tables is undefined.
var ErrNotValidated = errors.New("workbook has not passed validation")

// FieldValue is one column/value pair of an operation's input data.
type FieldValue struct {
	Column string
	Value  string
}

// InputData is the ordered set of field values a command was built from.
// It marshals as a JSON object whose key order follows the operation's
// column declaration order, keeping the plan document contract stable.
type InputData []FieldValue

// MarshalJSON emits an object preserving column order.
func (d InputData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fv := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(fv.Column)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(fv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value for a column, or "" when absent.
func (d InputData) Get(column string) string {
	for _, fv := range d {
		if fv.Column == column {
			return fv.Value
		}
	}
	return ""
}

// Operation is a fully rendered, not-yet-executed command plus its
// provenance. It is ephemeral: produced once per eligible row per
// invocation and never persisted by the pipeline itself.
type Operation struct {
	Operation string    `json:"operation"`
	Sheet     string    `json:"sheet"`
	Row       int       `json:"row"`
	Command   string    `json:"command"`
	InputData InputData `json:"input_data"`
}

// Document is the machine-readable plan output consumed by review steps.
type Document struct {
	Operations []Operation `json:"operations"`
}

// Plan produces one Operation per eligible row of every selected
// operation's sheet, in registration then row order. Rows whose Agent
// Status is not ready are counted in skipped. The caller must have
// validated first; vres guards that precondition.
func Plan(wb *workbook.Workbook, reg *registry.Registry, sel Selection, vres validate.Result) ([]Operation, int, error) {
	if !vres.Valid() {
		return nil, 0, ErrNotValidated
	}

	var (
		ops     []Operation
		skipped int
	)

	for _, def := range reg.All() {
		if !sel.Matches(def.Name) {
			continue
		}

		table, ok := wb.Table(def.Sheet)
		if !ok {
			// Validation runs over every registered operation, so a
			// selected sheet can only be absent if vres is stale.
			return nil, 0, fmt.Errorf("sheet %q vanished after validation: %w", def.Sheet, ErrNotValidated)
		}

		for i, row := range table.Rows {
			status := workbook.ClassifyStatus(row.Get(workbook.StatusColumn))
			if !status.Ready() {
				skipped++
				continue
			}
			if blankRow(def, row) {
				continue
			}

			command, err := def.BuildCommand(row)
			if err != nil {
				return nil, 0, fmt.Errorf("row %d: %w", workbook.RowNumber(i), err)
			}

			ops = append(ops, Operation{
				Operation: def.Name,
				Sheet:     def.Sheet,
				Row:       workbook.RowNumber(i),
				Command:   command,
				InputData: captureInput(def, table, row),
			})
		}
	}

	return ops, skipped, nil
}

// blankRow reports whether every required column is empty. Blank rows are
// spacers and plan nothing.
func blankRow(def registry.Definition, row workbook.Row) bool {
	for _, col := range def.Required {
		if strings.TrimSpace(row.Get(col)) != "" {
			return false
		}
	}
	return true
}

// captureInput records required values first, then any optional columns
// the sheet actually declares.
func captureInput(def registry.Definition, table *workbook.Table, row workbook.Row) InputData {
	data := make(InputData, 0, len(def.Required)+len(def.Optional))
	for _, col := range def.Required {
		data = append(data, FieldValue{Column: col, Value: row.Get(col)})
	}
	for _, col := range def.Optional {
		if table.HasColumn(col) {
			data = append(data, FieldValue{Column: col, Value: row.Get(col)})
		}
	}
	return data
}
