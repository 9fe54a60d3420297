// Package workbook holds the in-memory model of a loaded workbook.
//
// The core never touches the on-disk spreadsheet format; the storage
// collaborator hands it fully-loaded tables and consumes audit rows back.
package workbook

// StatusColumn is the designated per-row processing marker column.
const StatusColumn = "Agent Status"

// Row maps a column name to its scalar cell value. Empty cells are
// represented as empty strings. Rows are read-only to the pipeline.
type Row map[string]string

// Get returns the value of a column, or "" when the column is absent.
func (r Row) Get(column string) string {
	return r[column]
}

// Table is one sheet: named columns plus ordered data rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Workbook is an ordered collection of named tables.
type Workbook struct {
	sheets map[string]*Table
	order  []string
}

// New returns an empty workbook.
func New() *Workbook {
	return &Workbook{sheets: map[string]*Table{}}
}

// SetTable adds or replaces a sheet. Insertion order is preserved for
// first-time sheets.
func (w *Workbook) SetTable(name string, t *Table) {
	if _, ok := w.sheets[name]; !ok {
		w.order = append(w.order, name)
	}
	w.sheets[name] = t
}

// Table returns the named sheet, if present.
func (w *Workbook) Table(name string) (*Table, bool) {
	t, ok := w.sheets[name]
	return t, ok
}

// SheetNames returns sheet names in insertion order.
func (w *Workbook) SheetNames() []string {
	out := make([]string, len(w.order))
	copy(out, w.order)
	return out
}

// RowNumber converts a zero-based data row index to the spreadsheet's
// visible 1-based numbering, where the header occupies row 1.
func RowNumber(index int) int {
	return index + 2
}
