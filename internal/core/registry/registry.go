// Package registry defines workbook operations and the table that holds them.
package registry

import (
	"fmt"

	"github.com/fmc-tools/fmca/internal/core/workbook"
	"github.com/fmc-tools/fmca/pkg/tmpl"
)

// Definition describes one registered operation: which sheet it reads,
// which columns it needs, and how a row becomes an external CLI command.
type Definition struct {
	// Sheet is the workbook sheet this operation consumes. Unique per registry.
	Sheet string
	// Name is the display name used in plans, audit records, and selection.
	Name string
	// Required columns must be populated all-or-nothing per row.
	Required []string
	// Optional columns are carried into input data when present.
	Optional []string
	// Template is the command template rendered per row (see pkg/tmpl).
	Template string
}

// BuildCommand renders the operation's command for one row.
// Rendering fails if the template references a column the row lacks.
func (d Definition) BuildCommand(row workbook.Row) (string, error) {
	cmd, err := tmpl.Render(d.Template, row)
	if err != nil {
		return "", fmt.Errorf("build %s command: %w", d.Name, err)
	}
	return cmd, nil
}

// InputColumns returns the columns captured as input data, required first,
// in declaration order.
func (d Definition) InputColumns() []string {
	out := make([]string, 0, len(d.Required)+len(d.Optional))
	out = append(out, d.Required...)
	out = append(out, d.Optional...)
	return out
}

// DuplicateOperationError is returned when a sheet is registered twice.
type DuplicateOperationError struct {
	Sheet string
}

func (e *DuplicateOperationError) Error() string {
	return fmt.Sprintf("operation for sheet %q is already registered", e.Sheet)
}

// UnknownOperationError is returned when no operation covers a sheet.
type UnknownOperationError struct {
	Sheet string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("no operation registered for sheet %q", e.Sheet)
}

// Registry holds operation definitions keyed by sheet name. Iteration order
// is registration order so validation and planning stay deterministic.
type Registry struct {
	bySheet map[string]Definition
	order   []string
}

// New returns an empty registry. Tests construct a fresh one per case; the
// application builds one via Builtin at startup.
func New() *Registry {
	return &Registry{bySheet: map[string]Definition{}}
}

// Register adds a definition. Registering a sheet twice is a configuration
// error, never silently ignored.
func (r *Registry) Register(def Definition) error {
	if def.Sheet == "" || def.Name == "" {
		return fmt.Errorf("operation definition needs both sheet and name")
	}
	if _, ok := r.bySheet[def.Sheet]; ok {
		return &DuplicateOperationError{Sheet: def.Sheet}
	}

	r.bySheet[def.Sheet] = def
	r.order = append(r.order, def.Sheet)
	return nil
}

// Get returns the definition for a sheet.
func (r *Registry) Get(sheet string) (Definition, error) {
	def, ok := r.bySheet[sheet]
	if !ok {
		return Definition{}, &UnknownOperationError{Sheet: sheet}
	}
	return def, nil
}

// All returns the registered definitions in registration order.
func (r *Registry) All() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, sheet := range r.order {
		out = append(out, r.bySheet[sheet])
	}
	return out
}

// Names returns the operation display names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.order))
	for _, def := range r.All() {
		out = append(out, def.Name)
	}
	return out
}
