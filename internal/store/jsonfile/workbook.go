// Package jsonfile persists workbooks as JSON files.
//
// This is the storage collaborator: the pipeline core only ever sees the
// in-memory workbook model and hands audit rows back.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fmc-tools/fmca/internal/core/audit"
	"github.com/fmc-tools/fmca/internal/core/workbook"
)

// WorkbookFile is the root JSON structure stored on disk. Sheets are a
// list, not a map, so sheet order survives round trips.
type WorkbookFile struct {
	Sheets []SheetData `json:"sheets"`
}

// SheetData is one sheet's serialized form.
type SheetData struct {
	Name    string              `json:"name"`
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// Workbook converts the serialized form to the in-memory model.
// Cell values are trimmed of surrounding whitespace on the way in.
func (wf WorkbookFile) Workbook() *workbook.Workbook {
	wb := workbook.New()
	for _, sheet := range wf.Sheets {
		table := &workbook.Table{Columns: sheet.Columns}
		for _, raw := range sheet.Rows {
			row := workbook.Row{}
			for col, val := range raw {
				row[col] = strings.TrimSpace(val)
			}
			table.Rows = append(table.Rows, row)
		}
		wb.SetTable(sheet.Name, table)
	}
	return wb
}

// WorkbookStore reads and writes a workbook JSON file.
type WorkbookStore struct {
	path string
	mu   sync.Mutex
}

// NewWorkbookStore creates a store backed by the given path.
func NewWorkbookStore(path string) *WorkbookStore {
	return &WorkbookStore{path: path}
}

// Path returns the backing file path.
func (s *WorkbookStore) Path() string {
	return s.path
}

// Load reads the workbook from disk.
func (s *WorkbookStore) Load() (*workbook.Workbook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	return file.Workbook(), nil
}

// Write replaces the file contents with the given workbook data.
func (s *WorkbookStore) Write(wf WorkbookFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(wf)
}

// AppendAudit appends audit records to the Change Log sheet in one bulk
// write, creating the sheet with its headers when absent. Existing rows are
// never touched: the ledger only grows.
func (s *WorkbookStore) AppendAudit(records []audit.Record) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	idx := -1
	for i, sheet := range file.Sheets {
		if sheet.Name == audit.Sheet {
			idx = i
			break
		}
	}
	if idx == -1 {
		file.Sheets = append(file.Sheets, SheetData{
			Name:    audit.Sheet,
			Columns: append([]string{}, audit.Columns...),
		})
		idx = len(file.Sheets) - 1
	}

	for _, rec := range records {
		file.Sheets[idx].Rows = append(file.Sheets[idx].Rows, rec.Row())
	}

	return s.save(file)
}

// load reads the workbook file from disk.
func (s *WorkbookStore) load() (WorkbookFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return WorkbookFile{}, fmt.Errorf("read workbook: %w", err)
	}

	var file WorkbookFile
	if err := json.Unmarshal(data, &file); err != nil {
		return WorkbookFile{}, fmt.Errorf("parse workbook: %w", err)
	}

	return file, nil
}

// save writes the workbook file to disk atomically.
func (s *WorkbookStore) save(file WorkbookFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
