// Package tmpl renders command templates for the external CLI.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// shellQuote returns a shell-safe quoted string. It wraps the string in single
// quotes and escapes any existing single quotes using the '\" technique.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	// Replace ' with '\'' (end quote, escaped quote, start quote)
	escaped := strings.ReplaceAll(s, "'", `'\''`)
	return "'" + escaped + "'"
}

// field looks up a named column in a row map. Unlike the builtin index
// function it fails the render when the column is absent, so a rendered
// command can never leave an unsubstituted value behind.
func field(row map[string]string, name string) (string, error) {
	v, ok := row[name]
	if !ok {
		return "", fmt.Errorf("no value for column %q", name)
	}
	return v, nil
}

// toolPath holds the configured external CLI path, set once at startup via
// SetTool.
var toolPath string

// SetTool registers the external CLI executable used by the {{ im }}
// template function. Call once at startup after config load.
func SetTool(path string) {
	toolPath = path
}

func tool() string {
	if toolPath != "" {
		return toolPath
	}
	return "im"
}

var funcs = template.FuncMap{
	"shq":   shellQuote,
	"field": field,
	"join":  strings.Join,
	"im":    tool,
}

// Render executes a Go template string against a row's column values.
// Returns an error if the template is invalid or references a missing column.
//
// Available template functions:
//   - shq: Shell-quote a string for safe use in shell commands
//   - field: Look up a column value, erroring if the column is absent
//   - join: Join string slice with separator
//   - im: Path of the external CLI executable
func Render(tmpl string, row map[string]string) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, row); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
