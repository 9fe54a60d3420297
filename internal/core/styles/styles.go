// Package styles centralizes terminal styling for human-readable output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	success = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failure = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warning = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	muted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func Success(s string) string { return success.Render(s) }
func Failure(s string) string { return failure.Render(s) }
func Warning(s string) string { return warning.Render(s) }
func Muted(s string) string   { return muted.Render(s) }

// Status styles an execution status display string.
func Status(s string) string {
	switch s {
	case "Success":
		return Success(s)
	case "Failed":
		return Failure(s)
	case "Simulated":
		return Muted(s)
	default:
		return s
	}
}
