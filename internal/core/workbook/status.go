package workbook

import "strings"

// Status classifies a row's Agent Status marker.
type Status int

const (
	// StatusReady marks a row that has never been processed (blank marker).
	StatusReady Status = iota
	// StatusCompleted marks a row already applied to the external system.
	StatusCompleted
	// StatusFailed marks a row whose last attempt failed.
	StatusFailed
	// StatusInProgress marks a row another invocation claims to be working on.
	StatusInProgress
	// StatusUnrecognized marks any other non-empty value. Treated as not
	// ready so ambiguous state is never reprocessed.
	StatusUnrecognized
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusInProgress:
		return "in-progress"
	default:
		return "unrecognized"
	}
}

// Ready reports whether a row with this status is eligible for planning.
func (s Status) Ready() bool {
	return s == StatusReady
}

// ClassifyStatus maps the raw Agent Status cell text to a Status.
// Matching is case-insensitive and ignores surrounding whitespace.
func ClassifyStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return StatusReady
	case "completed", "success", "done":
		return StatusCompleted
	case "failed", "error":
		return StatusFailed
	case "processing":
		return StatusInProgress
	default:
		return StatusUnrecognized
	}
}
