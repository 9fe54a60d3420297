// Package extract recovers generated identifiers from command output.
//
// Extraction is best effort: the external tool prints identifiers in
// free-form text, so a miss is informational, never an error. Callers must
// not let a missing identifier affect execution status.
package extract

import (
	"regexp"
	"strings"
)

// idShape matches the generated-identifier form TYPE-YYYYMMDD-SEQ,
// e.g. FM-20240115-0007.
var idShape = regexp.MustCompile(`\b[A-Z][A-Z0-9]{0,7}-\d{8}-\d{4,}\b`)

// marker locates the fallback cue words preceding an identifier.
var marker = regexp.MustCompile(`(?i)\b(?:id:|created)\s*:?\s*`)

// token matches an identifier-ish run containing at least one digit.
var token = regexp.MustCompile(`[A-Za-z0-9-]*\d[A-Za-z0-9-]*`)

// ID returns the first generated identifier found in output, or "" when no
// heuristic matches. The primary shape always wins over the marker fallback.
func ID(output string) string {
	if m := idShape.FindString(output); m != "" {
		return m
	}

	for _, line := range strings.Split(output, "\n") {
		loc := marker.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if tok := token.FindString(line[loc[1]:]); tok != "" {
			return tok
		}
	}

	return ""
}
