package plan

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Selection restricts which operations participate in planning and
// execution. Entries are operation display names or glob patterns
// (e.g. "Create *"). An empty selection means every registered operation.
type Selection struct {
	patterns []string
}

// NewSelection builds a selection from raw flag values. Blank entries are
// dropped.
func NewSelection(patterns []string) Selection {
	var cleaned []string
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return Selection{patterns: cleaned}
}

// Empty reports whether the selection includes everything.
func (s Selection) Empty() bool {
	return len(s.patterns) == 0
}

// Matches reports whether an operation name is selected.
func (s Selection) Matches(name string) bool {
	if s.Empty() {
		return true
	}
	for _, p := range s.patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Validate checks every pattern is well-formed and matches at least one
// known operation name, so a typo fails loudly instead of silently
// planning nothing.
func (s Selection) Validate(known []string) error {
	for _, p := range s.patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid operation pattern %q", p)
		}

		matched := false
		for _, name := range known {
			if ok, _ := doublestar.Match(p, name); ok {
				matched = true
				break
			}
		}
		if !matched {
			return fmt.Errorf("operation pattern %q matches nothing (known: %s)", p, strings.Join(known, ", "))
		}
	}
	return nil
}
