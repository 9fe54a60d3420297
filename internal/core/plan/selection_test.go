package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_Matches(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		op       string
		want     bool
	}{
		{"empty selects everything", nil, "Create Fail Mode", true},
		{"exact match", []string{"Create Cause"}, "Create Cause", true},
		{"exact mismatch", []string{"Create Cause"}, "Create Control", false},
		{"glob match", []string{"Create Control*"}, "Create Control Cause", true},
		{"blank entries ignored", []string{" ", ""}, "Create Cause", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelection(tt.patterns)
			assert.Equal(t, tt.want, sel.Matches(tt.op))
		})
	}
}

func TestSelection_Validate(t *testing.T) {
	known := []string{"Create Fail Mode", "Create Cause"}

	assert.NoError(t, NewSelection(nil).Validate(known))
	assert.NoError(t, NewSelection([]string{"Create *"}).Validate(known))

	err := NewSelection([]string{"Create Failmode"}).Validate(known)
	assert.ErrorContains(t, err, "matches nothing")

	err = NewSelection([]string{"[bad"}).Validate(known)
	assert.ErrorContains(t, err, "invalid operation pattern")
}
