package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"", StatusReady},
		{"   ", StatusReady},
		{"Completed", StatusCompleted},
		{"SUCCESS", StatusCompleted},
		{"done", StatusCompleted},
		{"Failed", StatusFailed},
		{"error", StatusFailed},
		{"Processing", StatusInProgress},
		{"retry maybe?", StatusUnrecognized},
		{"Pending", StatusUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStatus(tt.raw))
		})
	}
}

func TestStatus_Ready(t *testing.T) {
	assert.True(t, StatusReady.Ready())

	// Every non-blank marker, recognized or not, blocks replanning.
	for _, s := range []Status{StatusCompleted, StatusFailed, StatusInProgress, StatusUnrecognized} {
		assert.False(t, s.Ready(), s.String())
	}
}
