package executil

import (
	"context"
	"sync"
)

// RecordingRunner captures commands for testing.
// Configure Results and Errs to control return values per command string;
// unknown commands return the Default result.
type RecordingRunner struct {
	mu       sync.Mutex
	Commands []string

	// Results maps exact command strings to their result.
	Results map[string]Result

	// Errs maps exact command strings to a start error.
	Errs map[string]error

	// Default is returned for commands not present in Results.
	Default Result
}

// Run records the command and returns the configured result/error.
func (r *RecordingRunner) Run(ctx context.Context, command string) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Commands = append(r.Commands, command)

	if r.Errs != nil {
		if err, ok := r.Errs[command]; ok {
			return Result{}, err
		}
	}
	if r.Results != nil {
		if res, ok := r.Results[command]; ok {
			return res, nil
		}
	}
	return r.Default, nil
}

// Reset clears recorded commands.
func (r *RecordingRunner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Commands = nil
}
