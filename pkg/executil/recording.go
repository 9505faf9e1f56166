package executil

import (
	"context"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Cmd   string
	Args  []string
	Input string
}

// RecordingExecutor captures commands for testing.
// Configure Outputs and Errors maps to control return values.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	// Outputs maps command names to their output.
	Outputs map[string][]byte

	// Errors maps command names to their error.
	Errors map[string]error
}

// Run records the command and returns configured output/error.
func (e *RecordingExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return e.record("", cmd, args...)
}

// RunInput records the command with its stdin and returns configured output/error.
func (e *RecordingExecutor) RunInput(ctx context.Context, input string, cmd string, args ...string) ([]byte, error) {
	return e.record(input, cmd, args...)
}

func (e *RecordingExecutor) record(input, cmd string, args ...string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, RecordedCommand{
		Cmd:   cmd,
		Args:  args,
		Input: input,
	})

	var out []byte
	var err error

	if e.Outputs != nil {
		out = e.Outputs[cmd]
	}
	if e.Errors != nil {
		err = e.Errors[cmd]
	}

	return out, err
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}
