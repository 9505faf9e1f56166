package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/hay-kot/moment/pkg/executil"
)

// ErrClipboardUnsupported is returned when no system clipboard utility exists.
var ErrClipboardUnsupported = errors.New("system clipboard unsupported")

// Clipboard accepts plain-text writes.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// NewClipboard returns a clipboard that pipes text into command, or the
// system clipboard when command is empty.
func NewClipboard(command string, exec executil.Executor) Clipboard {
	if strings.TrimSpace(command) == "" {
		return SystemClipboard{}
	}
	return &CommandClipboard{command: command, exec: exec}
}

// SystemClipboard writes through the platform clipboard utilities.
type SystemClipboard struct{}

// WriteText implements Clipboard.
func (SystemClipboard) WriteText(_ context.Context, text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// CommandClipboard feeds text on stdin to a user-configured command.
type CommandClipboard struct {
	command string
	exec    executil.Executor
}

// WriteText implements Clipboard.
func (c *CommandClipboard) WriteText(ctx context.Context, text string) error {
	parts := strings.Fields(c.command)
	if len(parts) == 0 {
		return ErrClipboardUnsupported
	}

	if out, err := c.exec.RunInput(ctx, text, parts[0], parts[1:]...); err != nil {
		return fmt.Errorf("copy command: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
