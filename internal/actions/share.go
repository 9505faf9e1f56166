package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/moment/pkg/executil"
	"github.com/hay-kot/moment/pkg/tmpl"
)

// Sentinel errors for share operations.
var (
	ErrShareUnavailable = errors.New("share capability unavailable")
	ErrShareCanceled    = errors.New("share canceled")
)

// exitCanceled is the status a share command uses to signal that the user
// dismissed it (128 + SIGINT).
const exitCanceled = 130

// Payload is what gets shared.
type Payload struct {
	Title string
	Text  string
	URL   string
}

// Sharer hands a payload to the platform share target.
type Sharer interface {
	Share(ctx context.Context, p Payload) error
}

// NewSharer returns a sharer running the command template, or one that is
// always unavailable when the template is empty.
func NewSharer(template string, exec executil.Executor) Sharer {
	if strings.TrimSpace(template) == "" {
		return UnavailableSharer{}
	}
	return &CommandSharer{template: template, exec: exec}
}

// UnavailableSharer is used when the host has no share target.
type UnavailableSharer struct{}

// Share implements Sharer.
func (UnavailableSharer) Share(context.Context, Payload) error {
	return ErrShareUnavailable
}

// CommandSharer renders a shell command from a template and runs it with
// the payload text on stdin.
type CommandSharer struct {
	template string
	exec     executil.Executor
}

// Share implements Sharer. A canceled context or an exit status of 130 is
// reported as ErrShareCanceled.
func (s *CommandSharer) Share(ctx context.Context, p Payload) error {
	rendered, err := tmpl.Render(s.template, p)
	if err != nil {
		return fmt.Errorf("render share command: %w", err)
	}

	out, err := s.exec.RunInput(ctx, p.Text, "sh", "-c", rendered)
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrShareCanceled, ctx.Err())
	}
	if code, ok := executil.ExitCode(err); ok && code == exitCanceled {
		return ErrShareCanceled
	}

	return fmt.Errorf("share command: %w: %s", err, strings.TrimSpace(string(out)))
}
