package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/moment/internal/actions"
	"github.com/hay-kot/moment/internal/tui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{
		flags: flags,
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(_ context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	src, err := cmd.flags.Source()
	if err != nil {
		return err
	}

	handler := actions.NewHandler(
		actions.NewClipboard(cfg.Clipboard.Command, cmd.flags.Exec),
		actions.NewSharer(cfg.Share.Command, cmd.flags.Exec),
		cmd.flags.Logger.With().Str("component", "actions").Logger(),
	)

	m := tui.New(cfg, cmd.flags.NewController(), handler, src)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
