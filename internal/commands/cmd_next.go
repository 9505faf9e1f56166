package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/moment/internal/actions"
	"github.com/hay-kot/moment/internal/printer"
	"github.com/hay-kot/moment/internal/widget"
)

type NextCmd struct {
	flags  *Flags
	format string
	copy   bool
}

// NewNextCmd creates a new next command.
func NewNextCmd(flags *Flags) *NextCmd {
	return &NextCmd{flags: flags}
}

// Register adds the next command to the application.
func (cmd *NextCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "next",
		Usage:     "Print the next quote of the rotation",
		UsageText: "moment next [options]",
		Description: `Draws one quote from the stored rotation session and prints it.

The draw advances the same session the interactive widget uses, so quotes
printed here are not repeated in the widget until the session rolls over.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "copy",
				Usage:       "also copy the quote to the clipboard",
				Destination: &cmd.copy,
			},
		},
		Action: cmd.run,
	})

	return app
}

type nextJSON struct {
	Quote  string `json:"quote"`
	Author string `json:"author,omitempty"`
	Text   string `json:"text"`
}

func (cmd *NextCmd) run(ctx context.Context, c *cli.Command) error {
	src, err := cmd.flags.Source()
	if err != nil {
		return err
	}

	ctrl := cmd.flags.NewController()
	if err := ctrl.Initialize(ctx, src); err != nil {
		return fmt.Errorf("%s: %w", widget.MsgInitFailed, err)
	}

	view := ctrl.View()
	out := c.Root().Writer

	switch cmd.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(nextJSON{
			Quote:  view.Quote.Text,
			Author: view.Quote.Author,
			Text:   view.FullText(),
		}); err != nil {
			return err
		}
	case "text":
		printer.New(out).Quote(view.Text, view.Author)
	default:
		return fmt.Errorf("unknown format %q", cmd.format)
	}

	if cmd.copy {
		cb := actions.NewClipboard(cmd.flags.Config.Clipboard.Command, cmd.flags.Exec)
		if err := cb.WriteText(ctx, view.FullText()); err != nil {
			return fmt.Errorf("copy quote: %w", err)
		}
		printer.Ctx(ctx).Successf("%s", actions.LabelCopied)
	}

	return nil
}
