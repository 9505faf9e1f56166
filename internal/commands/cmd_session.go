package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/moment/internal/core/session"
	"github.com/hay-kot/moment/internal/printer"
)

type SessionCmd struct {
	flags  *Flags
	format string
}

// NewSessionCmd creates a new session command.
func NewSessionCmd(flags *Flags) *SessionCmd {
	return &SessionCmd{flags: flags}
}

// Register adds the session command to the application.
func (cmd *SessionCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "session",
		Usage: "Inspect or reset the stored rotation session",
		Description: `Session commands operate on the persisted rotation state.

The session records which quotes remain in the current chunk and the order
in which the remaining chunks are visited. It expires after the configured
session duration, after which a fresh shuffle starts.`,
		Commands: []*cli.Command{
			cmd.showCmd(),
			cmd.resetCmd(),
		},
	})

	return app
}

// SessionInfo represents the output of the session show command.
type SessionInfo struct {
	Key       string    `json:"key"`
	Path      string    `json:"path"`
	Present   bool      `json:"present"`
	StartedAt time.Time `json:"started_at,omitzero"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
	Expired   bool      `json:"expired"`
	Chunks    int       `json:"chunks"`
	Pointer   int       `json:"pointer"`
	Remaining int       `json:"remaining"`
}

func (cmd *SessionCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Display the stored session",
		UsageText: "moment session show [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.runShow,
	}
}

func (cmd *SessionCmd) resetCmd() *cli.Command {
	return &cli.Command{
		Name:        "reset",
		Usage:       "Discard the stored session",
		UsageText:   "moment session reset",
		Description: "Removes the stored session so the next run starts a fresh shuffle.",
		Action:      cmd.runReset,
	}
}

// describeSession summarizes the stored session as of now.
func describeSession(sess session.Session, ok bool, d time.Duration, now time.Time) SessionInfo {
	info := SessionInfo{Present: ok && !sess.IsEmpty()}
	if !info.Present {
		return info
	}

	info.StartedAt = sess.StartTime()
	info.ExpiresAt = info.StartedAt.Add(d)
	info.Expired = sess.Expired(now, d)
	info.Chunks = len(sess.ChunkOrder)
	info.Pointer = sess.Pointer
	info.Remaining = len(sess.Remaining)
	return info
}

func (cmd *SessionCmd) runShow(ctx context.Context, c *cli.Command) error {
	sess, ok := cmd.flags.Sessions.Load(ctx)

	info := describeSession(sess, ok, cmd.flags.Config.SessionDuration, time.Now())
	info.Key = cmd.flags.Sessions.Key()
	info.Path = cmd.flags.Storage.Path()

	out := c.Root().Writer

	if cmd.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	if !info.Present {
		printer.Ctx(ctx).Infof("No stored session in %s", info.Path)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "KEY\t%s\n", info.Key)
	_, _ = fmt.Fprintf(w, "PATH\t%s\n", info.Path)
	_, _ = fmt.Fprintf(w, "STARTED\t%s\n", info.StartedAt.Local().Format(time.DateTime))
	_, _ = fmt.Fprintf(w, "EXPIRES\t%s\n", info.ExpiresAt.Local().Format(time.DateTime))
	_, _ = fmt.Fprintf(w, "EXPIRED\t%t\n", info.Expired)
	_, _ = fmt.Fprintf(w, "CHUNK\t%d/%d\n", info.Pointer, info.Chunks)
	_, _ = fmt.Fprintf(w, "REMAINING\t%d\n", info.Remaining)
	return w.Flush()
}

func (cmd *SessionCmd) runReset(ctx context.Context, _ *cli.Command) error {
	if err := cmd.flags.Sessions.Clear(ctx); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}

	printer.Ctx(ctx).Successf("Session reset")
	return nil
}
