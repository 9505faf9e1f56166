package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/moment/internal/commands"
	"github.com/hay-kot/moment/internal/printer"
	"github.com/hay-kot/moment/pkg/executil"
	"github.com/hay-kot/moment/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	if err := setupLogger("info", "", nil); err != nil {
		panic(err)
	}

	// A missing .env is normal; anything else is worth knowing about.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		p     = printer.New(os.Stderr)
		ctx   = printer.NewContext(sigCtx, p)
		flags = &commands.Flags{}
	)

	var deferredLogs *utils.DeferredWriter

	app := &cli.Command{
		Name:      "moment",
		Usage:     "Show a quote of the moment",
		UsageText: "moment [global options] command [command options]",
		Description: `Moment shows one quote at a time from a collection, without repeats.

Quotes are visited in shuffled chunks. The rotation is remembered between
runs for the session duration (8 hours by default), after which a fresh
shuffle starts.

Run 'moment' with no arguments to open the interactive widget.
Run 'moment next' to print a single quote.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("MOMENT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (optional)",
				Sources:     cli.EnvVars("MOMENT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("MOMENT_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("MOMENT_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "source",
				Usage:       "quote collection URL, file, or glob (overrides config)",
				Sources:     cli.EnvVars("MOMENT_SOURCE"),
				Destination: &flags.SourceOverride,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Detect TUI mode: no subcommand means TUI (default action)
			isTUI := len(c.Args().Slice()) == 0

			// In TUI mode, buffer logs to display after exit
			var deferred io.Writer
			if isTUI {
				deferredLogs = &utils.DeferredWriter{}
				deferred = deferredLogs
			}

			if err := setupLogger(flags.LogLevel, flags.LogFile, deferred); err != nil {
				return ctx, err
			}

			flags.Logger = log.With().Str("component", "moment").Logger()
			flags.Exec = &executil.RealExecutor{}

			return ctx, flags.Load(c.Args().First())
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = commands.NewNextCmd(flags).Register(app)
	app = commands.NewSessionCmd(flags).Register(app)
	app = commands.NewServeCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'moment --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Println()
		printer.Ctx(ctx).FatalError(err)
		exitCode = 1
	}

	// Flush deferred logs to console after TUI exits
	if deferredLogs != nil {
		if err := deferredLogs.Flush(zerolog.ConsoleWriter{Out: os.Stderr}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", err)
		}
	}

	stop()
	os.Exit(exitCode)
}

func setupLogger(level string, logFile string, deferred io.Writer) error {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}

	if logFile != "" {
		// Create log directory if it doesn't exist
		logDir := filepath.Dir(logFile)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		// Open log file
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		if deferred != nil {
			// TUI mode with explicit log file - write to both file and deferred buffer
			output = io.MultiWriter(file, deferred)
		} else {
			// Write to both console and file
			output = io.MultiWriter(
				zerolog.ConsoleWriter{Out: os.Stderr},
				file,
			)
		}
	} else if deferred != nil {
		// TUI mode without log file - buffer for display after exit
		output = deferred
	}

	log.Logger = log.Output(output).Level(parsedLevel)

	return nil
}
