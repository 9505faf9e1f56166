package commands

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/moment/internal/core/config"
	"github.com/hay-kot/moment/internal/core/quote"
	"github.com/hay-kot/moment/internal/core/rotation"
	"github.com/hay-kot/moment/internal/source"
	"github.com/hay-kot/moment/internal/store/jsonfile"
	"github.com/hay-kot/moment/internal/widget"
	"github.com/hay-kot/moment/pkg/executil"
)

// fetchTimeout bounds a remote collection fetch.
const fetchTimeout = 15 * time.Second

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// SourceOverride replaces the configured quote source when set.
	SourceOverride string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Storage and Sessions persist rotation state between runs.
	Storage  *jsonfile.KVStore
	Sessions *jsonfile.SessionStore

	// Exec runs clipboard and share commands.
	Exec executil.Executor

	Logger zerolog.Logger
}

// inspectsConfig lists the subcommands that report an invalid config
// themselves instead of refusing to start.
var inspectsConfig = map[string]bool{
	"config": true,
	"doctor": true,
}

// Load reads the config file and wires the stores for the named subcommand.
// An invalid config aborts every command except the ones that report on it.
func (f *Flags) Load(command string) error {
	cfg, err := config.Load(f.ConfigPath, f.DataDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if f.SourceOverride != "" {
		cfg.Source = f.SourceOverride
	}

	if err := cfg.Validate(); err != nil {
		if !inspectsConfig[command] {
			return fmt.Errorf("load config: invalid config: %w", err)
		}
		f.Logger.Debug().Err(err).Str("command", command).Msg("continuing with invalid config")
	}

	f.Config = cfg
	f.Storage = jsonfile.NewKVStore(cfg.StorageFile())
	f.Sessions = jsonfile.NewSessionStore(
		f.Storage,
		cfg.StorageKey,
		f.Logger.With().Str("component", "sessionstore").Logger(),
	)
	return nil
}

// Source opens the configured quote collection.
func (f *Flags) Source() (source.Source, error) {
	return source.New(f.Config.Source, &http.Client{Timeout: fetchTimeout})
}

// NewEngine returns a factory building rotation engines from the loaded
// configuration.
func (f *Flags) NewEngine() func([]quote.Quote) *rotation.Engine {
	return func(quotes []quote.Quote) *rotation.Engine {
		return rotation.New(quotes, f.Sessions,
			rotation.WithChunkSize(f.Config.ChunkSize),
			rotation.WithSessionDuration(f.Config.SessionDuration),
			rotation.WithLogger(f.Logger.With().Str("component", "rotation").Logger()),
		)
	}
}

// NewController creates an uninitialized widget controller.
func (f *Flags) NewController() *widget.Controller {
	return widget.New(f.NewEngine(), f.Logger.With().Str("component", "widget").Logger())
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "moment", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "moment")
}
