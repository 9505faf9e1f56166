// Package config handles configuration loading and validation for moment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/moment/internal/core/rotation"
	"github.com/hay-kot/moment/internal/core/session"
	"github.com/hay-kot/moment/internal/store/jsonfile"
	"github.com/hay-kot/moment/pkg/tmpl"
)

// Config holds the application configuration.
type Config struct {
	Source             string          `yaml:"source"`
	ChunkSize          int             `yaml:"chunk_size"`
	SessionDuration    time.Duration   `yaml:"session_duration"`
	StorageKey         string          `yaml:"storage_key"`
	Animation          AnimationConfig `yaml:"animation"`
	AffordanceDuration time.Duration   `yaml:"affordance_duration"`
	Clipboard          ClipboardConfig `yaml:"clipboard"`
	Share              ShareConfig     `yaml:"share"`
	Serve              ServeConfig     `yaml:"serve"`
	DataDir            string          `yaml:"-"` // set by caller, not from config file
}

// AnimationConfig controls the quote transition.
type AnimationConfig struct {
	// Fade is the length of one fade direction.
	Fade time.Duration `yaml:"fade"`
	// Frames is the number of color steps per fade.
	Frames int `yaml:"frames"`
	// Settle is the delay after fading in before the next control is re-enabled.
	Settle time.Duration `yaml:"settle"`
}

// ClipboardConfig selects how quotes are copied.
type ClipboardConfig struct {
	// Command receives the quote on stdin. Empty uses the system clipboard.
	Command string `yaml:"command"`
}

// ShareConfig configures the share action.
type ShareConfig struct {
	// Command is a template rendered with ShareTemplateData. Empty means
	// sharing is unavailable.
	Command string `yaml:"command"`
	Title   string `yaml:"title"`
	URL     string `yaml:"url"`
}

// ServeConfig configures the development collection host.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// ShareTemplateData defines available fields for the share command template.
type ShareTemplateData struct {
	Title string
	Text  string
	URL   string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Source:          "quotes.json",
		ChunkSize:       rotation.DefaultChunkSize,
		SessionDuration: session.DefaultDuration,
		StorageKey:      jsonfile.DefaultSessionKey,
		Animation: AnimationConfig{
			Fade:   300 * time.Millisecond,
			Frames: 6,
			Settle: 500 * time.Millisecond,
		},
		AffordanceDuration: 2 * time.Second,
		Share: ShareConfig{
			Title: "Цитата для Вдохновения",
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
// The result is not validated; callers decide whether to run Validate.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.ChunkSize == 0 {
		c.ChunkSize = defaults.ChunkSize
	}
	if c.SessionDuration == 0 {
		c.SessionDuration = defaults.SessionDuration
	}
	if c.StorageKey == "" {
		c.StorageKey = defaults.StorageKey
	}
	if c.Animation.Fade == 0 {
		c.Animation.Fade = defaults.Animation.Fade
	}
	if c.Animation.Frames == 0 {
		c.Animation.Frames = defaults.Animation.Frames
	}
	if c.Animation.Settle == 0 {
		c.Animation.Settle = defaults.Animation.Settle
	}
	if c.AffordanceDuration == 0 {
		c.AffordanceDuration = defaults.AffordanceDuration
	}
	if c.Share.Title == "" {
		c.Share.Title = defaults.Share.Title
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = defaults.Serve.Addr
	}
}

// Validate checks that the configuration is valid. Field problems are
// reported together as criterio.FieldErrors.
func (c *Config) Validate() error {
	var errs criterio.FieldErrors

	add := func(field string, err error) {
		errs = append(errs, criterio.FieldErrors{{Field: field, Err: err}}...)
	}

	if c.Source == "" {
		add("source", errors.New("cannot be empty"))
	}
	if c.DataDir == "" {
		add("data_dir", errors.New("data directory cannot be empty"))
	}
	if c.ChunkSize < 1 {
		add("chunk_size", errors.New("must be at least 1"))
	}
	if c.SessionDuration < 0 {
		add("session_duration", errors.New("cannot be negative"))
	}
	if c.Animation.Frames < 1 {
		add("animation.frames", errors.New("must be at least 1"))
	}
	if c.Animation.Fade < 0 || c.Animation.Settle < 0 {
		add("animation", errors.New("durations cannot be negative"))
	}
	if c.AffordanceDuration < 0 {
		add("affordance_duration", errors.New("cannot be negative"))
	}
	if c.Share.Command != "" {
		if _, err := tmpl.Render(c.Share.Command, ShareTemplateData{}); err != nil {
			add("share.command", fmt.Errorf("template error: %w", err))
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// StorageFile returns the path to the client state file.
func (c *Config) StorageFile() string {
	return filepath.Join(c.DataDir, "storage.json")
}

// FrameInterval returns the delay between fade frames.
func (c *Config) FrameInterval() time.Duration {
	return c.Animation.Fade / time.Duration(c.Animation.Frames)
}
