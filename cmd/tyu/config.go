package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

const (
	configEnv      = "TYU_CONFIG"
	defaultConfig  = "tyu.toml"
	defaultPrompt  = "tyu> "
	defaultHistory = 200
)

var dumpFormats = []string{"yaml", "json", "tree"}

// fileConfig is the optional tyu.toml file.
type fileConfig struct {
	Log   logConfig   `toml:"log"`
	Parse parseConfig `toml:"parse"`
	REPL  replConfig  `toml:"repl"`
}

type logConfig struct {
	Level string `toml:"level"`
}

type parseConfig struct {
	Format string `toml:"format"`
}

type replConfig struct {
	Prompt       string `toml:"prompt"`
	HistoryLimit int    `toml:"history_limit"`
}

// loadConfig reads the config file named by path, falling back to $TYU_CONFIG
// and then ./tyu.toml. Only the implicit ./tyu.toml may be missing.
func loadConfig(path string) (*fileConfig, error) {
	explicit := true
	path = os.ExpandEnv(path)
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		path = defaultConfig
		explicit = false
	}

	var cfg fileConfig
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// no file: defaults only
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("config file not found: %s", path)
	case err != nil:
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("config %s: unknown key %s", path, undecoded[0])
		}
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *fileConfig) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Parse.Format == "" {
		c.Parse.Format = "yaml"
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = defaultPrompt
	}
	if c.REPL.HistoryLimit == 0 {
		c.REPL.HistoryLimit = defaultHistory
	}
}

func (c *fileConfig) validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if err := validateFormat(c.Parse.Format); err != nil {
		return fmt.Errorf("parse.format: %w", err)
	}
	if c.REPL.HistoryLimit < 0 {
		return fmt.Errorf("repl.history_limit must not be negative, got %d", c.REPL.HistoryLimit)
	}
	return nil
}

func validateFormat(format string) error {
	for _, known := range dumpFormats {
		if format == known {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(dumpFormats, ", "))
}

// newLogger builds the stderr logger. debug overrides the configured level.
func newLogger(level string, debug bool) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if debug {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:  lvl,
		Prefix: "tyu",
	})
}
