// Package config loads shell settings from defaults, an INI file and the
// environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "steelfm"

// Config holds the shell configuration.
type Config struct {
	Root      string
	Viewer    string
	LogLevel  string
	LogFile   string
	AssumeYes bool
}

// env mirrors Config for envconfig. Unset variables stay nil so they do not
// clobber values read from the INI file.
type env struct {
	Root      *string
	Viewer    *string
	LogLevel  *string `split_words:"true"`
	LogFile   *string `split_words:"true"`
	AssumeYes *bool   `split_words:"true"`
}

// Default returns the built-in configuration. The root is the user's home
// directory, or the filesystem root when that is unknown.
func Default() *Config {
	root, err := os.UserHomeDir()
	if err != nil {
		root = string(filepath.Separator)
	}
	return &Config{
		Root:     root,
		LogLevel: "info",
		LogFile:  "steelfm.log",
	}
}

// Load returns the defaults overlaid with the INI file at path (skipped when
// path is empty) and then with STEELFM_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	storage := file.Section("storage")
	c.Root = storage.Key("root").MustString(c.Root)

	viewer := file.Section("viewer")
	c.Viewer = viewer.Key("command").MustString(c.Viewer)

	log := file.Section("log")
	c.LogLevel = log.Key("level").MustString(c.LogLevel)
	c.LogFile = log.Key("file").MustString(c.LogFile)

	shell := file.Section("shell")
	c.AssumeYes = shell.Key("assume_yes").MustBool(c.AssumeYes)
	return nil
}

func (c *Config) loadEnv() error {
	var e env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if e.Root != nil {
		c.Root = *e.Root
	}
	if e.Viewer != nil {
		c.Viewer = *e.Viewer
	}
	if e.LogLevel != nil {
		c.LogLevel = *e.LogLevel
	}
	if e.LogFile != nil {
		c.LogFile = *e.LogFile
	}
	if e.AssumeYes != nil {
		c.AssumeYes = *e.AssumeYes
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.Root == "" {
		result = multierror.Append(result, errors.New("storage root must not be empty"))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid log level %q", c.LogLevel))
	}
	return result.ErrorOrNil()
}
