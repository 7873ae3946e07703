// Package config holds the launcher preferences that are read from a yaml file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file used if no other file is given,
// relative to the working directory of the process.
const DefaultPath = "stride.yaml"

type Config struct {
	// scene to run, one of 2d, 3d or market
	Scene string `yaml:"scene"`

	WindowTitle string `yaml:"window_title,omitempty"`

	// one of debug, info, warn or error
	LogLevel string `yaml:"log_level,omitempty"`

	CPUProfile bool `yaml:"cpu_profile,omitempty"`

	// wait for enter before exiting after the window failed to open
	PauseOnError bool `yaml:"pause_on_error"`
}

func Default() Config {
	return Config{
		Scene:        "3d",
		LogLevel:     "info",
		PauseOnError: true,
	}
}

// Load reads the config from the given path. Values missing in the file keep
// their defaults. If the file does not exist, the defaults are returned.
func Load(path string) (Config, error) {
	config := Default()

	buf, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return config, nil

	case err != nil:
		return config, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(buf, &config); err != nil {
		return Default(), fmt.Errorf("parse config %q: %w", path, err)
	}

	return config, nil
}

// Level parses the configured log level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return level, nil
	}

	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}

	return level, nil
}
