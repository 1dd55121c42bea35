// Package config loads the optional arbor.toml build configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config controls a documentation build. All fields are optional; zero
// values fall back to the defaults below.
type Config struct {
	// DB is the snapshot database path, relative to the repo root unless
	// absolute.
	DB string `toml:"db"`
	// Languages restricts extraction to the named languages. Empty means
	// all supported languages.
	Languages []string `toml:"languages"`
	// Verbose enables informational diagnostics (dropped duplicates,
	// misc-routed entities).
	Verbose bool    `toml:"verbose"`
	Exclude Exclude `toml:"exclude"`
}

// Exclude filters files out of a build.
type Exclude struct {
	// Dirs are directory names skipped during discovery walks.
	Dirs []string `toml:"dirs"`
	// Files are glob patterns matched against repo-relative file paths.
	Files []string `toml:"files"`
}

// Default returns the configuration used when no arbor.toml exists.
func Default() *Config {
	return &Config{
		DB: ".arbor/index.db",
	}
}

// Load reads a TOML configuration from path and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DB == "" {
		cfg.DB = Default().DB
	}
	return cfg, nil
}

// LoadIfPresent loads path when it exists, otherwise returns defaults.
func LoadIfPresent(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}
