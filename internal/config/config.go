package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/zaolin/conshim/internal/buildtags"
	"github.com/zaolin/conshim/internal/compress"
)

// Config holds the conshim configuration
type Config struct {
	DebugLevel  int    `toml:"debug_level"`
	Device      string `toml:"device"`
	LogPath     string `toml:"log_path"`
	Compression string `toml:"compression"`
	DebugPrefix string `toml:"debug_prefix"`
	DebugColor  string `toml:"debug_color"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DebugLevel:  buildtags.DefaultDebugLevel,
		Compression: "zstd",
		DebugColor:  "241",
	}
}

// Load loads configuration from a TOML file
// If path is empty, returns default config
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks field values that the TOML decoder cannot
func (c *Config) Validate() error {
	if c.DebugLevel < 0 {
		return fmt.Errorf("debug_level must be >= 0, got %d", c.DebugLevel)
	}
	if !compress.Valid(c.Compression) {
		return fmt.Errorf("unknown compression %q", c.Compression)
	}
	return nil
}
