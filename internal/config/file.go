package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// SampleConfig returns the commented sample configuration file.
func SampleConfig() string {
	return sampleConfig
}

// DefaultPath returns $XDG_CONFIG_HOME/mtsmux/config.toml (or the platform
// equivalent). It returns "" when no user config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mtsmux", "config.toml")
}

// LoadFile decodes the TOML file at path over cfg. A missing file is only
// an error when explicit is true (the user named it with --config).
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadFile(cfg *Config, path string, explicit bool) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("config %s: %s", path, strict.String())
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	cfg.ConfigFile = path
	return nil
}

// Encode renders cfg as TOML (used by `mtsmux config show`).
func Encode(cfg *Config) ([]byte, error) {
	return toml.Marshal(cfg)
}
