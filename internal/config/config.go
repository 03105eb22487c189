// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/xonecas/asu/internal/highlight"
)

// Disabled turns off a path-valued setting (log file, state database).
const Disabled = "-"

// Config is the root configuration structure.
type Config struct {
	UI    UIConfig    `toml:"ui"`
	Log   LogConfig   `toml:"log"`
	State StateConfig `toml:"state"`
}

// UIConfig holds display settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma style that number and symbol colours are
	// taken from. "ansi" keeps the terminal's own 16-colour palette.
	SyntaxTheme string `toml:"syntax_theme"`
	Margin      int    `toml:"margin"`
	TabWidth    int    `toml:"tab_width"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or "ansi" if unset.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return highlight.ANSITheme
	}
	return u.SyntaxTheme
}

// MarginOrDefault returns the configured margin or 2 if unset.
func (u UIConfig) MarginOrDefault() int {
	if u.Margin <= 0 {
		return 2
	}
	return u.Margin
}

// TabWidthOrDefault returns the configured tab width or 4 if unset.
func (u UIConfig) TabWidthOrDefault() int {
	if u.TabWidth <= 0 {
		return 4
	}
	return u.TabWidth
}

// LogConfig holds log file settings.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// FileOrDefault returns the log file path, asu.log in dataDir if unset, or
// "" if logging is disabled.
func (l LogConfig) FileOrDefault(dataDir string) string {
	return pathOrDefault(l.File, dataDir, "asu.log")
}

// LevelOrDefault returns the configured level or info if unset.
func (l LogConfig) LevelOrDefault() zerolog.Level {
	lvl, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// StateConfig holds settings for the cursor position store.
type StateConfig struct {
	DB      string `toml:"db"`
	TTLDays int    `toml:"ttl_days"`
}

// DBOrDefault returns the database path, state.db in dataDir if unset, or
// "" if the store is disabled.
func (s StateConfig) DBOrDefault(dataDir string) string {
	return pathOrDefault(s.DB, dataDir, "state.db")
}

// TTLDaysOrDefault returns the configured TTL or 90 days if unset.
func (s StateConfig) TTLDaysOrDefault() int {
	if s.TTLDays <= 0 {
		return 90
	}
	return s.TTLDays
}

func pathOrDefault(value, dataDir, name string) string {
	switch value {
	case Disabled:
		return ""
	case "":
		if dataDir == "" {
			return ""
		}
		return filepath.Join(dataDir, name)
	}
	return value
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{}
}

// Load reads configuration from a TOML file and applies environment variable overrides.
// An empty path loads the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// File must exist
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}

		// Load from file
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads config.toml from the data directory if it exists and
// the defaults otherwise.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Load("")
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Load("")
	}
	return Load(path)
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if !highlight.KnownTheme(c.UI.SyntaxTheme) {
		errs = append(errs, fmt.Errorf("ui.syntax_theme=%q is not a known theme", c.UI.SyntaxTheme))
	}
	if m := c.UI.Margin; m != 0 && (m < 2 || m > 8) {
		errs = append(errs, fmt.Errorf("ui.margin=%d must be between 2 and 8", c.UI.Margin))
	}
	if c.UI.TabWidth < 0 || c.UI.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("ui.tab_width=%d must be between 1 and 16", c.UI.TabWidth))
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
		}
	}

	if c.State.TTLDays < 0 {
		errs = append(errs, fmt.Errorf("state.ttl_days=%d must not be negative", c.State.TTLDays))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"ASU_THEME", func(v string) {
			if v != "" {
				cfg.UI.SyntaxTheme = v
			}
		}},
		{"ASU_LOG_FILE", func(v string) {
			if v != "" {
				cfg.Log.File = v
			}
		}},
		{"ASU_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
		{"ASU_STATE_DB", func(v string) {
			if v != "" {
				cfg.State.DB = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the asu data directory (~/.config/asu).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "asu"), nil
}

// DefaultPath returns the path of the config file in the data directory.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
