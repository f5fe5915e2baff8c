package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/j29zhnm96x-hub/UltimateStopwatchPro-sub000/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "swpro"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Config represents the application configuration
type Config struct {
	// Theme is the TUI color theme name (bubbletint id)
	Theme string `toml:"theme"`
	// VoiceLanguage is the secondary stem language for voice commands
	// (ISO 639-1 code); English is always active
	VoiceLanguage string `toml:"voice_language"`
	// CountdownSeconds is the countdown before a delayed start (0 disables)
	CountdownSeconds int `toml:"countdown_seconds"`
	// HourlyWage is the default hourly wage attached to saved results
	// (0 means no wage)
	HourlyWage float64 `toml:"hourly_wage"`
}

// DefaultConfig returns a Config with sensible defaults.
// - theme: "dracula"
// - voice_language: "no" (Norwegian secondary stems)
// - countdown_seconds: 0 (start immediately)
// - hourly_wage: 0 (no wage tracking)
func DefaultConfig() Config {
	return Config{
		Theme:            "dracula",
		VoiceLanguage:    "no",
		CountdownSeconds: 0,
		HourlyWage:       0,
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)

	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Normalize cleans up field values in place (trims whitespace, lowercases
// the language code).
func (c *Config) Normalize() {
	c.Theme = strings.TrimSpace(c.Theme)
	c.VoiceLanguage = strings.ToLower(strings.TrimSpace(c.VoiceLanguage))
}

// Validate checks field values, returning a descriptive error for the
// first invalid one.
func (c Config) Validate() error {
	if c.CountdownSeconds < 0 || c.CountdownSeconds > 60 {
		return fmt.Errorf("countdown_seconds must be between 0 and 60, got %d", c.CountdownSeconds)
	}
	if c.HourlyWage < 0 {
		return fmt.Errorf("hourly_wage must not be negative, got %g", c.HourlyWage)
	}
	return nil
}

// Load reads and parses the config file at the given path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault reads the config file, falling back to defaults when the
// file doesn't exist. A file that exists but doesn't parse is an error.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the config to the given path.
// Uses atomic write pattern (write to temp file, then rename) for safety.
func Save(path string, cfg Config) error {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, []byte(b.String()), 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, path)
}
