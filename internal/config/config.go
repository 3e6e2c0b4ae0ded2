// Package config loads crudbook settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/crudbook/internal/banner"
	"github.com/dshills/crudbook/internal/storage"
)

// Config holds all crudbook configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects where the record list lives.
type StorageConfig struct {
	Backend string `yaml:"backend"` // sqlite, file, memory
	Path    string `yaml:"path"`    // database file or directory
	Key     string `yaml:"key"`
}

// UIConfig tunes the interactive surface.
type UIConfig struct {
	BannerDuration string `yaml:"banner_duration"`
	AssumeYes      bool   `yaml:"assume_yes"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"` // debug, info, warn, error
	JSON    bool   `yaml:"json"`
}

// DefaultDir returns the directory holding config and data.
func DefaultDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "crudbook")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "crudbook")
	}
	return ".crudbook"
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: storage.BackendSQLite,
			Path:    filepath.Join(DefaultDir(), "crudbook.db"),
			Key:     storage.DefaultKey,
		},
		UI: UIConfig{
			BannerDuration: banner.DefaultDuration.String(),
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "warn",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Environment overrides are applied last. The result is not validated, so
// callers can apply their own overrides first and then call Validate.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CRUDBOOK_STORE"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("CRUDBOOK_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("CRUDBOOK_KEY"); v != "" {
		c.Storage.Key = v
	}
	if v := os.Getenv("CRUDBOOK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CRUDBOOK_ASSUME_YES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UI.AssumeYes = b
		}
	}
}

// Validate returns an error if any setting is invalid.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case storage.BackendSQLite, storage.BackendFile:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for backend %q", c.Storage.Backend)
		}
	case storage.BackendMemory:
	default:
		return fmt.Errorf("storage.backend must be sqlite, file or memory, got %q", c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key must not be empty")
	}
	if _, err := c.BannerDuration(); err != nil {
		return err
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// BannerDuration parses UI.BannerDuration; empty means the default.
func (c *Config) BannerDuration() (time.Duration, error) {
	if c.UI.BannerDuration == "" {
		return banner.DefaultDuration, nil
	}
	d, err := time.ParseDuration(c.UI.BannerDuration)
	if err != nil {
		return 0, fmt.Errorf("ui.banner_duration: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("ui.banner_duration must not be negative, got %s", d)
	}
	return d, nil
}
