// Package config loads and persists the compactor configuration, including
// the compaction pattern whitelist written by `compactor generate-config`.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"compactor/internal/recipe"
)

// Config holds all compactor configuration.
type Config struct {
	// Bridge connection settings
	Service ServiceConfig `yaml:"service"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Run history storage
	History HistoryConfig `yaml:"history"`

	// Restricted set of recipes the catalog will consider. Empty means
	// "consider everything the service knows".
	Whitelist []WhitelistEntry `yaml:"whitelist,omitempty"`
}

// ServiceConfig configures the HTTP bridge client.
type ServiceConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// HistoryConfig configures the run history database.
type HistoryConfig struct {
	Path string `yaml:"path"`
	Keep int    `yaml:"keep"` // runs retained; older ones are pruned
}

// WhitelistEntry is one persisted recipe identifier.
type WhitelistEntry struct {
	Label  string `yaml:"label"`
	Name   string `yaml:"name"`
	Damage int    `yaml:"damage"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			BaseURL: "http://localhost:8575",
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		History: HistoryConfig{
			Path: filepath.Join(defaultDir(), "history.db"),
			Keep: 200,
		},
	}
}

// DefaultPath is where Load looks when the operator gives no --config.
func DefaultPath() string {
	return filepath.Join(defaultDir(), "config.yaml")
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".compactor"
	}
	return filepath.Join(home, ".compactor")
}

// Load reads the config at path. A missing file at the default path is
// fine and yields defaults; when the caller explicitly requested the path
// its absence is an error. Parse failures are always errors.
func Load(path string, explicit bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// WhitelistInfos converts the persisted whitelist into catalog identifiers.
func (c *Config) WhitelistInfos() []recipe.PatternInfo {
	if len(c.Whitelist) == 0 {
		return nil
	}
	infos := make([]recipe.PatternInfo, 0, len(c.Whitelist))
	for _, e := range c.Whitelist {
		infos = append(infos, recipe.PatternInfo{Name: e.Name, Label: e.Label, Damage: e.Damage})
	}
	return infos
}

// SetWhitelist replaces the persisted whitelist.
func (c *Config) SetWhitelist(infos []recipe.PatternInfo) {
	entries := make([]WhitelistEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, WhitelistEntry{Label: info.Label, Name: info.Name, Damage: info.Damage})
	}
	c.Whitelist = entries
}

// TimeoutDuration parses the service timeout, falling back to 30s on an
// empty or malformed value.
func (s ServiceConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
