// Package config provides configuration loading and management for
// modelctl.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete modelctl configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	NATS    NATSConfig    `yaml:"nats"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// CatalogConfig configures where catalog documents live and how they
// are discovered.
type CatalogConfig struct {
	// Path is the catalog root directory (set to the current directory
	// by Loader.Load if empty). The CLI does not resolve document paths
	// against it; they are resolved against the working directory.
	Path string `yaml:"path"`
	// Glob is the default --glob pattern used by `import` when none is
	// given on the command line and document-in is a directory.
	Glob string `yaml:"glob"`
	// WatchDebounce is how long to wait after the last fsnotify event
	// before re-running Import, to coalesce editor save bursts.
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// NATSConfig configures the optional fact-publish side-channel.
type NATSConfig struct {
	// URL is the NATS server URL. Empty disables publishing.
	URL string `yaml:"url"`
}

// MetricsConfig configures the optional Prometheus endpoint served by
// `import` and `export`.
type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables it.
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path:          "",
			Glob:          "**/*.yaml",
			WatchDebounce: 300 * time.Millisecond,
		},
		NATS: NATSConfig{
			URL: "",
		},
		Metrics: MetricsConfig{
			Addr: "",
		},
	}
}

// Validate checks that the configuration is well-formed.
func (c *Config) Validate() error {
	if c.Catalog.Glob == "" {
		return fmt.Errorf("catalog.glob is required")
	}
	if c.Catalog.WatchDebounce < 0 {
		return fmt.Errorf("catalog.watch_debounce must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence
// for non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Catalog.Path != "" {
		c.Catalog.Path = other.Catalog.Path
	}
	if other.Catalog.Glob != "" {
		c.Catalog.Glob = other.Catalog.Glob
	}
	if other.Catalog.WatchDebounce != 0 {
		c.Catalog.WatchDebounce = other.Catalog.WatchDebounce
	}

	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}

	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
}
