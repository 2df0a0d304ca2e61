package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Catalog.Glob != "**/*.yaml" {
		t.Errorf("expected default glob **/*.yaml, got %s", cfg.Catalog.Glob)
	}
	if cfg.Catalog.WatchDebounce != 300*time.Millisecond {
		t.Errorf("expected default watch debounce 300ms, got %v", cfg.Catalog.WatchDebounce)
	}
	if cfg.NATS.URL != "" {
		t.Error("expected publishing disabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid default config", modify: func(c *Config) {}, wantErr: false},
		{name: "missing glob", modify: func(c *Config) { c.Catalog.Glob = "" }, wantErr: true},
		{name: "negative debounce", modify: func(c *Config) { c.Catalog.WatchDebounce = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
catalog:
  path: "/test/path"
  glob: "models/**/*.yaml"
  watch_debounce: 500ms
nats:
  url: "nats://test:4222"
metrics:
  addr: ":9090"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Catalog.Path != "/test/path" {
		t.Errorf("expected catalog path /test/path, got %s", cfg.Catalog.Path)
	}
	if cfg.Catalog.Glob != "models/**/*.yaml" {
		t.Errorf("expected glob models/**/*.yaml, got %s", cfg.Catalog.Glob)
	}
	if cfg.Catalog.WatchDebounce != 500*time.Millisecond {
		t.Errorf("expected watch debounce 500ms, got %v", cfg.Catalog.WatchDebounce)
	}
	if cfg.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.NATS.URL)
	}
	if cfg.Metrics.Addr != ":9090" {
		t.Errorf("expected metrics addr :9090, got %s", cfg.Metrics.Addr)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Catalog: CatalogConfig{Path: "/override/path"},
		NATS:    NATSConfig{URL: "nats://override:4222"},
	}

	base.Merge(override)

	if base.Catalog.Path != "/override/path" {
		t.Errorf("expected catalog path /override/path, got %s", base.Catalog.Path)
	}
	if base.Catalog.Glob != "**/*.yaml" {
		t.Errorf("expected glob to remain default, got %s", base.Catalog.Glob)
	}
	if base.NATS.URL != "nats://override:4222" {
		t.Errorf("expected NATS URL nats://override:4222, got %s", base.NATS.URL)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Catalog.Path = "/saved/path"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Catalog.Path != "/saved/path" {
		t.Errorf("expected catalog path /saved/path, got %s", loaded.Catalog.Path)
	}
}
