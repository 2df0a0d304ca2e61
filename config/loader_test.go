package config

import (
	"os"
	"path/filepath"
	"testing"
)

// withHome points os.UserHomeDir at dir for the duration of the test.
func withHome(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("HOME", dir)
	t.Setenv("USERPROFILE", dir) // harmless on non-Windows, mirrors os.UserHomeDir's lookup order
}

// withCwd chdirs into dir for the duration of the test and restores
// the previous working directory on cleanup.
func withCwd(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoaderLoadDefaultsWhenNoConfigFilesExist(t *testing.T) {
	withHome(t, t.TempDir())
	withCwd(t, t.TempDir())

	cfg, err := NewLoader(nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Glob != "**/*.yaml" {
		t.Errorf("expected default glob, got %s", cfg.Catalog.Glob)
	}
	if cfg.Catalog.Path == "" {
		t.Error("expected catalog.path to fall back to the working directory")
	}
}

func TestLoaderProjectConfigOverridesUserConfig(t *testing.T) {
	home := t.TempDir()
	withHome(t, home)

	userCfg := DefaultConfig()
	userCfg.NATS.URL = "nats://user:4222"
	if err := userCfg.SaveToFile(filepath.Join(home, UserConfigDir, UserConfigFile)); err != nil {
		t.Fatalf("SaveToFile user config: %v", err)
	}

	project := t.TempDir()
	withCwd(t, project)

	projectCfg := DefaultConfig()
	projectCfg.NATS.URL = "nats://project:4222"
	projectCfg.Catalog.Glob = "models/**/*.yaml"
	if err := projectCfg.SaveToFile(filepath.Join(project, ProjectConfigFile)); err != nil {
		t.Fatalf("SaveToFile project config: %v", err)
	}

	cfg, err := NewLoader(nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NATS.URL != "nats://project:4222" {
		t.Errorf("expected project config to win, got %s", cfg.NATS.URL)
	}
	if cfg.Catalog.Glob != "models/**/*.yaml" {
		t.Errorf("expected project glob, got %s", cfg.Catalog.Glob)
	}
}

func TestLoaderFindProjectConfigWalksParents(t *testing.T) {
	root := t.TempDir()
	if err := DefaultConfig().SaveToFile(filepath.Join(root, ProjectConfigFile)); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	withCwd(t, nested)

	l := NewLoader(nil)
	found := l.findProjectConfig()
	want := filepath.Join(root, ProjectConfigFile)
	if found != want {
		t.Errorf("expected %s, got %s", want, found)
	}
}

func TestLoaderEnsureUserConfigCreatesDefaultOnce(t *testing.T) {
	home := t.TempDir()
	withHome(t, home)

	l := NewLoader(nil)
	if err := l.EnsureUserConfig(); err != nil {
		t.Fatalf("EnsureUserConfig: %v", err)
	}

	path := filepath.Join(home, UserConfigDir, UserConfigFile)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected user config at %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte("nats:\n  url: \"nats://kept:4222\"\n"), 0o644); err != nil {
		t.Fatalf("overwrite fixture: %v", err)
	}
	if err := l.EnsureUserConfig(); err != nil {
		t.Fatalf("EnsureUserConfig second call: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.NATS.URL != "nats://kept:4222" {
		t.Error("EnsureUserConfig must not overwrite an existing user config")
	}
}
