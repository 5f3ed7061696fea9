package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.ConfirmDelete {
		t.Error("expected ConfirmDelete to default to true")
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q, want INFO", cfg.LogLevel)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := DefaultConfig()
	cfg.ConfirmDelete = false
	cfg.LogLevel = "DEBUG"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(home, ".taskboard", "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ConfirmDelete {
		t.Error("ConfirmDelete not persisted")
	}
	if loaded.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want DEBUG", loaded.LogLevel)
	}
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TASKBOARD_LOG_LEVEL", "WARN")

	cfg := DefaultConfig()
	if cfg.LogLevel != "WARN" {
		t.Errorf("LogLevel = %q, want WARN", cfg.LogLevel)
	}
}
