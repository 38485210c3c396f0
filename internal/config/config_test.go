package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Expected addr ':8080', got '%s'", cfg.Addr)
	}
	if cfg.CatalogPath != "content/planets.yaml" {
		t.Errorf("Expected catalog 'content/planets.yaml', got '%s'", cfg.CatalogPath)
	}
	if cfg.StartDelay != 300*time.Millisecond {
		t.Errorf("Expected start delay 300ms, got %s", cfg.StartDelay)
	}
	if cfg.SuccessDelay != 2*time.Second {
		t.Errorf("Expected success delay 2s, got %s", cfg.SuccessDelay)
	}
	if cfg.DefaultLocale != "en-US" {
		t.Errorf("Expected locale 'en-US', got '%s'", cfg.DefaultLocale)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SPACE_ADDR", ":9999")
	t.Setenv("SPACE_SUCCESS_DELAY", "0s")
	t.Setenv("DEBUG", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("Expected addr ':9999', got '%s'", cfg.Addr)
	}
	if cfg.SuccessDelay != 0 {
		t.Errorf("Expected zero success delay, got %s", cfg.SuccessDelay)
	}
	if !cfg.Debug {
		t.Error("Expected debug on")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SPACE_ASSETS_DIR_TEST_ONLY=from-file\n"), 0o600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Setenv("SPACE_ASSETS_DIR_TEST_ONLY", "")
	os.Unsetenv("SPACE_ASSETS_DIR_TEST_ONLY")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := os.Getenv("SPACE_ASSETS_DIR_TEST_ONLY"); got != "from-file" {
		t.Errorf("Expected value from .env, got '%s'", got)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SPACE_START_DELAY", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Errorf("Expected parse env prefix, got %v", err)
	}
}

func TestLoad_NegativeDelay(t *testing.T) {
	t.Setenv("SPACE_START_DELAY", "-1s")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if !errors.Is(err, ErrNegativeDelay) {
		t.Errorf("Expected ErrNegativeDelay, got %v", err)
	}
}
