package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}

	if cfg.Install.CSSDir != "." {
		t.Errorf("Default css_dir = %q, want %q", cfg.Install.CSSDir, ".")
	}

	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("Default console log level = %q, want %q", cfg.Logging.ConsoleLogger.Level, "normal")
	}

	if cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("Default file log level = %q, want %q", cfg.Logging.FileLogger.Level, "none")
	}

	if cfg.Reporting.Destination == "" {
		t.Error("Default report destination is empty")
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
install:
  css_dir: assets/css
logging:
  console:
    level: debug
  file:
    level: normal
    destination: ` + filepath.Join(tmpDir, "test.log") + `
    mode: append
reporting:
  destination: ` + filepath.Join(tmpDir, "test-report.zip") + `
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}

	if cfg.Install.CSSDir != "assets/css" {
		t.Errorf("CSSDir = %q, want %q", cfg.Install.CSSDir, "assets/css")
	}

	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("Console log level = %q, want %q", cfg.Logging.ConsoleLogger.Level, "debug")
	}

	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("File log mode = %q, want %q", cfg.Logging.FileLogger.Mode, "append")
	}
}

func TestLoadConfiguration_UnknownField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("version: 1\nno_such_section:\n  value: 1\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("LoadConfiguration() accepted unknown configuration fields")
	}
}

func TestLoadConfiguration_BadVersion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("version: 2\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("LoadConfiguration() accepted unsupported config version")
	}
}

func TestPrepareAndDump(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !strings.Contains(string(data), "version: 1") {
		t.Error("Prepare() output is missing version")
	}

	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	dump, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(dump), "css_dir:") {
		t.Error("Dump() output is missing install section")
	}
}
