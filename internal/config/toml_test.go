package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load missing config: %v", err)
	}
	if cfg.Test.Variant != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[test]
variant = "retro"
words = 30
caps = 0.25
focus-weak = true

[stats]
window = 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Test.Variant == nil || *cfg.Test.Variant != "retro" {
		t.Fatalf("unexpected variant: %v", cfg.Test.Variant)
	}
	if cfg.Test.Words == nil || *cfg.Test.Words != 30 {
		t.Fatalf("unexpected words: %v", cfg.Test.Words)
	}
	if cfg.Test.CapsPct == nil || *cfg.Test.CapsPct != 0.25 {
		t.Fatalf("unexpected caps: %v", cfg.Test.CapsPct)
	}
	if cfg.Test.FocusWeak == nil || !*cfg.Test.FocusWeak {
		t.Fatalf("expected focus-weak to be set")
	}
	if cfg.Test.Texts != nil {
		t.Fatalf("expected texts to stay unset")
	}
	if cfg.Stats.Window == nil || *cfg.Stats.Window != 5 {
		t.Fatalf("unexpected stats window: %v", cfg.Stats.Window)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[test]\ntheme = \"neon\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "test.theme") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsHonourXDG(t *testing.T) {
	// Registered first so it runs after the env is restored.
	t.Cleanup(Reload)
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	Reload()
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "monkeytui", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "monkeytui", "monkeytui.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "monkeytui", "monkeytui.log") {
		t.Fatalf("unexpected log path %q", got)
	}
}
