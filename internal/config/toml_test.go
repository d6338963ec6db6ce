package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.Puzzle.Code != nil || cfg.Input.CooldownMs != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[puzzle]
alphabet = ["A", "B", "C"]
code = ["B", "A"]

[input]
cooldown-ms = 250
drag-threshold = 3.5

[reveal]
delay-ms = 100

[audio]
mute = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Puzzle.Alphabet == nil || len(*cfg.Puzzle.Alphabet) != 3 {
		t.Fatalf("unexpected alphabet: %+v", cfg.Puzzle.Alphabet)
	}
	if cfg.Puzzle.Code == nil || (*cfg.Puzzle.Code)[0] != "B" {
		t.Fatalf("unexpected code: %+v", cfg.Puzzle.Code)
	}
	if cfg.Input.CooldownMs == nil || *cfg.Input.CooldownMs != 250 {
		t.Fatalf("unexpected cooldown: %+v", cfg.Input.CooldownMs)
	}
	if cfg.Input.DragThreshold == nil || *cfg.Input.DragThreshold != 3.5 {
		t.Fatalf("unexpected drag threshold: %+v", cfg.Input.DragThreshold)
	}
	if cfg.Input.TapWindowMs != nil {
		t.Fatalf("expected unset tap window to stay nil")
	}
	if cfg.Reveal.DelayMs == nil || *cfg.Reveal.DelayMs != 100 {
		t.Fatalf("unexpected reveal delay: %+v", cfg.Reveal.DelayMs)
	}
	if cfg.Audio.Mute == nil || !*cfg.Audio.Mute {
		t.Fatalf("unexpected mute: %+v", cfg.Audio.Mute)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "cryptex", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "cryptex", "cryptex.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
}
