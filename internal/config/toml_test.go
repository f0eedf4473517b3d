package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.Seed != nil || cfg.Stats.Last != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[game]\nseed = 7\npartial-rate = 0.5\nfocus-weak = true\nauto-delay = \"1s\"\n\n[stats]\ncurve-window = 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.Seed == nil || *cfg.Game.Seed != 7 {
		t.Fatalf("unexpected seed %v", cfg.Game.Seed)
	}
	if cfg.Game.PartialRate == nil || *cfg.Game.PartialRate != 0.5 {
		t.Fatalf("unexpected partial rate %v", cfg.Game.PartialRate)
	}
	if cfg.Game.FocusWeak == nil || !*cfg.Game.FocusWeak {
		t.Fatalf("expected focus-weak")
	}
	if cfg.Game.AutoDelay == nil || *cfg.Game.AutoDelay != "1s" {
		t.Fatalf("unexpected auto delay %v", cfg.Game.AutoDelay)
	}
	if cfg.Game.WeakTop != nil {
		t.Fatalf("expected weak-top unset")
	}
	if cfg.Stats.CurveWindow == nil || *cfg.Stats.CurveWindow != 3 {
		t.Fatalf("unexpected curve window %v", cfg.Stats.CurveWindow)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[game]\nwords = 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "game.words") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(Template), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("template should decode: %v", err)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "cfg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	if got := DefaultConfigPath(); got != filepath.Join(dir, "cfg", "kanamatch", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join(dir, "data", "kanamatch", "kanamatch.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join(dir, "state", "kanamatch", "kanamatch.log") {
		t.Fatalf("unexpected log path %s", got)
	}
}
