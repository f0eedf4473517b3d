package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/kanamatch/internal/config"
	"github.com/verte-zerg/kanamatch/internal/model"
)

func validConfig() model.Config {
	return model.Config{
		PartialRate: defaultPartialRate,
		WeakTop:     defaultWeakTop,
		WeakFactor:  defaultWeakFactor,
		WeakWindow:  defaultWeakWindow,
		AutoDelay:   defaultAutoDelay,
		ShakeDelay:  defaultShakeDelay,
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(validConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	cases := []struct {
		name   string
		mutate func(*model.Config)
		want   string
	}{
		{"partial rate", func(c *model.Config) { c.PartialRate = 1.5 }, "--partial-rate"},
		{"weak top", func(c *model.Config) { c.WeakTop = -1 }, "--weak-top"},
		{"weak factor", func(c *model.Config) { c.WeakFactor = -0.5 }, "--weak-factor"},
		{"weak window", func(c *model.Config) { c.WeakWindow = -2 }, "--weak-window"},
		{"auto delay", func(c *model.Config) { c.AutoDelay = 0 }, "--auto-delay"},
		{"shake delay", func(c *model.Config) { c.ShakeDelay = -time.Second }, "--shake-delay"},
	}
	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(&cfg)
		err := validateConfig(cfg)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error mentioning %s, got %v", tc.name, tc.want, err)
		}
	}
}

func TestFileConfigAppliesUnlessFlagSet(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Flags().Set("seed", "7"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	seed := int64(99)
	rate := 0.5
	weak := true
	delay := "1s"
	cfg, err := resolveGameConfig(cmd, config.GameConfig{
		Seed:        &seed,
		PartialRate: &rate,
		FocusWeak:   &weak,
		AutoDelay:   &delay,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Seed != 7 {
		t.Fatalf("flag should win over config, got seed %d", cfg.Seed)
	}
	if cfg.PartialRate != 0.5 || !cfg.FocusWeak {
		t.Fatalf("config values not applied: %+v", cfg)
	}
	if cfg.AutoDelay != time.Second {
		t.Fatalf("expected auto delay 1s, got %v", cfg.AutoDelay)
	}
	if cfg.ShakeDelay != defaultShakeDelay || cfg.WeakTop != defaultWeakTop {
		t.Fatalf("expected defaults for unset values: %+v", cfg)
	}
}

func TestFileConfigBadDuration(t *testing.T) {
	cmd := newRootCmd()
	bad := "soon"
	if _, err := resolveGameConfig(cmd, config.GameConfig{ShakeDelay: &bad}); err == nil {
		t.Fatalf("expected duration error")
	}
}

func TestResolveStatsConfig(t *testing.T) {
	root := newRootCmd()
	statsCmd, _, err := root.Find([]string{"stats"})
	if err != nil {
		t.Fatalf("find stats: %v", err)
	}
	for name, value := range map[string]string{"since": "2026-03-01", "kana": "ka, ツ"} {
		if err := statsCmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	last := 10
	cfg, err := resolveStatsConfig(statsCmd, config.StatsConfig{Last: &last})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Last != 10 || cfg.CurveWindow != defaultCurveWindow {
		t.Fatalf("unexpected limits: %+v", cfg)
	}
	if cfg.Since == nil || cfg.Since.Day() != 1 {
		t.Fatalf("unexpected since: %v", cfg.Since)
	}
	if len(cfg.Kana) != 2 || cfg.Kana[0] != 5 || cfg.Kana[1] != 17 {
		t.Fatalf("unexpected kana: %v", cfg.Kana)
	}

	if err := statsCmd.Flags().Set("kana", "zz"); err != nil {
		t.Fatalf("set kana: %v", err)
	}
	if _, err := resolveStatsConfig(statsCmd, config.StatsConfig{}); err == nil {
		t.Fatalf("expected unknown kana error")
	}
}

func TestWriteKanaList(t *testing.T) {
	var buf bytes.Buffer
	if err := writeKanaList(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 46 {
		t.Fatalf("expected 46 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[45], "ん") || !strings.HasSuffix(lines[45], "n") {
		t.Fatalf("unexpected last line %q", lines[45])
	}
}

func TestWriteConfigTemplateKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := writeConfigTemplate(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != config.Template {
		t.Fatalf("expected template contents")
	}
	if err := os.WriteFile(path, []byte("[game]\n"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := writeConfigTemplate(path); err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "[game]\n" {
		t.Fatalf("existing config was replaced")
	}
}
