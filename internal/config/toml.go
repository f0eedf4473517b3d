// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game  GameConfig  `toml:"game"`
	Stats StatsConfig `toml:"stats"`
}

// GameConfig maps game settings. Nil fields are unset.
type GameConfig struct {
	Seed        *int64   `toml:"seed"`
	PartialRate *float64 `toml:"partial-rate"`
	FocusWeak   *bool    `toml:"focus-weak"`
	WeakTop     *int     `toml:"weak-top"`
	WeakFactor  *float64 `toml:"weak-factor"`
	WeakWindow  *int     `toml:"weak-window"`
	AutoDelay   *string  `toml:"auto-delay"`
	ShakeDelay  *string  `toml:"shake-delay"`
	LogLevel    *string  `toml:"log-level"`
}

// StatsConfig maps stats browser settings.
type StatsConfig struct {
	Last        *int `toml:"last"`
	CurveWindow *int `toml:"curve-window"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Template is written by `kanamatch config` when no file exists yet.
const Template = `# kanamatch configuration

[game]
# seed = 0            # 0 picks a new seed per game
# partial-rate = 0.25 # chance a new kana arrives with types missing
# focus-weak = false
# weak-top = 8
# weak-factor = 2.0
# weak-window = 20
# auto-delay = "400ms"
# shake-delay = "350ms"
# log-level = "info"

[stats]
# last = 0
# curve-window = 5
`
