// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Play PlayConfig `toml:"play"`
	Demo DemoConfig `toml:"demo"`
	Log  LogConfig  `toml:"log"`
}

// PlayConfig maps playback and typing settings.
type PlayConfig struct {
	Tolerance    *float64 `toml:"tolerance"`
	CollectStats *bool    `toml:"collect-stats"`
	Theme        *string  `toml:"theme"`
	TickMs       *int     `toml:"tick-ms"`
	SeekStep     *float64 `toml:"seek-step"`
	LeadOut      *float64 `toml:"lead-out"`
}

// DemoConfig maps practice track generation settings.
type DemoConfig struct {
	WordsPerLine *int     `toml:"words-per-line"`
	Lines        *int     `toml:"lines"`
	WPM          *float64 `toml:"wpm"`
	Gap          *float64 `toml:"gap"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
	File   *string `toml:"file"`
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
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
