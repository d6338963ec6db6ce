// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Puzzle PuzzleConfig `toml:"puzzle"`
	Input  InputConfig  `toml:"input"`
	Reveal RevealConfig `toml:"reveal"`
	Audio  AudioConfig  `toml:"audio"`
}

// PuzzleConfig maps the alphabet and secret code.
type PuzzleConfig struct {
	Alphabet     *[]string `toml:"alphabet"`
	Code         *[]string `toml:"code"`
	AlphabetFile *string   `toml:"alphabet-file"`
}

// InputConfig maps gesture and cooldown tuning.
type InputConfig struct {
	DragThreshold *float64 `toml:"drag-threshold"`
	TapWindowMs   *int     `toml:"tap-window-ms"`
	TapDistance   *float64 `toml:"tap-distance"`
	CooldownMs    *int     `toml:"cooldown-ms"`
	CellWidth     *float64 `toml:"cell-width"`
	CellHeight    *float64 `toml:"cell-height"`
}

// RevealConfig maps reveal timing.
type RevealConfig struct {
	DelayMs *int `toml:"delay-ms"`
}

// AudioConfig maps cue playback settings.
type AudioConfig struct {
	Mute   *bool    `toml:"mute"`
	Volume *float64 `toml:"volume"`
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
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
