// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Engine EngineConfig `toml:"engine"`
	Filter FilterConfig `toml:"filter"`
}

// EngineConfig maps correction-engine settings. Pointer fields are nil
// when the key is absent, so flag defaults stay in effect.
type EngineConfig struct {
	Lang           *string `toml:"lang"`
	CacheCapacity  *int    `toml:"cache-capacity"`
	MaxSuggestions *int    `toml:"max-suggestions"`
	MaxDistance    *int    `toml:"max-distance"`
	LearnedCap     *int    `toml:"learned-cap"`
}

// FilterConfig maps gaze-filter tuning.
type FilterConfig struct {
	PredictionFactor   *float64 `toml:"prediction-factor"`
	ProcessNoise       *float64 `toml:"process-noise"`
	MeasurementNoise   *float64 `toml:"measurement-noise"`
	SmoothingFactor    *float64 `toml:"smoothing-factor"`
	StabilityThreshold *float64 `toml:"stability-threshold"`
	HistoryCapacity    *int     `toml:"history-capacity"`
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
