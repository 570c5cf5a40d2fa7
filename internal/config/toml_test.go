package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Engine.Lang != nil || cfg.Filter.ProcessNoise != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigParsesKnownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[engine]
lang = "en"
cache-capacity = 50

[filter]
prediction-factor = 0.5
history-capacity = 20
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Engine.Lang == nil || *cfg.Engine.Lang != "en" {
		t.Fatalf("expected lang en, got %+v", cfg.Engine)
	}
	if cfg.Engine.CacheCapacity == nil || *cfg.Engine.CacheCapacity != 50 {
		t.Fatalf("expected cache capacity 50, got %+v", cfg.Engine)
	}
	if cfg.Filter.PredictionFactor == nil || *cfg.Filter.PredictionFactor != 0.5 {
		t.Fatalf("expected prediction factor 0.5, got %+v", cfg.Filter)
	}
	if cfg.Filter.HistoryCapacity == nil || *cfg.Filter.HistoryCapacity != 20 {
		t.Fatalf("expected history capacity 20, got %+v", cfg.Filter)
	}
}

func TestLoadConfigRejectsEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
