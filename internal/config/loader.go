package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/stem-the-tide/internal/engine"
	"github.com/vovakirdan/stem-the-tide/internal/levels"
)

// ConfigFile is the name of the configuration file in every search location.
const ConfigFile = "tide.yaml"

// LoadTide loads the game configuration.
// Search order: customPath -> ~/.tide/configs/tide.yaml -> ./configs/tide.yaml -> embedded default
//
// Files are decoded over DefaultTideConfig, so a file may set only the keys it
// cares about.
func LoadTide(customPath string) (TideConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TideConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return TideConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultTideYAML)
	if err != nil {
		return DefaultTideConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes and validates a configuration file.
func parse(data []byte) (TideConfig, error) {
	cfg := DefaultTideConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TideConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return TideConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// UserDir returns ~/.tide, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tide")
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *TideConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the base pace
	switch preset {
	case DifficultyEasy:
		cfg.Flood.RowIntervalMS = 150
	case DifficultyHard:
		cfg.Flood.RowIntervalMS = 70
	}
}

// EngineOptions converts the configuration into controller options.
func (c TideConfig) EngineOptions() engine.Options {
	opts := engine.Options{
		Width:       c.Grid.Width,
		Height:      c.Grid.Height,
		Border:      c.Grid.Border,
		RowInterval: c.RowInterval(),
	}
	dm := NewDifficultyManager(c.Difficulty)
	if dm.IsEnabled() {
		opts.Pace = dm.Pace(c.RowInterval())
	}
	return opts
}

// Geometry returns the board geometry levels are validated against.
func (c TideConfig) Geometry() levels.Geometry {
	return levels.Geometry{Width: c.Grid.Width, Height: c.Grid.Height, Border: c.Grid.Border}
}
