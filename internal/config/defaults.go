package config

import (
	_ "embed"
)

//go:embed defaults/tide.yaml
var defaultTideYAML []byte

// DefaultTideConfig returns the default configuration.
func DefaultTideConfig() TideConfig {
	return TideConfig{
		Grid: GridConfig{
			Width:  64,
			Height: 64,
			Border: 3,
		},
		Flood: FloodConfig{
			RowIntervalMS: 100,
		},
		Display: DisplayConfig{
			ShowShadow: false,
			ShowHelp:   true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 0,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.6,
				MinIntervalMS:   40,
			},
		},
	}
}
