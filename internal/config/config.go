// Package config provides YAML-based configuration loading and difficulty
// management for Stem the Tide.
package config

import (
	"fmt"
	"time"
)

// TideConfig contains all configuration for the game.
type TideConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Flood      FloodConfig      `yaml:"flood"`
	Display    DisplayConfig    `yaml:"display"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig defines the board geometry.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Border int `yaml:"border"` // Metadata band reserved on every edge
}

// FloodConfig defines the pace of the tide.
type FloodConfig struct {
	RowIntervalMS int `yaml:"row_interval_ms"` // Time for the tide to advance one row
}

// DisplayConfig defines presentation options.
type DisplayConfig struct {
	ShowShadow bool `yaml:"show_shadow"` // Draw the shadow preview on empty ground
	ShowHelp   bool `yaml:"show_help"`   // Draw the key help footer
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases across the campaign.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Level index at which max difficulty is reached, 0 = last level
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Flood speed added at max difficulty
	MinIntervalMS   int     `yaml:"min_interval_ms"`  // Fastest allowed row interval
}

// RowInterval returns the configured base row interval.
func (c TideConfig) RowInterval() time.Duration {
	return time.Duration(c.Flood.RowIntervalMS) * time.Millisecond
}

// Validate checks that the configuration describes a playable board.
func (c TideConfig) Validate() error {
	if c.Grid.Border < 0 {
		return fmt.Errorf("config: negative border %d", c.Grid.Border)
	}
	// The progress strip needs a border row, and the board needs room to play.
	if c.Grid.Width <= 2*c.Grid.Border || c.Grid.Height <= 2*c.Grid.Border {
		return fmt.Errorf("config: grid %dx%d leaves no playable area inside border %d",
			c.Grid.Width, c.Grid.Height, c.Grid.Border)
	}
	if c.Grid.Width > 255 || c.Grid.Height > 255 {
		return fmt.Errorf("config: grid %dx%d exceeds 255 cells per side", c.Grid.Width, c.Grid.Height)
	}
	if c.Flood.RowIntervalMS <= 0 {
		return fmt.Errorf("config: row_interval_ms must be positive, got %d", c.Flood.RowIntervalMS)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a string to a DifficultyPreset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
