package config

import (
	"math"
	"time"
)

// DifficultyManager calculates the flood pace from campaign progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty (0.0 to 1.0) for a level index within a
// campaign of total levels.
func (d *DifficultyManager) Level(index, total int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "level" {
		return d.initialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = total - 1
	}
	if maxAt <= 0 {
		return d.initialLevel
	}

	progress := clampF(float64(index)/float64(maxAt), 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// RowInterval returns the row interval for a level: the base interval divided
// by the speed-up at the current difficulty, never below the configured floor.
func (d *DifficultyManager) RowInterval(base time.Duration, index, total int) time.Duration {
	level := d.Level(index, total)
	speed := 1.0 + level*d.cfg.Scaling.SpeedMultiplier
	interval := time.Duration(float64(base) / speed)

	floor := time.Duration(d.cfg.Scaling.MinIntervalMS) * time.Millisecond
	if floor > 0 && interval < floor {
		interval = floor
	}
	return interval.Round(time.Millisecond)
}

// Pace returns a function suitable for engine.Options.Pace.
func (d *DifficultyManager) Pace(base time.Duration) func(index, total int) time.Duration {
	return func(index, total int) time.Duration {
		return d.RowInterval(base, index, total)
	}
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
