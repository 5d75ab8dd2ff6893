package config

import "math"

// DifficultyManager calculates the fall cadence from score or time.
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

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.cfg.Enabled || d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	// Interpolate from initial level to 1.0
	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FallEvery shortens the base descent cadence as difficulty rises. At
// level 1 pieces fall (1 + speed_multiplier) times faster. Never below 1.
func (d *DifficultyManager) FallEvery(base int, score int, ticks int) int {
	level := d.Level(score, ticks)
	speed := 1.0 + level*d.cfg.Scaling.SpeedMultiplier
	if speed <= 0 {
		return max(1, base)
	}
	return max(1, int(math.Round(float64(base)/speed)))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
