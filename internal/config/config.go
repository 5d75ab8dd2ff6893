// Package config provides YAML-based game configuration loading and
// difficulty management for Lumines.
package config

import (
	"errors"
	"fmt"
)

// LuminesConfig contains all configuration for the Lumines game.
type LuminesConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid dimensions in cells.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// TimingConfig defines pacing in milliseconds. The game converts each value
// to ticks at the runtime tick rate.
type TimingConfig struct {
	FallIntervalMs   int `yaml:"fall_interval_ms"`   // automatic descent of one row
	ColumnSweepMs    int `yaml:"column_sweep_ms"`    // divider travel across one column
	RotateDebounceMs int `yaml:"rotate_debounce_ms"` // minimum gap between rotations
}

// ScoringConfig defines scoring and ranking parameters.
type ScoringConfig struct {
	EmptyBoardBonus int `yaml:"empty_board_bonus"`
	LeaderboardSize int `yaml:"leaderboard_size"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Fall speed gained at max difficulty
}

// Validate reports every problem with the configuration.
func (c LuminesConfig) Validate() error {
	var errs []error
	if c.Board.Rows < 2 || c.Board.Cols < 2 {
		errs = append(errs, fmt.Errorf("board must be at least 2x2, got %dx%d", c.Board.Rows, c.Board.Cols))
	}
	if c.Timing.FallIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("fall_interval_ms must be positive, got %d", c.Timing.FallIntervalMs))
	}
	if c.Timing.ColumnSweepMs <= 0 {
		errs = append(errs, fmt.Errorf("column_sweep_ms must be positive, got %d", c.Timing.ColumnSweepMs))
	}
	if c.Timing.RotateDebounceMs < 0 {
		errs = append(errs, fmt.Errorf("rotate_debounce_ms must not be negative, got %d", c.Timing.RotateDebounceMs))
	}
	if c.Scoring.EmptyBoardBonus < 0 {
		errs = append(errs, fmt.Errorf("empty_board_bonus must not be negative, got %d", c.Scoring.EmptyBoardBonus))
	}
	if c.Scoring.LeaderboardSize <= 0 {
		errs = append(errs, fmt.Errorf("leaderboard_size must be positive, got %d", c.Scoring.LeaderboardSize))
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "time":
	default:
		errs = append(errs, fmt.Errorf("unknown progression type %q", c.Difficulty.Progression.Type))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid lumines config: %w", err)
	}
	return nil
}

// MsToTicks converts a duration in milliseconds to whole ticks at
// tickRate ticks per second, rounding to nearest.
func MsToTicks(ms, tickRate int) int {
	return (ms*tickRate + 500) / 1000
}

// FallEvery returns the automatic descent cadence in ticks (at least 1).
func (t TimingConfig) FallEvery(tickRate int) int {
	return max(1, MsToTicks(t.FallIntervalMs, tickRate))
}

// MinSweepSpan is the fewest ticks the divider spends on one column.
const MinSweepSpan = 2

// SweepSpan returns the ticks the divider spends on one column (at least
// MinSweepSpan).
func (t TimingConfig) SweepSpan(tickRate int) int {
	return max(MinSweepSpan, MsToTicks(t.ColumnSweepMs, tickRate))
}

// RotateDebounce returns the rotation debounce in ticks.
func (t TimingConfig) RotateDebounce(tickRate int) int {
	return MsToTicks(t.RotateDebounceMs, tickRate)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values return false.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
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
