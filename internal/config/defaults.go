package config

import (
	_ "embed"
)

//go:embed defaults/lumines.yaml
var defaultLuminesYAML []byte

// DefaultLuminesConfig returns the default Lumines configuration.
func DefaultLuminesConfig() LuminesConfig {
	return LuminesConfig{
		Board: BoardConfig{
			Rows: 10,
			Cols: 16,
		},
		Timing: TimingConfig{
			FallIntervalMs:   1000,
			ColumnSweepMs:    416,
			RotateDebounceMs: 100,
		},
		Scoring: ScoringConfig{
			EmptyBoardBonus: 15,
			LeaderboardSize: 5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 200,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultLuminesYAML
}
