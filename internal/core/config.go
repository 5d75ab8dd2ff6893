package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 12)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 12,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Current score
	GameOver  bool // Whether the game has ended
	Paused    bool // Whether the game is paused
	Qualified bool // Whether the final score earned a place in the ranked list
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState
}

// Ranker decides whether a final score earns a place in the ranked
// high-score list and records named entries.
type Ranker interface {
	Qualifies(score int) bool
	Record(name string, score int) error
}

// NopRanker never qualifies a score. Used when no score store is available.
type NopRanker struct{}

// Qualifies always reports false.
func (NopRanker) Qualifies(int) bool { return false }

// Record discards the entry.
func (NopRanker) Record(string, int) error { return nil }
