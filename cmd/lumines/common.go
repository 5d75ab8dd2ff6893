package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lumines/internal/config"
	"github.com/vovakirdan/tui-lumines/internal/core"
	"github.com/vovakirdan/tui-lumines/internal/games/lumines"
	"github.com/vovakirdan/tui-lumines/internal/storage"
)

// leaderboardSize reads the number of ranked places from the game config.
func leaderboardSize() int {
	cfg, err := config.LoadLumines(flagConfig)
	if err != nil || cfg.Scoring.LeaderboardSize <= 0 {
		return config.DefaultLuminesConfig().Scoring.LeaderboardSize
	}
	return cfg.Scoring.LeaderboardSize
}

// checkConfig logs when the game will fall back to the default config
// because the configured file cannot be used.
func checkConfig(logger *log.Logger) {
	if _, source, err := config.LoadLuminesFrom(flagConfig); err != nil {
		logger.Warn("config unusable, playing with defaults", "source", source, "err", err)
	} else {
		logger.Debug("config loaded", "source", source)
	}
}

// openRanking opens the score database. The game still works without it,
// so a failure is only a warning and returns nils.
func openRanking() (*storage.Store, *storage.Ranking) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil, nil
	}
	return store, storage.NewRanking(store, lumines.GameID, leaderboardSize())
}

// asRanker keeps a nil ranking a nil interface.
func asRanker(r *storage.Ranking) core.Ranker {
	if r == nil {
		return nil
	}
	return r
}

// applyGameFlags hands --config and --difficulty to the game package.
func applyGameFlags(difficulty string) error {
	if difficulty != "" {
		if _, ok := config.ParsePreset(difficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", difficulty)
		}
	}
	lumines.SetConfigPath(flagConfig)
	lumines.SetDifficultyPreset(difficulty)
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
