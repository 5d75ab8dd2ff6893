package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lumines/internal/games/lumines"
	"github.com/vovakirdan/tui-lumines/internal/platform/tui"
	"github.com/vovakirdan/tui-lumines/internal/registry"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing Lumines.

Controls:
  Up/W/Space - Rotate clockwise
  Left/A     - Move left
  Right/D    - Move right
  Down/S     - Drop one row
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at the base fall speed, speeds up as you score
  normal - Start 30% of the way to max speed
  hard   - Start 70% of the way to max speed
  fixed  - No progression, stays at the config's fall speed

Examples:
  lumines play
  lumines play --difficulty hard
  lumines play --config ./my-lumines.yaml
  lumines play --fps 30 --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(flagDifficulty); err != nil {
		return err
	}

	logger, closeLog, err := newLogger("lumines", true)
	if err != nil {
		return err
	}
	defer closeLog()
	checkConfig(logger)

	game, err := registry.Create(lumines.GameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, ranking := openRanking()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, asRanker(ranking), logger, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
