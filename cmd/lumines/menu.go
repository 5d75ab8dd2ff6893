package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lumines/internal/games/lumines"
	"github.com/vovakirdan/tui-lumines/internal/platform/tui"
	"github.com/vovakirdan/tui-lumines/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Lumines with a menu",
	Long: `Start Lumines in interactive menu mode.

Pick Play, High Scores or Quit, and choose a difficulty preset on the
Difficulty row. After a game you return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right      - Change difficulty
  Enter/Space     - Select
  Q               - Quit

Examples:
  lumines menu
  lumines menu --fps 30
  lumines menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Preselected difficulty preset")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(flagDifficulty); err != nil {
		return err
	}

	logger, closeLog, err := newLogger("lumines", true)
	if err != nil {
		return err
	}
	defer closeLog()
	checkConfig(logger)

	store, ranking := openRanking()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	difficulty := flagDifficulty

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg, difficulty)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config
		difficulty = menuResult.Difficulty

		switch menuResult.Choice {
		case tui.ChoiceScores:
			goBack, sbErr := tui.RunScoreboard(ranking, "Lumines", cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return nil
			}

		case tui.ChoicePlay:
			lumines.SetDifficultyPreset(difficulty)
			game, err := registry.Create(lumines.GameID)
			if err != nil {
				return fmt.Errorf("creating game: %w", err)
			}

			// Fresh seed for each game unless one was given
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			if err := tui.Run(game, asRanker(ranking), logger, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			}

		default:
			return nil
		}
	}
}
