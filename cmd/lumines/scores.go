package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lumines/internal/games/lumines"
	"github.com/vovakirdan/tui-lumines/internal/storage"
)

var flagScoresJSON bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the ranked high-score list",
	Long: `Display the ranked high-score list. The number of places comes from
scoring.leaderboard_size in the game config (default 5).

Examples:
  lumines scores
  lumines scores --json
  lumines scores --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresJSON, "json", false, "Print the list as JSON")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	ranking := storage.NewRanking(store, lumines.GameID, leaderboardSize())
	scores, err := ranking.Entries()
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	if flagScoresJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scores)
	}

	fmt.Println("High Scores - Lumines")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'lumines play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-*s  %-10s  %s\n", "Rank", storage.MaxNameLength, "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-*s  %-10s  %s\n", "----", storage.MaxNameLength, "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-*s  %-10d  %s\n", i+1, storage.MaxNameLength, entry.Name, entry.Score, dateStr)
	}

	if stats, err := store.GetGameStats(lumines.GameID); err == nil {
		fmt.Println()
		fmt.Printf("Games played: %d  Average: %.1f\n", stats.GamesCount, stats.AvgScore)
	}
	return nil
}
