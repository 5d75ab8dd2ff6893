// lumines is a terminal Lumines: 2x2 blocks fall onto a board, same-colour
// squares are marked, and a sweeping divider clears them.
//
// Usage:
//
//	lumines play             - Play a game
//	lumines menu             - Start menu with difficulty picker and high scores
//	lumines scores           - Show the ranked high-score list
//	lumines serve            - Start SSH server for remote play
//	lumines api              - Serve the high-score list as JSON over HTTP
//	lumines config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 12)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.lumines/scores.db)
//	--config <path>     - Use a custom game config YAML
//	--log-file <path>   - Write logs to a file
//	--log-level <level> - debug, info, warn or error
//
// Defaults for --db, --fps and --config can also come from the LUMINES_DB,
// LUMINES_FPS and LUMINES_CONFIG environment variables or a .env file.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()
	registerFlags()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lumines",
	Short: "Lumines - falling blocks and a sweeping divider in your terminal",
	Long: `Lumines is a falling-block puzzle for the terminal. 2x2 blocks of two
colours fall onto the board; every same-colour 2x2 square is marked, and
the divider sweeping across the board clears marked cells.

Available commands:
  play     - Play a game directly
  menu     - Interactive menu with difficulty picker and high scores
  scores   - View the ranked high-score list
  serve    - Start SSH server for remote play
  api      - Serve the high-score list as JSON over HTTP
  config   - Print the effective configuration

Examples:
  lumines play
  lumines play --difficulty hard
  lumines menu
  lumines serve --ssh :2222
  lumines api --addr :8080
  lumines scores --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// registerFlags installs the global flags. Environment variables (possibly
// from .env) supply the defaults, so it runs after godotenv.
func registerFlags() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", envInt("LUMINES_FPS", 12), "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envString("LUMINES_DB", "~/.lumines/scores.db"), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", envString("LUMINES_CONFIG", ""), "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (play and menu log nowhere otherwise)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(configCmd)
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
