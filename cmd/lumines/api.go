package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lumines/internal/games/lumines"
	"github.com/vovakirdan/tui-lumines/internal/platform/httpapi"
	"github.com/vovakirdan/tui-lumines/internal/storage"
)

var (
	flagAPIAddr    string
	flagAPITimeout time.Duration
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the high-score list as JSON over HTTP",
	Long: `Start a read-only HTTP API over the scores database.

Endpoints:
  GET /health            - liveness probe
  GET /api/scores        - ranked high-score list (?limit=N)
  GET /api/stats         - games played, best, average, last played

Examples:
  lumines api
  lumines api --addr :9000
  curl localhost:8080/api/scores?limit=3`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	def := httpapi.DefaultConfig()
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", def.Address, "HTTP listen address (host:port)")
	apiCmd.Flags().DurationVar(&flagAPITimeout, "timeout", def.RequestTimeout, "Per-request timeout")
}

func runAPI(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("lumines-api", false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	ranking := storage.NewRanking(store, lumines.GameID, leaderboardSize())
	server := httpapi.New(ranking, logger, httpapi.Config{
		Address:        flagAPIAddr,
		RequestTimeout: flagAPITimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving Lumines scores on http://localhost:%s\n", portOf(server.Addr()))
	return server.ListenAndServe(ctx)
}

// portOf returns the port of a host:port address, or the address itself.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
