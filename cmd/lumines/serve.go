package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lumines/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Lumines SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the main menu.
Scores are stored per-server (all users share the same high-score list).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lumines/host_key

Examples:
  lumines serve                           # Listen on :23234 with auto-generated key
  lumines serve --ssh :2222               # Listen on port 2222
  lumines serve --host-key ./my_host_key  # Use specific host key
  lumines serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(""); err != nil {
		return err
	}

	logger, closeLog, err := newLogger("lumines-ssh", false)
	if err != nil {
		return err
	}
	defer closeLog()
	checkConfig(logger)

	cfg := tui.SSHServerConfig{
		Address:         flagSSHAddr,
		HostKeyPath:     flagHostKey,
		DBPath:          flagDBPath,
		IdleTimeout:     time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:        flagFPS,
		LeaderboardSize: leaderboardSize(),
		Logger:          logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Lumines SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
