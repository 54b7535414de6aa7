package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyraid/internal/leaderboard"
	"github.com/vovakirdan/skyraid/internal/storage"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the leaderboard HTTP service",
	Long: `Serve the local scores database over HTTP so other players can share it.

Endpoints:
  GET  /api/high-scores   Top scores as JSON
  POST /api/save-score    Save {"name", "score"}, returns {"success", "scores"}
  GET  /api/game-state    Game tuning table
  GET  /api/live          WebSocket feed of the top scores (msgpack)

Examples:
  skyraid api
  skyraid api --addr :9000 --db ./scores.db
  skyraid play --leaderboard http://localhost:8080`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runAPI(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(os.Stderr, "skyraid-api")
	server := leaderboard.NewServer(leaderboard.NewLocal(store, gameCfg.Leaderboard), gameCfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := server.Run(ctx, flagAPIAddr)
	store.Close()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", runErr)
		os.Exit(1)
	}
}
