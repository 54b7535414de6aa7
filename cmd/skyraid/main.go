// skyraid is a single-player vertical shooter for the terminal.
//
// Usage:
//
//	skyraid play             - Play in this terminal
//	skyraid serve            - Start SSH server for remote play
//	skyraid api              - Start the leaderboard HTTP service
//	skyraid scores           - Show high scores
//	skyraid config           - Print the game configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.skyraid/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <name>   - easy, normal, hard, fixed
//	--leaderboard <url>   - Use a remote leaderboard service
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/leaderboard"
	"github.com/vovakirdan/skyraid/internal/storage"
)

var (
	// Global flags
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagConfig      string
	flagDifficulty  string
	flagLeaderboard string
	flagLogFile     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyraid",
	Short: "Skyraid - a vertical shooter in your terminal",
	Long: `Skyraid is a single-player arcade shooter. Fly, shoot the falling
enemies, pick up power-ups and survive as long as you can.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  api      - Start the leaderboard HTTP service
  scores   - View high scores
  config   - Print the game configuration

Examples:
  skyraid play
  skyraid play --difficulty hard
  skyraid serve --ssh :2222
  skyraid api --addr :8080
  skyraid scores --follow --leaderboard http://localhost:8080`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvironment,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyraid/scores.db", "Path to scores database [$SKYRAID_DB]")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLeaderboard, "leaderboard", "", "Leaderboard service URL (empty = local database) [$SKYRAID_LEADERBOARD_URL]")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.skyraid/skyraid.log", "Log file for the terminal game [$SKYRAID_LOG_FILE]")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadEnvironment reads .env and lets environment variables fill flags the
// user did not set.
func loadEnvironment(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	for name, key := range map[string]string{
		"db":          "SKYRAID_DB",
		"leaderboard": "SKYRAID_LEADERBOARD_URL",
		"log-file":    "SKYRAID_LOG_FILE",
	} {
		if flags.Changed(name) {
			continue
		}
		if v := config.GetEnv(key, ""); v != "" {
			if err := flags.Set(name, v); err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
		}
	}
	return nil
}

// loadGameConfig loads the config file and applies the difficulty preset.
// The flag wins over the file's difficulty.
func loadGameConfig() (config.SkyraidConfig, error) {
	cfg, err := config.LoadSkyraid(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset := cfg.Difficulty
	if flagDifficulty != "" {
		preset = config.ParseDifficultyPreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
	}
	config.ApplySkyraidPreset(&cfg, preset)
	return cfg, nil
}

// leaderboardURL returns the remote leaderboard, flag before config.
func leaderboardURL(cfg config.SkyraidConfig) string {
	if flagLeaderboard != "" {
		return flagLeaderboard
	}
	return cfg.Leaderboard.URL
}

// openBoard returns the remote board when a URL is configured, otherwise a
// local board over store. Returns nil when neither is available.
func openBoard(cfg config.SkyraidConfig, store *storage.Store) (leaderboard.Board, string) {
	if url := leaderboardURL(cfg); url != "" {
		return leaderboard.NewClient(url, 5*time.Second), url
	}
	if store == nil {
		return nil, ""
	}
	return leaderboard.NewLocal(store, cfg.Leaderboard), flagDBPath
}

func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}
