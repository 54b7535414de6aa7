package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/leaderboard"
	"github.com/vovakirdan/skyraid/internal/platform/tui"
	"github.com/vovakirdan/skyraid/internal/storage"
)

var (
	flagFollow bool
	flagRuns   bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores from the local database or a leaderboard service.

Examples:
  skyraid scores
  skyraid scores --runs
  skyraid scores --follow
  skyraid scores --follow --leaderboard http://localhost:8080`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagFollow, "follow", "f", false, "Keep the table open and update it live")
	scoresCmd.Flags().BoolVar(&flagRuns, "runs", false, "Show recent runs and totals from the local database")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every local score and run")
}

// openStore is swapped in tests.
var openStore = storage.Open

func runScores(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = showScores(ctx, gameCfg)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// showScores runs the view selected by the flags. The store is closed
// before it returns.
func showScores(ctx context.Context, gameCfg config.SkyraidConfig) error {
	var store *storage.Store
	remote := leaderboardURL(gameCfg)
	if remote == "" || flagRuns || flagClear {
		var err error
		store, err = openStore(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()
	}

	switch {
	case flagClear:
		if err := store.ClearScores(ctx); err != nil {
			return err
		}
		fmt.Println("All scores cleared.")
		return nil
	case flagRuns:
		return printRuns(ctx, store)
	case flagFollow:
		return followScores(ctx, gameCfg, store, remote)
	default:
		board, source := openBoard(gameCfg, store)
		return printScores(ctx, board, source)
	}
}

func printScores(ctx context.Context, board leaderboard.Board, source string) error {
	scores, err := board.FetchTopScores(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", source)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'skyraid play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %10s  %s\n", "Rank", "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %10s  %s\n", "----", "----", "-----", "----")

	for i, e := range scores {
		when := e.Date
		if t, err := e.Time(); err == nil {
			when = fmt.Sprintf("%s (%s)", e.Date, humanize.Time(t))
		}
		fmt.Printf("  %-4d  %-16s  %10s  %s\n", i+1, e.Name, humanize.Comma(int64(e.Score)), when)
	}
	return nil
}

func printRuns(ctx context.Context, store *storage.Store) error {
	stats, err := store.GetStats(ctx)
	if err != nil {
		return err
	}
	if stats.GamesCount == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("Games played:     %s\n", humanize.Comma(int64(stats.GamesCount)))
	fmt.Printf("Best score:       %s\n", humanize.Comma(int64(stats.HighScore)))
	fmt.Printf("Average score:    %s\n", humanize.CommafWithDigits(stats.AvgScore, 1))
	fmt.Printf("Best level:       %d\n", stats.BestLevel)
	fmt.Printf("Enemies downed:   %s\n", humanize.Comma(stats.TotalDestroyed))
	fmt.Printf("Longest survival: %s\n", stats.LongestSurvival)
	fmt.Printf("Last played:      %s\n", humanize.Time(stats.LastPlayed))
	fmt.Println()

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		return err
	}
	fmt.Printf("  %-16s  %8s  %5s  %5s  %8s  %s\n", "Name", "Score", "Level", "Kills", "Survived", "When")
	for _, r := range runs {
		fmt.Printf("  %-16s  %8s  %5d  %5d  %8s  %s\n",
			r.Name, humanize.Comma(int64(r.Score)), r.Level, r.Destroyed,
			r.Duration.Round(time.Second), humanize.Time(r.CreatedAt))
	}
	return nil
}

// followScores opens the live table. A remote board pushes updates over its
// websocket feed; the local database is polled.
func followScores(ctx context.Context, cfg config.SkyraidConfig, store *storage.Store, remote string) error {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if remote != "" {
		client := leaderboard.NewClient(remote, 5*time.Second)
		m := tui.NewScoreboardModel(client, remote, 0, width, height)
		return tui.RunScoreboard(ctx, m, client.Watch)
	}

	board := leaderboard.NewLocal(store, cfg.Leaderboard)
	m := tui.NewScoreboardModel(board, flagDBPath, cfg.Leaderboard.RefreshInterval(), width, height)
	return tui.RunScoreboard(ctx, m, nil)
}
