// Package tui provides the Bubble Tea integration for skyraid.
// It handles the terminal UI loop, input mapping, and leaderboard plumbing.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyraid/internal/leaderboard"
)

// leaderboardTimeout bounds every leaderboard call made from the UI.
const leaderboardTimeout = 5 * time.Second

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// SpawnMsg asks the game to spawn one enemy.
type SpawnMsg struct{}

// RefreshMsg asks for the top scores to be reloaded.
type RefreshMsg struct{}

// ScoresMsg carries the result of a leaderboard fetch.
type ScoresMsg struct {
	Scores []leaderboard.Entry
	Err    error
}

// SubmittedMsg carries the result of a score submission.
type SubmittedMsg struct {
	OK  bool
	Err error
}

// BestMsg carries the best recorded run score.
type BestMsg struct {
	Score int
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// spawnCmd schedules the next spawn. The caller re-reads the interval each
// time so level-ups shorten the next wait.
func spawnCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return SpawnMsg{}
	})
}

func refreshCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return RefreshMsg{}
	})
}

func fetchScoresCmd(board leaderboard.Board) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), leaderboardTimeout)
		defer cancel()
		scores, err := board.FetchTopScores(ctx)
		return ScoresMsg{Scores: scores, Err: err}
	}
}

func submitScoreCmd(board leaderboard.Board, name string, score int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), leaderboardTimeout)
		defer cancel()
		ok, err := board.SubmitScore(ctx, name, score)
		return SubmittedMsg{OK: ok, Err: err}
	}
}
