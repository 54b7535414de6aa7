package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid"
	"github.com/vovakirdan/skyraid/internal/leaderboard"
	"github.com/vovakirdan/skyraid/internal/storage"
)

type fakeBoard struct {
	entries   []leaderboard.Entry
	submitted []leaderboard.Entry
	fetchErr  error
}

func (b *fakeBoard) FetchTopScores(context.Context) ([]leaderboard.Entry, error) {
	if b.fetchErr != nil {
		return nil, b.fetchErr
	}
	return b.entries, nil
}

func (b *fakeBoard) SubmitScore(_ context.Context, name string, score int) (bool, error) {
	e := leaderboard.Entry{Name: name, Score: score}
	b.submitted = append(b.submitted, e)
	b.entries = append(b.entries, e)
	return true, nil
}

// narrowArenaConfig makes every enemy cover the player's column so a single
// falling enemy is both shootable and lethal.
func narrowArenaConfig() config.SkyraidConfig {
	cfg := config.DefaultSkyraidConfig()
	cfg.Arena.Width = 60
	cfg.Player.MaxHealth = 10
	cfg.Enemies.ContactDamage = 10
	cfg.Enemies.Fast.Weight = 0
	cfg.Enemies.Tank.Weight = 0
	cfg.Powerups.DropChance = 0
	return cfg
}

func newTestModel(board leaderboard.Board) Model {
	return NewModel(Options{
		Runtime: core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 1},
		Game:    narrowArenaConfig(),
		Board:   board,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func spaceKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

// runUntilGameOver ticks past the hold window, spawning a new enemy whenever
// the arena is empty, until the session ends.
func runUntilGameOver(t *testing.T, m Model) Model {
	t.Helper()
	later := time.Now().Add(time.Second)
	for range 5000 {
		if len(m.Game().View().Enemies) == 0 {
			m, _ = update(t, m, SpawnMsg{})
		}
		m, _ = update(t, m, TickMsg(later))
		if m.Game().Phase() == skyraid.PhaseGameOver {
			return m
		}
	}
	t.Fatal("game never ended")
	return m
}

func TestModelStartsOnEnter(t *testing.T) {
	m := newTestModel(nil)
	if m.Game().Phase() != skyraid.PhaseStart {
		t.Fatalf("phase = %v, want start", m.Game().Phase())
	}

	m, _ = update(t, m, SpawnMsg{})
	if len(m.Game().View().Enemies) != 0 {
		t.Error("spawn before start should be ignored")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, TickMsg(time.Now()))
	if m.Game().Phase() != skyraid.PhasePlaying {
		t.Errorf("phase = %v, want playing", m.Game().Phase())
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	m, cmd = update(t, m, SpawnMsg{})
	if len(m.Game().View().Enemies) != 1 {
		t.Error("spawn while playing should add an enemy")
	}
	if cmd == nil {
		t.Error("spawn should schedule the next spawn")
	}
}

func TestModelHeldFire(t *testing.T) {
	m := newTestModel(nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, spaceKey())
	m, _ = update(t, m, TickMsg(time.Now()))

	if n := len(m.Game().View().Bullets); n != 1 {
		t.Errorf("bullets after held fire = %d, want 1", n)
	}
}

func TestModelGameOverPromptsForName(t *testing.T) {
	board := &fakeBoard{}
	m := newTestModel(board)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, SpawnMsg{})

	// Shoot the first enemy down.
	for range 300 {
		m, _ = update(t, m, spaceKey())
		m, _ = update(t, m, TickMsg(time.Now()))
		if m.Game().Destroyed() > 0 {
			break
		}
	}
	if m.Game().Score() == 0 {
		t.Fatal("expected a kill while holding fire")
	}

	m = runUntilGameOver(t, m)
	if !m.Prompting() {
		t.Fatal("name prompt should open for a non-zero score")
	}

	// Keys go to the prompt while it is open.
	for _, r := range "ace" {
		m, _ = update(t, m, runeKey(r))
	}
	m, _ = update(t, m, runeKey('r'))
	if m.Game().Phase() != skyraid.PhaseGameOver {
		t.Error("typing r in the prompt must not restart")
	}
	if m.IsQuitting() {
		t.Error("typing in the prompt must not quit")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Prompting() {
		t.Error("enter should close the prompt")
	}
	if cmd == nil {
		t.Fatal("enter should submit the score")
	}
	msg := cmd()
	if len(board.submitted) != 1 || board.submitted[0].Name != "acer" || board.submitted[0].Score != m.Game().Score() {
		t.Errorf("submitted = %+v", board.submitted)
	}

	m, cmd = update(t, m, msg)
	if cmd == nil {
		t.Fatal("successful submission should refresh the scores")
	}
	m, _ = update(t, m, cmd())
	if len(m.Scores()) != 1 {
		t.Errorf("scores after refresh = %v", m.Scores())
	}

	// With the prompt closed, r restarts.
	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.Game().Phase() != skyraid.PhasePlaying {
		t.Errorf("phase after restart = %v", m.Game().Phase())
	}
}

func TestModelNoPromptForZeroScore(t *testing.T) {
	board := &fakeBoard{}
	m := newTestModel(board)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg(time.Now()))

	m = runUntilGameOver(t, m)
	if m.Game().Score() != 0 {
		t.Fatalf("score = %d, want 0", m.Game().Score())
	}
	if m.Prompting() {
		t.Error("prompt should not open for a zero score")
	}
}

func TestModelPromptEscSkips(t *testing.T) {
	board := &fakeBoard{}
	m := newTestModel(board)
	m.prompting = true
	m.prompt.Focus()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Prompting() || cmd != nil {
		t.Error("esc should close the prompt without submitting")
	}
	if len(board.submitted) != 0 {
		t.Error("nothing should be submitted")
	}
}

func TestModelEscReturnsToTitle(t *testing.T) {
	m := newTestModel(nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg(time.Now()))
	m = runUntilGameOver(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.Game().Phase() != skyraid.PhaseStart {
		t.Fatalf("phase = %v, want start", m.Game().Phase())
	}
	if !strings.Contains(m.View(), "Press ENTER to start") {
		t.Error("title screen should be shown")
	}

	m, _ = update(t, m, SpawnMsg{})
	if len(m.Game().View().Enemies) != 0 {
		t.Error("spawn on the title screen should be ignored")
	}
}

func TestModelTracksBestRun(t *testing.T) {
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	logger := log.New(io.Discard)

	if msg := loadBestCmd(store, logger)(); msg != (BestMsg{}) {
		t.Errorf("best on empty store = %v, want zero", msg)
	}

	msg := saveRunCmd(store, logger, storage.Run{Name: "ace", Score: 420, Level: 3})()
	if msg != (BestMsg{Score: 420}) {
		t.Fatalf("after first run = %v, want 420", msg)
	}
	if msg := saveRunCmd(store, logger, storage.Run{Name: "ace", Score: 100})(); msg != (BestMsg{Score: 420}) {
		t.Errorf("a lower run must keep the best, got %v", msg)
	}

	m := newTestModel(&fakeBoard{})
	if strings.Contains(m.View(), "Best run") {
		t.Error("no best run should be shown before one is recorded")
	}
	m, _ = update(t, m, msg)
	if m.Best() != 420 || !strings.Contains(m.View(), "Best run: 420") {
		t.Errorf("best = %d; sidebar should show the best run", m.Best())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(nil)
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelLeaderboardFailureKeepsScores(t *testing.T) {
	m := newTestModel(&fakeBoard{})
	m, _ = update(t, m, ScoresMsg{Scores: []leaderboard.Entry{{Name: "ace", Score: 500}}})
	m, _ = update(t, m, ScoresMsg{Err: errors.New("connection refused")})

	if len(m.Scores()) != 1 {
		t.Error("failed fetch should keep the previous scores")
	}
	view := m.View()
	if !strings.Contains(view, "TOP SCORES") || !strings.Contains(view, "ace") {
		t.Error("sidebar should list the scores")
	}
	if !strings.Contains(view, "offline") {
		t.Error("sidebar should mark the leaderboard offline")
	}
	if m.Game().Phase() != skyraid.PhaseStart {
		t.Error("leaderboard failure must not touch the game")
	}
}

func TestModelSidebarHiddenWhenNarrow(t *testing.T) {
	m := newTestModel(&fakeBoard{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if strings.Contains(m.View(), "TOP SCORES") {
		t.Error("sidebar should be hidden below the minimum width")
	}
	if m.screen.Width() != 60 || m.screen.Height() != 19 {
		t.Errorf("screen = %dx%d, want 60x19", m.screen.Width(), m.screen.Height())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100-sidebarWidth {
		t.Errorf("screen width = %d, want %d", m.screen.Width(), 100-sidebarWidth)
	}
}
