package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid"
	"github.com/vovakirdan/skyraid/internal/leaderboard"
	"github.com/vovakirdan/skyraid/internal/storage"
)

// holdWindow is how long a movement or fire key stays down after its last
// press. It has to outlast the terminal's auto-repeat delay.
const holdWindow = 200 * time.Millisecond

// Options configures a game session.
type Options struct {
	Runtime core.RuntimeConfig
	Game    config.SkyraidConfig
	Board   leaderboard.Board // nil disables the sidebar and the name prompt
	Store   *storage.Store    // nil disables run history
	Logger  *log.Logger
	Player  string // Prefilled name for the prompt
}

// Model is the Bubble Tea model for a skyraid session.
type Model struct {
	game      *skyraid.Game
	screen    *core.Screen
	board     leaderboard.Board
	store     *storage.Store
	log       *log.Logger
	config    core.RuntimeConfig
	lb        config.LeaderboardConfig
	keys      *KeyMapper
	hold      *core.HoldTracker
	input     core.InputFrame
	state     core.GameState
	prompt    textinput.Model
	prompting bool
	player    string
	scores    []leaderboard.Entry
	offline   bool
	best      int
	width     int
	height    int
	quitting  bool
}

// NewModel creates a model and resets the game to the title screen.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	lb := opts.Game.Leaderboard
	prompt := textinput.New()
	prompt.Prompt = "Name: "
	prompt.Placeholder = lb.DefaultName
	prompt.CharLimit = lb.MaxNameLen
	prompt.Width = lb.MaxNameLen

	m := Model{
		game:   skyraid.New(opts.Game),
		board:  opts.Board,
		store:  opts.Store,
		log:    logger,
		config: cfg,
		lb:     lb,
		keys:   NewKeyMapper(),
		hold:   core.NewHoldTracker(holdWindow),
		input:  core.NewInputFrame(),
		prompt: prompt,
		player: opts.Player,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
	m.screen = core.NewScreen(m.gameWidth(), m.gameHeight())
	m.game.Reset(cfg)
	m.state = m.game.State()
	return m
}

// Init starts the frame, spawn and leaderboard timers.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.config.TickRate),
		spawnCmd(m.game.SpawnInterval()),
	}
	if m.board != nil {
		cmds = append(cmds, fetchScoresCmd(m.board), refreshCmd(m.lb.RefreshInterval()))
	}
	if m.store != nil {
		cmds = append(cmds, loadBestCmd(m.store, m.log))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case SpawnMsg:
		m.game.SpawnEnemy()
		return m, spawnCmd(m.game.SpawnInterval())

	case RefreshMsg:
		return m, tea.Batch(fetchScoresCmd(m.board), refreshCmd(m.lb.RefreshInterval()))

	case ScoresMsg:
		if msg.Err != nil {
			m.log.Warn("leaderboard fetch failed", "err", msg.Err)
			m.offline = true
			return m, nil
		}
		m.scores = msg.Scores
		m.offline = false
		return m, nil

	case BestMsg:
		m.best = msg.Score
		return m, nil

	case SubmittedMsg:
		if msg.Err != nil || !msg.OK {
			m.log.Warn("score submission failed", "err", msg.Err)
			return m, nil
		}
		return m, fetchScoresCmd(m.board)
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	if m.keys.Apply(msg, m.hold, &m.input, time.Now()) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := m.prompt.Value()
		m.endPrompt()
		return m, submitScoreCmd(m.board, name, m.game.Score())
	case tea.KeyEsc:
		m.endPrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) endPrompt() {
	m.prompting = false
	m.prompt.Blur()
	m.prompt.Reset()
}

// handleResize processes window resize events. The arena is scaled, so the
// session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(m.gameWidth(), m.gameHeight())
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.hold.Apply(&m.input, now)
	result := m.game.Step(m.input)
	m.state = result.State
	m.input.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if result.Ended {
		cmds = append(cmds, m.onGameOver()...)
	}
	return m, tea.Batch(cmds...)
}

// onGameOver records the run and opens the name prompt for a non-zero score.
func (m *Model) onGameOver() []tea.Cmd {
	m.hold.Reset()

	run := storage.Run{
		Name:      leaderboard.NormalizeName(m.player, m.lb.DefaultName, m.lb.MaxNameLen),
		Score:     m.game.Score(),
		Level:     m.game.Level(),
		Destroyed: m.game.Destroyed(),
		Duration:  m.game.SurvivalTime(),
	}
	m.log.Info("Game over", "score", run.Score, "level", run.Level,
		"destroyed", run.Destroyed, "survived", run.Duration.Round(time.Second))

	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, saveRunCmd(m.store, m.log, run))
	}
	if m.board != nil && run.Score > 0 {
		m.prompting = true
		m.prompt.SetValue(m.player)
		m.prompt.CursorEnd()
		cmds = append(cmds, m.prompt.Focus(), textinput.Blink)
	}
	return cmds
}

// saveRunCmd records the run and reports the updated best score.
func saveRunCmd(store *storage.Store, logger *log.Logger, run storage.Run) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), leaderboardTimeout)
		defer cancel()
		if _, err := store.SaveRun(ctx, run); err != nil {
			logger.Warn("could not save run", "err", err)
			return nil
		}
		return bestScore(ctx, store, logger)
	}
}

func loadBestCmd(store *storage.Store, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), leaderboardTimeout)
		defer cancel()
		return bestScore(ctx, store, logger)
	}
}

func bestScore(ctx context.Context, store *storage.Store, logger *log.Logger) tea.Msg {
	best, err := store.HighScore(ctx)
	if err != nil {
		logger.Warn("could not load best run", "err", err)
		return nil
	}
	return BestMsg{Score: best}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)
	return m.layout(RenderScreen(m.screen))
}

// Game returns the running game.
func (m Model) Game() *skyraid.Game {
	return m.game
}

// Prompting reports whether the name prompt is open.
func (m Model) Prompting() bool {
	return m.prompting
}

// Scores returns the last fetched top scores.
func (m Model) Scores() []leaderboard.Entry {
	return m.scores
}

// Best returns the best recorded run score.
func (m Model) Best() int {
	return m.best
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
