// Package skyraid implements the vertical shooter simulation: the player
// craft, enemies, bullets, power-ups and the session state machine.
package skyraid

import (
	"time"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
)

// Phase is the session state.
type Phase string

const (
	PhaseStart    Phase = "start"    // Title screen, nothing simulated
	PhasePlaying  Phase = "playing"  // Simulation and spawner running
	PhasePaused   Phase = "paused"   // Frozen until resumed
	PhaseGameOver Phase = "gameover" // Health depleted, score frozen
)

// Game holds all state for one skyraid session.
type Game struct {
	cfg        config.SkyraidConfig
	tables     Tables
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	rng        *SimpleRNG
	now        func() time.Time

	arenaW, arenaH float64
	frameTime      time.Duration

	// Entities
	player     Player
	bullets    Pool[Bullet]
	enemies    Pool[Enemy]
	powerups   Pool[Powerup]
	explosions Pool[Explosion]
	buffs      Buffs

	// Session
	phase     Phase
	score     int
	destroyed int
	tick      uint64
	clock     time.Duration // Sim time, advances only while playing
	lastFire  time.Duration
	fired     bool
	startedAt time.Time
	endedAt   time.Time
}

// New creates a game from config. Call Reset before use.
func New(cfg config.SkyraidConfig) *Game {
	return &Game{
		cfg:        cfg,
		tables:     NewTables(cfg),
		difficulty: config.NewDifficultyManager(cfg.Spawn),
		now:        time.Now,
		arenaW:     cfg.Arena.Width,
		arenaH:     cfg.Arena.Height,
		frameTime:  cfg.Timing.FrameTime(),
	}
}

// SetClock replaces the wall clock used for survival time.
func (g *Game) SetClock(now func() time.Time) {
	g.now = now
}

// Reset returns to the title screen with a fresh session and reseeds the RNG.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = NewSimpleRNG(runtime.Seed)
	g.resetSession()
	g.phase = PhaseStart
}

// resetSession restores every per-session value to its initial state.
func (g *Game) resetSession() {
	p := g.cfg.Player
	g.player = Player{
		X:         g.arenaW/2 - p.Width/2,
		Y:         g.arenaH - p.BottomOffset,
		W:         p.Width,
		H:         p.Height,
		Speed:     p.Speed,
		Health:    p.MaxHealth,
		MaxHealth: p.MaxHealth,
	}
	g.player.Y = core.ClampF(g.player.Y, 0, g.arenaH-p.Height)

	g.bullets.Clear()
	g.enemies.Clear()
	g.powerups.Clear()
	g.explosions.Clear()
	g.buffs = Buffs{}
	g.difficulty.Reset()

	g.score = 0
	g.destroyed = 0
	g.tick = 0
	g.clock = 0
	g.lastFire = 0
	g.fired = false
	g.startedAt = time.Time{}
	g.endedAt = time.Time{}
}

// Start leaves the title screen and begins a session.
func (g *Game) Start() {
	if g.phase != PhaseStart {
		return
	}
	g.begin()
}

// Restart begins a new session after game over.
func (g *Game) Restart() {
	if g.phase != PhaseGameOver {
		return
	}
	g.begin()
}

// ToTitle leaves game over for the title screen. The RNG is not reseeded.
func (g *Game) ToTitle() {
	if g.phase != PhaseGameOver {
		return
	}
	g.resetSession()
	g.phase = PhaseStart
}

func (g *Game) begin() {
	g.resetSession()
	g.startedAt = g.now()
	g.phase = PhasePlaying
}

// TogglePause switches between playing and paused. Ignored in other phases.
func (g *Game) TogglePause() {
	switch g.phase {
	case PhasePlaying:
		g.phase = PhasePaused
	case PhasePaused:
		g.phase = PhasePlaying
	}
}

// Step applies discrete actions, then advances the simulation one tick
// when the session is playing.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch {
	case in.Has(core.ActionStart) && g.phase == PhaseStart:
		g.Start()
	case in.Has(core.ActionRestart) && g.phase == PhaseGameOver:
		g.Restart()
	case in.Has(core.ActionBack) && g.phase == PhaseGameOver:
		g.ToTitle()
	case in.Has(core.ActionPause):
		g.TogglePause()
	}

	if g.phase != PhasePlaying {
		return core.StepResult{State: g.State()}
	}

	ended := g.simulate(in)
	return core.StepResult{State: g.State(), Ended: ended}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Started:  g.phase != PhaseStart,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.phase == PhasePaused,
	}
}

// Phase returns the session phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Level returns the current level (starts at 1).
func (g *Game) Level() int {
	return g.difficulty.Level()
}

// Destroyed returns how many enemies were destroyed this session.
func (g *Game) Destroyed() int {
	return g.destroyed
}

// SurvivalTime returns wall time since the session started, frozen at game over.
func (g *Game) SurvivalTime() time.Duration {
	switch {
	case g.startedAt.IsZero():
		return 0
	case !g.endedAt.IsZero():
		return g.endedAt.Sub(g.startedAt)
	default:
		return g.now().Sub(g.startedAt)
	}
}
