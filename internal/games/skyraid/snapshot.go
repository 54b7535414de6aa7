package skyraid

import (
	"math"
	"time"

	"github.com/vovakirdan/skyraid/internal/core"
)

// EnemyView is the display data for one enemy.
type EnemyView struct {
	Rect           core.Rect
	Kind           EnemyKind
	HealthFraction float64 // Remaining health in [0, 1]
}

// PowerupView is the display data for one power-up.
type PowerupView struct {
	Rect core.Rect
	Kind PowerupKind
}

// ExplosionView is the display data for one explosion.
type ExplosionView struct {
	X, Y   float64
	Radius float64
}

// View is a read-only copy of everything the display needs for one frame.
type View struct {
	Phase          Phase
	ArenaW, ArenaH float64
	Tick           uint64

	Player    core.Rect
	Health    int
	MaxHealth int

	Bullets    []core.Rect
	Enemies    []EnemyView
	Powerups   []PowerupView
	Explosions []ExplosionView

	Score     int
	Level     int
	Destroyed int
	Survival  time.Duration

	RapidFireSeconds int // 0 when inactive
	ShieldSeconds    int // 0 when inactive
}

// View returns the current display data.
func (g *Game) View() View {
	v := View{
		Phase:            g.phase,
		ArenaW:           g.arenaW,
		ArenaH:           g.arenaH,
		Tick:             g.tick,
		Player:           g.player.Rect(),
		Health:           g.player.Health,
		MaxHealth:        g.player.MaxHealth,
		Bullets:          make([]core.Rect, 0, g.bullets.Len()),
		Enemies:          make([]EnemyView, 0, g.enemies.Len()),
		Powerups:         make([]PowerupView, 0, g.powerups.Len()),
		Explosions:       make([]ExplosionView, 0, g.explosions.Len()),
		Score:            g.score,
		Level:            g.Level(),
		Destroyed:        g.destroyed,
		Survival:         g.SurvivalTime(),
		RapidFireSeconds: g.buffs.RapidFire.Seconds(),
		ShieldSeconds:    g.buffs.Shield.Seconds(),
	}

	g.bullets.Each(func(b *Bullet) {
		v.Bullets = append(v.Bullets, b.Rect())
	})
	g.enemies.Each(func(e *Enemy) {
		frac := 1.0
		if maxHP := g.tables.Enemies[e.Kind].Health; maxHP > 0 {
			frac = core.ClampF(float64(e.Health)/float64(maxHP), 0, 1)
		}
		v.Enemies = append(v.Enemies, EnemyView{Rect: e.Rect(), Kind: e.Kind, HealthFraction: frac})
	})
	g.powerups.Each(func(p *Powerup) {
		v.Powerups = append(v.Powerups, PowerupView{Rect: p.Rect(), Kind: p.Kind})
	})
	g.explosions.Each(func(e *Explosion) {
		v.Explosions = append(v.Explosions, ExplosionView{X: e.X, Y: e.Y, Radius: e.Radius(g.cfg.Explosions)})
	})
	return v
}

// Snapshot contains the complete simulation state for determinism checks.
// Wall-clock survival time is excluded.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Score     int
	Level     int
	Destroyed int
	Health    int
	PlayerX   float64
	PlayerY   float64

	Clock    time.Duration
	LastFire time.Duration
	Fired    bool

	RapidFire time.Duration // Remaining, 0 when inactive
	Shield    time.Duration

	// Each bullet is 2 floats: X, Y
	BulletData []float64

	// Each enemy is 4 floats: Kind, X, Y, Health
	EnemyData []float64

	// Each power-up is 3 floats: Kind, X, Y
	PowerupData []float64

	// Each explosion is 3 floats: X, Y, Life
	ExplosionData []float64

	SpawnInterval time.Duration
	RNGState      uint64
}

// Snapshot returns the current simulation state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:          g.tick,
		Phase:         g.phase,
		Score:         g.score,
		Level:         g.Level(),
		Destroyed:     g.destroyed,
		Health:        g.player.Health,
		PlayerX:       g.player.X,
		PlayerY:       g.player.Y,
		Clock:         g.clock,
		LastFire:      g.lastFire,
		Fired:         g.fired,
		RapidFire:     g.buffs.RapidFire.Remaining,
		Shield:        g.buffs.Shield.Remaining,
		BulletData:    make([]float64, 0, g.bullets.Len()*2),
		EnemyData:     make([]float64, 0, g.enemies.Len()*4),
		PowerupData:   make([]float64, 0, g.powerups.Len()*3),
		ExplosionData: make([]float64, 0, g.explosions.Len()*3),
		SpawnInterval: g.SpawnInterval(),
		RNGState:      g.rng.State(),
	}

	g.bullets.Each(func(b *Bullet) {
		snap.BulletData = append(snap.BulletData, b.X, b.Y)
	})
	g.enemies.Each(func(e *Enemy) {
		snap.EnemyData = append(snap.EnemyData, float64(e.Kind), e.X, e.Y, float64(e.Health))
	})
	g.powerups.Each(func(p *Powerup) {
		snap.PowerupData = append(snap.PowerupData, float64(p.Kind), p.X, p.Y)
	})
	g.explosions.Each(func(e *Explosion) {
		snap.ExplosionData = append(snap.ExplosionData, e.X, e.Y, float64(e.Life))
	})
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	for _, c := range snap.Phase {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Destroyed) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Health)    //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.PlayerX)
	h = h*31 + math.Float64bits(snap.PlayerY)
	h = h*31 + uint64(snap.Clock)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LastFire)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.RapidFire) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Shield)    //#nosec G115 -- hash computation
	if snap.Fired {
		h = h*31 + 1
	}

	for _, data := range [][]float64{snap.BulletData, snap.EnemyData, snap.PowerupData, snap.ExplosionData} {
		h = h*31 + uint64(len(data))
		for _, v := range data {
			h = h*31 + math.Float64bits(v)
		}
	}

	h = h*31 + uint64(snap.SpawnInterval) //#nosec G115 -- hash computation
	h = h*31 + snap.RNGState
	return h
}
