package skyraid

import (
	"time"

	"github.com/vovakirdan/skyraid/internal/core"
)

// simulate runs one playing tick. It reports whether this tick ended the session.
func (g *Game) simulate(in core.InputFrame) bool {
	// Player input
	g.player.ApplyMovement(in, g.arenaW, g.arenaH)
	if in.Has(core.ActionFire) {
		g.TryFire(g.clock)
	}

	g.updateBullets()
	g.updateEnemies()
	g.updatePowerups()
	g.updateExplosions()
	g.buffs.Decay(g.frameTime)

	g.tick++
	g.clock += g.frameTime

	if g.player.Health <= 0 {
		g.phase = PhaseGameOver
		g.endedAt = g.now()
		return true
	}
	return false
}

// updateBullets moves bullets up and drops those fully above the arena.
func (g *Game) updateBullets() {
	speed := g.cfg.Weapon.BulletSpeed
	g.bullets.Retain(func(b *Bullet) bool {
		b.Y -= speed
		return b.Y+b.H > 0
	})
}

// updateEnemies moves enemies down and resolves player and bullet collisions.
func (g *Game) updateEnemies() {
	playerRect := g.player.Rect()

	g.enemies.Retain(func(e *Enemy) bool {
		e.Y += g.tables.Enemies[e.Kind].Speed
		rect := e.Rect()

		if rect.Intersects(playerRect) {
			g.TakeDamage(g.cfg.Enemies.ContactDamage)
			g.explode(rect)
			return false
		}

		// Newest bullets first; one bullet hits at most one enemy
		for i := g.bullets.Len() - 1; i >= 0; i-- {
			if !g.bullets.At(i).Rect().Intersects(rect) {
				continue
			}
			e.Health -= g.cfg.Weapon.BulletDamage
			g.bullets.RemoveAt(i)
			break
		}

		if e.Health <= 0 {
			g.destroyEnemy(e, rect)
			return false
		}

		return e.Y <= g.arenaH
	})
}

// destroyEnemy scores a kill and rolls the level ratchet and a power-up drop.
func (g *Game) destroyEnemy(e *Enemy, rect core.Rect) {
	g.score += g.tables.Enemies[e.Kind].Points
	g.destroyed++
	g.difficulty.RecordDestroyed(g.destroyed)
	g.tryDropPowerup(e.X, e.Y)
	g.explode(rect)
}

// explode spawns an explosion at the centre of rect.
func (g *Game) explode(rect core.Rect) {
	x, y := rect.Center()
	g.explosions.Spawn(Explosion{X: x, Y: y, Life: g.cfg.Explosions.Lifetime})
}

// updatePowerups moves power-ups down and applies any the player touches.
func (g *Game) updatePowerups() {
	playerRect := g.player.Rect()
	fall := g.cfg.Powerups.FallSpeed

	g.powerups.Retain(func(p *Powerup) bool {
		p.Y += fall
		if p.Rect().Intersects(playerRect) {
			g.applyPowerup(p.Kind)
			return false
		}
		return p.Y <= g.arenaH
	})
}

// applyPowerup applies a collected power-up's effect.
func (g *Game) applyPowerup(kind PowerupKind) {
	effect := g.tables.Powerups[kind].Effect
	switch kind {
	case PowerupHealth:
		g.player.Heal(effect)
	case PowerupRapidFire:
		g.buffs.RapidFire.Activate(time.Duration(effect) * time.Millisecond)
	case PowerupShield:
		g.buffs.Shield.Activate(time.Duration(effect) * time.Millisecond)
	}
}

// updateExplosions ages explosions and drops expired ones.
func (g *Game) updateExplosions() {
	g.explosions.Retain(func(e *Explosion) bool {
		e.Life--
		return e.Life > 0
	})
}
