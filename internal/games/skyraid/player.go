package skyraid

import (
	"time"

	"github.com/vovakirdan/skyraid/internal/core"
)

// Player is the player-controlled craft.
type Player struct {
	X, Y      float64
	W, H      float64
	Speed     float64
	Health    int
	MaxHealth int
}

// Rect returns the player's bounding box.
func (p *Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// ApplyMovement moves the player one step for every held direction and
// clamps each axis to the arena. Diagonals are not normalized.
func (p *Player) ApplyMovement(in core.InputFrame, arenaW, arenaH float64) {
	if in.Has(core.ActionLeft) {
		p.X -= p.Speed
	}
	if in.Has(core.ActionRight) {
		p.X += p.Speed
	}
	if in.Has(core.ActionUp) {
		p.Y -= p.Speed
	}
	if in.Has(core.ActionDown) {
		p.Y += p.Speed
	}
	p.X = core.ClampF(p.X, 0, arenaW-p.W)
	p.Y = core.ClampF(p.Y, 0, arenaH-p.H)
}

// Heal restores health up to the maximum.
func (p *Player) Heal(amount int) {
	p.Health = core.Clamp(p.Health+amount, 0, p.MaxHealth)
}

// TakeDamage applies damage unless the shield is up. Health never drops below 0.
func (g *Game) TakeDamage(amount int) {
	if g.buffs.Shield.Active || amount <= 0 {
		return
	}
	g.player.Health = core.Clamp(g.player.Health-amount, 0, g.player.MaxHealth)
}

// fireCooldown returns the cooldown in effect for the current buffs.
func (g *Game) fireCooldown() time.Duration {
	if g.buffs.RapidFire.Active {
		return g.cfg.Weapon.RapidCooldown()
	}
	return g.cfg.Weapon.Cooldown()
}

// TryFire spawns a bullet centred on the player's top edge if the weapon
// is off cooldown at sim time now. The first shot of a session is always allowed.
func (g *Game) TryFire(now time.Duration) bool {
	if g.fired && now-g.lastFire < g.fireCooldown() {
		return false
	}

	w := g.cfg.Weapon
	g.bullets.Spawn(Bullet{
		X: g.player.X + g.player.W/2 - w.BulletWidth/2,
		Y: g.player.Y,
		W: w.BulletWidth,
		H: w.BulletHeight,
	})
	g.lastFire = now
	g.fired = true
	return true
}
