package skyraid

import (
	"unicode/utf8"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
)

// EnemyKind identifies an enemy variant.
type EnemyKind int

const (
	EnemyBasic EnemyKind = iota
	EnemyFast
	EnemyTank
	EnemyKindCount // Sentinel for counting kinds
)

// String returns the name of the enemy kind.
func (k EnemyKind) String() string {
	switch k {
	case EnemyBasic:
		return "basic"
	case EnemyFast:
		return "fast"
	case EnemyTank:
		return "tank"
	default:
		return "?"
	}
}

// Glyph returns the fill character for an enemy kind.
func (k EnemyKind) Glyph() rune {
	switch k {
	case EnemyBasic:
		return '▓'
	case EnemyFast:
		return '▒'
	case EnemyTank:
		return '█'
	default:
		return '?'
	}
}

// PowerupKind identifies a power-up variant.
type PowerupKind int

const (
	PowerupHealth PowerupKind = iota
	PowerupRapidFire
	PowerupShield
	PowerupKindCount // Sentinel for counting kinds
)

// String returns the name of the power-up kind.
func (k PowerupKind) String() string {
	switch k {
	case PowerupHealth:
		return "health"
	case PowerupRapidFire:
		return "rapidFire"
	case PowerupShield:
		return "shield"
	default:
		return "?"
	}
}

// EnemyStats are the fixed attributes shared by every enemy of a kind.
type EnemyStats struct {
	W, H   float64
	Health int
	Speed  float64
	Points int
	Color  core.Color
	Weight int
}

// PowerupStats are the fixed attributes shared by every power-up of a kind.
type PowerupStats struct {
	W, H   float64
	Color  core.Color
	Icon   rune
	Effect int // Health points restored, or buff duration in milliseconds
	Weight int
}

// Tables holds the per-kind attribute tables built from config.
type Tables struct {
	Enemies     [EnemyKindCount]EnemyStats
	Powerups    [PowerupKindCount]PowerupStats
	PlayerColor core.Color
	BulletColor core.Color
}

// NewTables builds the attribute tables from config.
func NewTables(cfg config.SkyraidConfig) Tables {
	enemy := func(s config.EnemySpec) EnemyStats {
		return EnemyStats{
			W:      s.Width,
			H:      s.Height,
			Health: s.Health,
			Speed:  s.Speed,
			Points: s.Points,
			Color:  core.ParseColor(s.Color),
			Weight: s.Weight,
		}
	}
	powerup := func(s config.PowerupSpec) PowerupStats {
		icon, _ := utf8.DecodeRuneInString(s.Icon)
		if s.Icon == "" {
			icon = '?'
		}
		return PowerupStats{
			W:      s.Width,
			H:      s.Height,
			Color:  core.ParseColor(s.Color),
			Icon:   icon,
			Effect: s.Effect,
			Weight: s.Weight,
		}
	}

	t := Tables{
		PlayerColor: core.ParseColor(cfg.Player.Color),
		BulletColor: core.ParseColor(cfg.Weapon.BulletColor),
	}
	t.Enemies[EnemyBasic] = enemy(cfg.Enemies.Basic)
	t.Enemies[EnemyFast] = enemy(cfg.Enemies.Fast)
	t.Enemies[EnemyTank] = enemy(cfg.Enemies.Tank)
	t.Powerups[PowerupHealth] = powerup(cfg.Powerups.Health)
	t.Powerups[PowerupRapidFire] = powerup(cfg.Powerups.RapidFire)
	t.Powerups[PowerupShield] = powerup(cfg.Powerups.Shield)
	return t
}

// Bullet is a player projectile travelling straight up.
type Bullet struct {
	X, Y float64
	W, H float64
}

// Rect returns the bullet's bounding box.
func (b *Bullet) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// Enemy is a descending hostile craft.
type Enemy struct {
	Kind   EnemyKind
	X, Y   float64
	W, H   float64
	Health int
}

// Rect returns the enemy's bounding box.
func (e *Enemy) Rect() core.Rect {
	return core.NewRect(e.X, e.Y, e.W, e.H)
}

// Powerup is a falling pickup.
type Powerup struct {
	Kind PowerupKind
	X, Y float64
	W, H float64
}

// Rect returns the power-up's bounding box.
func (p *Powerup) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// Explosion is a short-lived cosmetic effect.
type Explosion struct {
	X, Y float64 // Centre
	Life int     // Ticks remaining
}

// Radius returns the explosion radius, growing from start to max as life runs out.
func (e *Explosion) Radius(cfg config.ExplosionConfig) float64 {
	if cfg.Lifetime <= 0 {
		return cfg.MaxRadius
	}
	spent := 1 - float64(e.Life)/float64(cfg.Lifetime)
	return cfg.StartRadius + (cfg.MaxRadius-cfg.StartRadius)*core.ClampF(spent, 0, 1)
}
