package leaderboard

import "github.com/vovakirdan/skyraid/internal/config"

// GameState is the tuning table served by /api/game-state.
type GameState struct {
	Player   PlayerTuning    `json:"player"`
	Enemies  []EnemyTuning   `json:"enemies"`
	Bullets  BulletTuning    `json:"bullets"`
	Powerups []PowerupTuning `json:"powerups"`
}

type PlayerTuning struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Speed  float64 `json:"speed"`
	Health int     `json:"health"`
}

type EnemyTuning struct {
	Type   string  `json:"type"`
	Speed  float64 `json:"speed"`
	Health int     `json:"health"`
	Points int     `json:"points"`
}

type BulletTuning struct {
	PlayerSpeed float64 `json:"player_speed"`
	Damage      int     `json:"damage"`
	CooldownMS  int     `json:"cooldown_ms"`
}

// PowerupTuning.Effect is health restored for "health" and a duration in
// milliseconds for the timed buffs.
type PowerupTuning struct {
	Type   string `json:"type"`
	Effect int    `json:"effect"`
}

// NewGameState builds the tuning table from cfg.
func NewGameState(cfg config.SkyraidConfig) GameState {
	enemy := func(name string, e config.EnemySpec) EnemyTuning {
		return EnemyTuning{Type: name, Speed: e.Speed, Health: e.Health, Points: e.Points}
	}
	return GameState{
		Player: PlayerTuning{
			X:      (cfg.Arena.Width - cfg.Player.Width) / 2,
			Y:      cfg.Arena.Height - cfg.Player.BottomOffset,
			Speed:  cfg.Player.Speed,
			Health: cfg.Player.MaxHealth,
		},
		Enemies: []EnemyTuning{
			enemy("basic", cfg.Enemies.Basic),
			enemy("fast", cfg.Enemies.Fast),
			enemy("tank", cfg.Enemies.Tank),
		},
		Bullets: BulletTuning{
			PlayerSpeed: cfg.Weapon.BulletSpeed,
			Damage:      cfg.Weapon.BulletDamage,
			CooldownMS:  cfg.Weapon.CooldownMS,
		},
		Powerups: []PowerupTuning{
			{Type: "health", Effect: cfg.Powerups.Health.Effect},
			{Type: "rapid_fire", Effect: cfg.Powerups.RapidFire.Effect},
			{Type: "shield", Effect: cfg.Powerups.Shield.Effect},
		},
	}
}
