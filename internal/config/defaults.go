package config

import (
	_ "embed"
)

//go:embed defaults/skyraid.yaml
var defaultSkyraidYAML []byte

// GetDefaultYAML returns the embedded default YAML configuration.
func GetDefaultYAML() []byte {
	return defaultSkyraidYAML
}

// DefaultSkyraidConfig returns the default skyraid configuration.
// It mirrors defaults/skyraid.yaml and is used when the embedded file
// cannot be parsed.
func DefaultSkyraidConfig() SkyraidConfig {
	return SkyraidConfig{
		Difficulty: DifficultyNormal,
		Arena: ArenaConfig{
			Width:  800,
			Height: 600,
		},
		Timing: TimingConfig{
			FrameTimeMS: 16,
		},
		Player: PlayerConfig{
			Width:        50,
			Height:       50,
			Speed:        5,
			MaxHealth:    100,
			BottomOffset: 100,
			Color:        "bright_cyan",
		},
		Weapon: WeaponConfig{
			CooldownMS:      300,
			RapidCooldownMS: 100,
			BulletWidth:     5,
			BulletHeight:    15,
			BulletSpeed:     7,
			BulletDamage:    10,
			BulletColor:     "bright_yellow",
		},
		Enemies: EnemiesConfig{
			ContactDamage: 10,
			Basic:         EnemySpec{Width: 40, Height: 40, Health: 20, Speed: 2, Points: 10, Color: "bright_red", Weight: 70},
			Fast:          EnemySpec{Width: 30, Height: 30, Health: 10, Speed: 4, Points: 15, Color: "orange", Weight: 15},
			Tank:          EnemySpec{Width: 60, Height: 60, Health: 50, Speed: 1, Points: 25, Color: "bright_blue", Weight: 15},
		},
		Powerups: PowerupsConfig{
			DropChance: 0.3,
			FallSpeed:  2,
			Health:     PowerupSpec{Width: 30, Height: 30, Color: "red", Icon: "+", Effect: 25, Weight: 1},
			RapidFire:  PowerupSpec{Width: 30, Height: 30, Color: "yellow", Icon: "»", Effect: 10000, Weight: 1},
			Shield:     PowerupSpec{Width: 30, Height: 30, Color: "cyan", Icon: "O", Effect: 8000, Weight: 1},
		},
		Explosions: ExplosionConfig{
			StartRadius: 10,
			MaxRadius:   40,
			Lifetime:    30,
		},
		Spawn: SpawnConfig{
			InitialIntervalMS: 2000,
			IntervalStepMS:    200,
			MinIntervalMS:     500,
			LevelEvery:        10,
		},
		Leaderboard: LeaderboardConfig{
			RefreshSeconds: 10,
			TopN:           10,
			DefaultName:    "Anonymous",
			MaxNameLen:     16,
		},
	}
}
