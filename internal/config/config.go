// Package config provides YAML-based game configuration loading and
// difficulty presets for skyraid.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SkyraidConfig contains all tuning for the shooter.
// Distances are in arena units, speeds in arena units per tick.
type SkyraidConfig struct {
	Difficulty  DifficultyPreset  `yaml:"difficulty"`
	Arena       ArenaConfig       `yaml:"arena"`
	Timing      TimingConfig      `yaml:"timing"`
	Player      PlayerConfig      `yaml:"player"`
	Weapon      WeaponConfig      `yaml:"weapon"`
	Enemies     EnemiesConfig     `yaml:"enemies"`
	Powerups    PowerupsConfig    `yaml:"powerups"`
	Explosions  ExplosionConfig   `yaml:"explosions"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// ArenaConfig defines the play area.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TimingConfig defines the fixed simulation time step.
type TimingConfig struct {
	FrameTimeMS int `yaml:"frame_time_ms"` // Time credited to buffs and the fire clock per tick
}

// FrameTime returns the per-tick time increment.
func (t TimingConfig) FrameTime() time.Duration {
	return time.Duration(t.FrameTimeMS) * time.Millisecond
}

// PlayerConfig defines the player craft.
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	MaxHealth    int     `yaml:"max_health"`
	BottomOffset float64 `yaml:"bottom_offset"` // Distance from arena bottom to player top at start
	Color        string  `yaml:"color"`
}

// WeaponConfig defines the player's gun.
type WeaponConfig struct {
	CooldownMS      int     `yaml:"cooldown_ms"`
	RapidCooldownMS int     `yaml:"rapid_cooldown_ms"`
	BulletWidth     float64 `yaml:"bullet_width"`
	BulletHeight    float64 `yaml:"bullet_height"`
	BulletSpeed     float64 `yaml:"bullet_speed"`
	BulletDamage    int     `yaml:"bullet_damage"`
	BulletColor     string  `yaml:"bullet_color"`
}

// Cooldown returns the base fire cooldown.
func (w WeaponConfig) Cooldown() time.Duration {
	return time.Duration(w.CooldownMS) * time.Millisecond
}

// RapidCooldown returns the fire cooldown while rapid fire is active.
func (w WeaponConfig) RapidCooldown() time.Duration {
	return time.Duration(w.RapidCooldownMS) * time.Millisecond
}

// EnemySpec holds the fixed attributes of one enemy kind.
type EnemySpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Health int     `yaml:"health"`
	Speed  float64 `yaml:"speed"`
	Points int     `yaml:"points"`
	Color  string  `yaml:"color"`
	Weight int     `yaml:"weight"` // Relative spawn weight
}

// EnemiesConfig defines the enemy kinds and contact damage.
type EnemiesConfig struct {
	ContactDamage int       `yaml:"contact_damage"`
	Basic         EnemySpec `yaml:"basic"`
	Fast          EnemySpec `yaml:"fast"`
	Tank          EnemySpec `yaml:"tank"`
}

// PowerupSpec holds the fixed attributes of one power-up kind.
// Effect is health points for the health kind and milliseconds for buffs.
type PowerupSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  string  `yaml:"color"`
	Icon   string  `yaml:"icon"`
	Effect int     `yaml:"effect"`
	Weight int     `yaml:"weight"`
}

// PowerupsConfig defines power-up drops.
type PowerupsConfig struct {
	DropChance float64     `yaml:"drop_chance"` // Probability in [0, 1] per destroyed enemy
	FallSpeed  float64     `yaml:"fall_speed"`
	Health     PowerupSpec `yaml:"health"`
	RapidFire  PowerupSpec `yaml:"rapid_fire"`
	Shield     PowerupSpec `yaml:"shield"`
}

// ExplosionConfig defines the cosmetic explosion effect.
type ExplosionConfig struct {
	StartRadius float64 `yaml:"start_radius"`
	MaxRadius   float64 `yaml:"max_radius"`
	Lifetime    int     `yaml:"lifetime"` // Ticks
}

// SpawnConfig defines enemy spawn cadence and the level ratchet.
type SpawnConfig struct {
	InitialIntervalMS int `yaml:"initial_interval_ms"`
	IntervalStepMS    int `yaml:"interval_step_ms"`
	MinIntervalMS     int `yaml:"min_interval_ms"`
	LevelEvery        int `yaml:"level_every"` // Destructions per level
}

// InitialInterval returns the spawn interval at level 1.
func (s SpawnConfig) InitialInterval() time.Duration {
	return time.Duration(s.InitialIntervalMS) * time.Millisecond
}

// IntervalStep returns how much the spawn interval shrinks per level.
func (s SpawnConfig) IntervalStep() time.Duration {
	return time.Duration(s.IntervalStepMS) * time.Millisecond
}

// MinInterval returns the spawn interval floor.
func (s SpawnConfig) MinInterval() time.Duration {
	return time.Duration(s.MinIntervalMS) * time.Millisecond
}

// LeaderboardConfig defines client-side leaderboard behaviour.
type LeaderboardConfig struct {
	URL            string `yaml:"url"` // Remote leaderboard service; empty means the local store
	RefreshSeconds int    `yaml:"refresh_seconds"`
	TopN           int    `yaml:"top_n"`
	DefaultName    string `yaml:"default_name"`
	MaxNameLen     int    `yaml:"max_name_len"`
}

// DefaultRefreshInterval is used when refresh_seconds is not positive.
const DefaultRefreshInterval = 10 * time.Second

// RefreshInterval returns the period between leaderboard fetches.
func (l LeaderboardConfig) RefreshInterval() time.Duration {
	if l.RefreshSeconds <= 0 {
		return DefaultRefreshInterval
	}
	return time.Duration(l.RefreshSeconds) * time.Second
}

// Validate checks that the configuration can drive a simulation.
func (c SkyraidConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("arena.width", c.Arena.Width)
	positive("arena.height", c.Arena.Height)
	positive("timing.frame_time_ms", float64(c.Timing.FrameTimeMS))
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("player.max_health", float64(c.Player.MaxHealth))
	positive("weapon.bullet_speed", c.Weapon.BulletSpeed)
	positive("spawn.initial_interval_ms", float64(c.Spawn.InitialIntervalMS))
	positive("spawn.min_interval_ms", float64(c.Spawn.MinIntervalMS))
	positive("spawn.level_every", float64(c.Spawn.LevelEvery))
	positive("explosions.lifetime", float64(c.Explosions.Lifetime))
	positive("leaderboard.top_n", float64(c.Leaderboard.TopN))
	positive("leaderboard.refresh_seconds", float64(c.Leaderboard.RefreshSeconds))

	if c.Player.Width > c.Arena.Width || c.Player.Height > c.Arena.Height {
		errs = append(errs, errors.New("player does not fit in the arena"))
	}
	if c.Spawn.IntervalStepMS < 0 {
		errs = append(errs, fmt.Errorf("spawn.interval_step_ms must not be negative, got %d", c.Spawn.IntervalStepMS))
	}
	if c.Difficulty != "" && ParseDifficultyPreset(string(c.Difficulty)) == "" {
		errs = append(errs, fmt.Errorf("unknown difficulty %q", c.Difficulty))
	}
	if c.Powerups.DropChance < 0 || c.Powerups.DropChance > 1 {
		errs = append(errs, fmt.Errorf("powerups.drop_chance must be within [0, 1], got %v", c.Powerups.DropChance))
	}

	enemies := map[string]EnemySpec{"basic": c.Enemies.Basic, "fast": c.Enemies.Fast, "tank": c.Enemies.Tank}
	weights := 0
	for name, e := range enemies {
		if e.Width <= 0 || e.Height <= 0 || e.Width > c.Arena.Width {
			errs = append(errs, fmt.Errorf("enemies.%s has invalid size %vx%v", name, e.Width, e.Height))
		}
		if e.Health <= 0 {
			errs = append(errs, fmt.Errorf("enemies.%s.health must be positive", name))
		}
		if e.Weight < 0 {
			errs = append(errs, fmt.Errorf("enemies.%s.weight must not be negative", name))
		}
		weights += e.Weight
	}
	if weights <= 0 {
		errs = append(errs, errors.New("at least one enemy kind needs a positive weight"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid skyraid config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset converts a CLI string to a preset.
// Unknown or empty strings return "".
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
