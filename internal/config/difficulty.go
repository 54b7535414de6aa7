package config

import "time"

// DifficultyManager tracks the level and spawn-interval ratchet for one session.
// Level starts at 1; every LevelEvery destructions it goes up by one and the
// spawn interval shrinks by IntervalStep, never below MinInterval.
type DifficultyManager struct {
	cfg      SpawnConfig
	level    int
	interval time.Duration
}

// NewDifficultyManager creates a manager at level 1.
func NewDifficultyManager(cfg SpawnConfig) *DifficultyManager {
	d := &DifficultyManager{cfg: cfg}
	d.Reset()
	return d
}

// Reset returns to level 1 and the initial spawn interval.
func (d *DifficultyManager) Reset() {
	d.level = 1
	d.interval = max(d.cfg.InitialInterval(), d.cfg.MinInterval())
}

// Level returns the current level.
func (d *DifficultyManager) Level() int {
	return d.level
}

// SpawnInterval returns the current enemy spawn interval.
func (d *DifficultyManager) SpawnInterval() time.Duration {
	return d.interval
}

// RecordDestroyed is called after the destroyed counter is incremented.
// It reports whether the level went up.
func (d *DifficultyManager) RecordDestroyed(destroyed int) bool {
	if d.cfg.LevelEvery <= 0 || destroyed <= 0 || destroyed%d.cfg.LevelEvery != 0 {
		return false
	}
	d.level++
	d.interval = max(d.cfg.MinInterval(), d.interval-d.cfg.IntervalStep())
	return true
}

// ApplySkyraidPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplySkyraidPreset(cfg *SkyraidConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty = preset

	switch preset {
	case DifficultyEasy:
		cfg.Spawn.InitialIntervalMS = 2400
		cfg.Spawn.MinIntervalMS = 700
		cfg.Enemies.ContactDamage = 5
		cfg.Powerups.DropChance = 0.4
	case DifficultyHard:
		cfg.Spawn.InitialIntervalMS = 1500
		cfg.Spawn.MinIntervalMS = 400
		cfg.Enemies.ContactDamage = 15
		cfg.Powerups.DropChance = 0.2
	case DifficultyFixed:
		// No ratchet: the interval stays at its initial value all session
		cfg.Spawn.IntervalStepMS = 0
	}
}
