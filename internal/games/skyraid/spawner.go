package skyraid

import "time"

// SpawnInterval returns the current delay between enemy spawns.
// Hosts re-read it before scheduling each spawn so level-ups take effect.
func (g *Game) SpawnInterval() time.Duration {
	return g.difficulty.SpawnInterval()
}

// SpawnEnemy creates one enemy above the arena at a random x.
// It does nothing unless the session is playing.
func (g *Game) SpawnEnemy() bool {
	if g.phase != PhasePlaying {
		return false
	}

	kind := g.rollEnemyKind()
	stats := g.tables.Enemies[kind]
	g.enemies.Spawn(Enemy{
		Kind:   kind,
		X:      g.rng.Float64() * max(g.arenaW-stats.W, 0),
		Y:      -stats.H,
		W:      stats.W,
		H:      stats.H,
		Health: stats.Health,
	})
	return true
}

// rollEnemyKind selects a random enemy kind based on weights.
func (g *Game) rollEnemyKind() EnemyKind {
	total := 0
	for _, s := range g.tables.Enemies {
		total += s.Weight
	}
	if total <= 0 {
		return EnemyBasic
	}

	roll := g.rng.Intn(total)
	cumulative := 0
	for kind, s := range g.tables.Enemies {
		cumulative += s.Weight
		if roll < cumulative {
			return EnemyKind(kind)
		}
	}
	return EnemyBasic
}

// rollPowerupKind selects a random power-up kind based on weights.
func (g *Game) rollPowerupKind() PowerupKind {
	total := 0
	for _, s := range g.tables.Powerups {
		total += s.Weight
	}
	if total <= 0 {
		return PowerupHealth
	}

	roll := g.rng.Intn(total)
	cumulative := 0
	for kind, s := range g.tables.Powerups {
		cumulative += s.Weight
		if roll < cumulative {
			return PowerupKind(kind)
		}
	}
	return PowerupHealth
}

// tryDropPowerup rolls the drop chance and spawns a power-up at (x, y).
func (g *Game) tryDropPowerup(x, y float64) bool {
	if g.rng.Float64() >= g.cfg.Powerups.DropChance {
		return false
	}

	kind := g.rollPowerupKind()
	stats := g.tables.Powerups[kind]
	g.powerups.Spawn(Powerup{
		Kind: kind,
		X:    x,
		Y:    y,
		W:    stats.W,
		H:    stats.H,
	})
	return true
}
