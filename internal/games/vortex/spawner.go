package vortex

import (
	"math"

	"github.com/vovakirdan/neon-vortex/internal/config"
)

// MinSpawnInterval is the floor of the enemy spawn interval in frames.
const MinSpawnInterval = 10.0

// SpawnInterval returns the frames until the next enemy at the given level.
func SpawnInterval(spawnRate float64, level int) float64 {
	return math.Max(MinSpawnInterval, spawnRate-float64(level)*2)
}

// RollEnemyKind picks an enemy kind from a single draw r in [0,1).
// The checks run in a fixed priority order and the first true branch wins,
// so at level 5 a draw below 0.1 is always a TANK and never a SHOOTER.
func RollEnemyKind(level int, r float64) EnemyKind {
	switch {
	case level >= 5 && r < 0.1:
		return EnemyTank
	case level >= 3 && r < 0.2:
		return EnemyShooter
	case level >= 2 && r < 0.3:
		return EnemyDasher
	default:
		return EnemyNormal
	}
}

// tickSpawner counts down the spawn timer and spawns one enemy on expiry.
func (m *Match) tickSpawner(dt float64) {
	m.spawnTimer -= dt
	if m.spawnTimer > 0 {
		return
	}
	m.spawnEnemy()
	m.spawnTimer = SpawnInterval(m.cfg.Cheats.SpawnRate, m.level())
}

// spawnEnemy places an enemy at a random point on the arena wall.
func (m *Match) spawnEnemy() {
	angle := m.rng.Float64() * 2 * math.Pi
	kind := RollEnemyKind(m.level(), m.rng.Float64())
	mul := config.SpeedMultiplier(m.cfg.Options.EnemySpeed) * m.cfg.Cheats.EnemySpeedMultiplier

	m.enemies = append(m.enemies, newEnemy(kind, m.arena.PointOnRim(angle), mul))
	m.totalSpawned++
}

// maybeDropPowerUp rolls the drop chance for a kill at e.
func (m *Match) maybeDropPowerUp(e Enemy) {
	if m.rng.Float64() >= m.cfg.Cheats.PowerUpChance {
		return
	}
	kind := PowerUpKind(m.rng.Intn(int(powerUpKindCount)))
	m.powerUps = append(m.powerUps, newPowerUp(kind, e.Pos))
}

// updatePowerUps ages uncollected pickups.
func (m *Match) updatePowerUps(dt float64) {
	kept := m.powerUps[:0]
	for _, p := range m.powerUps {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		kept = append(kept, p)
	}
	m.powerUps = kept
}

// collect activates kind for the difficulty's full duration. Collecting an
// active kind restarts its timer.
func (m *Match) collect(kind PowerUpKind) {
	m.player.PowerUps[kind] = config.PowerUpDuration(m.cfg.Options.Difficulty)
	m.logger.Debug("power-up collected", "kind", kind)
	m.notify()
}
