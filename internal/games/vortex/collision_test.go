package vortex

import (
	"testing"

	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/core"
)

func TestEnemyHitsToKill(t *testing.T) {
	tests := []struct {
		kind       EnemyKind
		wantHits   int
		wantPoints int
	}{
		{EnemyNormal, 1, 100},
		{EnemyDasher, 1, 100},
		{EnemyShooter, 1, 100},
		{EnemyTank, 3, 300},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m, _ := newTestMatch(t, nil)
			quiet(m)
			pos := center(m).Add(core.V(120, 0))
			m.enemies = []Enemy{newEnemy(tt.kind, pos, 1)}

			for hit := 1; hit <= tt.wantHits; hit++ {
				m.bullets = append(m.bullets, newBullet(pos, core.Vec2{}, false))
				m.resolveCollisions()

				if len(m.bullets) != 0 {
					t.Fatalf("hit %d: bullet not consumed", hit)
				}
				if hit < tt.wantHits {
					if len(m.enemies) != 1 || m.enemies[0].HP != tt.wantHits-hit {
						t.Fatalf("hit %d: enemies %+v", hit, m.enemies)
					}
					if m.score != 0 {
						t.Fatalf("hit %d: score %d before the kill", hit, m.score)
					}
				}
			}
			if len(m.enemies) != 0 {
				t.Errorf("enemy survived %d hits", tt.wantHits)
			}
			if m.score != tt.wantPoints {
				t.Errorf("score = %d, expected %d", m.score, tt.wantPoints)
			}
		})
	}
}

func TestBulletDamagesOneEnemy(t *testing.T) {
	m, _ := newTestMatch(t, nil)
	quiet(m)
	pos := center(m).Add(core.V(0, 120))
	m.enemies = []Enemy{newEnemy(EnemyTank, pos, 1), newEnemy(EnemyTank, pos.Add(core.V(2, 0)), 1)}
	m.bullets = []Bullet{newBullet(pos, core.Vec2{}, false)}

	m.resolveCollisions()

	if m.enemies[0].HP != 2 || m.enemies[1].HP != 3 {
		t.Errorf("HP = %d, %d, expected 2, 3", m.enemies[0].HP, m.enemies[1].HP)
	}
}

func TestBulletPickupConsumesBullet(t *testing.T) {
	m, _ := newTestMatch(t, nil)
	quiet(m)
	pos := center(m).Add(core.V(-120, 0))
	m.powerUps = []PowerUp{newPowerUp(PowerUpSpread, pos)}
	m.enemies = []Enemy{newEnemy(EnemyNormal, pos, 1)}
	m.bullets = []Bullet{newBullet(pos, core.Vec2{}, false)}

	m.resolveCollisions()

	if !hasKind(m.player, PowerUpSpread) {
		t.Error("SPREAD not collected by the bullet")
	}
	if len(m.powerUps) != 0 || len(m.bullets) != 0 {
		t.Errorf("pickups %d bullets %d, expected both consumed", len(m.powerUps), len(m.bullets))
	}
	if len(m.enemies) != 1 || m.score != 0 {
		t.Errorf("enemy hit by a consumed bullet: %d enemies score %d", len(m.enemies), m.score)
	}
}

func TestPickupWidening(t *testing.T) {
	m, _ := newTestMatch(t, nil)
	quiet(m)

	// 18 units apart: outside plain contact (3+8) but inside the widened
	// radius (3+8+10).
	pickup := center(m).Add(core.V(0, -150))
	m.powerUps = []PowerUp{newPowerUp(PowerUpRapidFire, pickup)}
	m.bullets = []Bullet{newBullet(pickup.Add(core.V(18, 0)), core.Vec2{}, false)}
	m.resolveCollisions()
	if !hasKind(m.player, PowerUpRapidFire) {
		t.Error("bullet within the widened radius did not collect")
	}

	// The player uses the plain radius: 10+8 = 18, so 19 apart misses.
	m.powerUps = []PowerUp{newPowerUp(PowerUpShield, center(m).Add(core.V(19, 0)))}
	m.resolveCollisions()
	if hasKind(m.player, PowerUpShield) {
		t.Error("player collected a pickup outside contact range")
	}
	m.powerUps[0].Pos = center(m).Add(core.V(17, 0))
	m.resolveCollisions()
	if !hasKind(m.player, PowerUpShield) {
		t.Error("player did not collect a touching pickup")
	}
}

func TestHostileBulletsIgnoreEnemiesAndPickups(t *testing.T) {
	m, _ := newTestMatch(t, nil)
	quiet(m)
	pos := center(m).Add(core.V(150, 0))
	m.enemies = []Enemy{newEnemy(EnemyNormal, pos, 1)}
	m.powerUps = []PowerUp{newPowerUp(PowerUpShield, pos)}
	m.bullets = []Bullet{newBullet(pos, core.Vec2{}, true)}

	m.resolveCollisions()

	if len(m.enemies) != 1 || len(m.powerUps) != 1 || len(m.bullets) != 1 {
		t.Errorf("hostile bullet interacted: %d enemies %d pickups %d bullets", len(m.enemies), len(m.powerUps), len(m.bullets))
	}
}

func TestKillDropsPowerUp(t *testing.T) {
	m, _ := newTestMatch(t, func(c *config.Config) { c.Cheats.PowerUpChance = 1 })
	quiet(m)
	pos := center(m).Add(core.V(0, 100))
	m.enemies = []Enemy{newEnemy(EnemyNormal, pos, 1)}
	m.bullets = []Bullet{newBullet(pos, core.Vec2{}, false)}

	m.resolveCollisions()

	if len(m.powerUps) != 1 {
		t.Fatalf("pickups = %d, expected 1", len(m.powerUps))
	}
	if p := m.powerUps[0]; p.Pos != pos || p.Life != PowerUpLife {
		t.Errorf("pickup %+v, expected at %v with life %v", p, pos, PowerUpLife)
	}
}

func TestCompactDead(t *testing.T) {
	items := []Bullet{
		{Body: Body{Radius: 1}},
		{Body: Body{Radius: 2, dead: true}},
		{Body: Body{Radius: 3}},
		{Body: Body{Radius: 4, dead: true}},
	}
	got := compactDead(items, func(b *Bullet) bool { return b.dead })
	if len(got) != 2 || got[0].Radius != 1 || got[1].Radius != 3 {
		t.Errorf("compactDead() = %+v, expected radii 1 and 3", got)
	}
}
