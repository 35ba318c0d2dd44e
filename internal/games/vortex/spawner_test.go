package vortex

import (
	"math"
	"testing"

	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/core"
)

func TestSpawnInterval(t *testing.T) {
	tests := []struct {
		rate  float64
		level int
		want  float64
	}{
		{60, 1, 58},
		{60, 10, 40},
		{60, 25, 10},
		{60, 40, 10},
		{5, 1, 10},
	}
	for _, tt := range tests {
		if got := SpawnInterval(tt.rate, tt.level); got != tt.want {
			t.Errorf("SpawnInterval(%v, %d) = %v, expected %v", tt.rate, tt.level, got, tt.want)
		}
	}
}

func TestRollEnemyKind(t *testing.T) {
	tests := []struct {
		level int
		r     float64
		want  EnemyKind
	}{
		{1, 0.0, EnemyNormal},
		{1, 0.05, EnemyNormal},
		{2, 0.25, EnemyDasher},
		{2, 0.35, EnemyNormal},
		{3, 0.15, EnemyShooter},
		{3, 0.25, EnemyDasher},
		{4, 0.05, EnemyShooter},
		{5, 0.05, EnemyTank},
		{5, 0.15, EnemyShooter},
		{5, 0.25, EnemyDasher},
		{5, 0.5, EnemyNormal},
		{9, 0.0999, EnemyTank},
	}
	for _, tt := range tests {
		if got := RollEnemyKind(tt.level, tt.r); got != tt.want {
			t.Errorf("RollEnemyKind(%d, %v) = %v, expected %v", tt.level, tt.r, got, tt.want)
		}
	}
}

func TestSpawnerFirstFrame(t *testing.T) {
	m, _ := newTestMatch(t, func(c *config.Config) {
		c.Options.EnemySpeed = config.SpeedFast
		c.Cheats.EnemySpeedMultiplier = 2
	})

	m.Advance(1, Input{})

	if m.totalSpawned != 1 || len(m.enemies) != 1 {
		t.Fatalf("spawned %d enemies %d, expected one on the first frame", m.totalSpawned, len(m.enemies))
	}
	e := m.enemies[0]
	if d := e.Pos.Dist(center(m)); math.Abs(d-m.arena.Radius) > 1e-9 {
		t.Errorf("enemy spawned at distance %v, expected on the rim %v", d, m.arena.Radius)
	}
	if e.SpeedMultiplier != 3 {
		t.Errorf("SpeedMultiplier = %v, expected 1.5*2", e.SpeedMultiplier)
	}
	if e.Kind != EnemyNormal {
		t.Errorf("level 1 spawned %v", e.Kind)
	}
	if want := SpawnInterval(m.cfg.Cheats.SpawnRate, 1); m.spawnTimer != want {
		t.Errorf("spawnTimer = %v, expected %v", m.spawnTimer, want)
	}
}

func TestSpawnerCadence(t *testing.T) {
	m, _ := newTestMatch(t, func(c *config.Config) {
		c.Cheats.GodMode = true
		c.Cheats.SpawnRate = 12
	})
	// Level 1: interval max(10, 12-2) = 10, first spawn on frame 1.
	for range 31 {
		m.Advance(1, Input{})
	}
	if m.totalSpawned != 4 {
		t.Errorf("spawned %d in 31 frames, expected 4", m.totalSpawned)
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	run := func() []core.Vec2 {
		m, _ := newTestMatch(t, func(c *config.Config) { c.Cheats.GodMode = true })
		for range 200 {
			m.Advance(1, Input{})
		}
		var out []core.Vec2
		for _, e := range m.enemies {
			out = append(out, e.Pos)
		}
		return out
	}
	a, b := run(), run()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("runs differ in size: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("enemy %d at %v vs %v with the same seed", i, a[i], b[i])
		}
	}
}

func TestPickupsExpire(t *testing.T) {
	m, _ := newTestMatch(t, nil)
	quiet(m)
	m.powerUps = []PowerUp{newPowerUp(PowerUpSpread, center(m).Add(core.V(100, 100)))}

	for range int(PowerUpLife) - 1 {
		m.Advance(1, Input{})
	}
	if len(m.powerUps) != 1 {
		t.Fatal("pickup expired early")
	}
	m.Advance(1, Input{})
	if len(m.powerUps) != 0 {
		t.Error("pickup outlived its life")
	}
}

func TestEnemiesChasePlayer(t *testing.T) {
	m, _ := newTestMatch(t, nil)
	quiet(m)
	start := center(m).Add(core.V(200, 0))
	m.enemies = []Enemy{newEnemy(EnemyNormal, start, 1)}

	m.updateEnemies(1)

	e := m.enemies[0]
	wantVX := -EnemyNormal.spec().accel * EnemyFriction
	if !approx(e.Vel.X, wantVX) || !approx(e.Vel.Y, 0) {
		t.Errorf("vel = %v, expected (%v, 0)", e.Vel, wantVX)
	}
	if !approx(e.Pos.X, start.X+wantVX) {
		t.Errorf("pos.X = %v, expected %v", e.Pos.X, start.X+wantVX)
	}
}

func TestEnemySteeringIsPerFrame(t *testing.T) {
	for _, dt := range []float64{0.5, 1, 2} {
		m, _ := newTestMatch(t, nil)
		quiet(m)
		start := center(m).Add(core.V(200, 0))
		m.enemies = []Enemy{newEnemy(EnemyNormal, start, 1)}

		m.updateEnemies(dt)

		e := m.enemies[0]
		if !approx(e.Vel.X, -0.196) {
			t.Errorf("updateEnemies(%v) vel.X = %v, expected -0.196", dt, e.Vel.X)
		}
		if !approx(e.Pos.X, start.X-0.196*dt) {
			t.Errorf("updateEnemies(%v) pos.X = %v, expected %v", dt, e.Pos.X, start.X-0.196*dt)
		}
	}
}

func TestEnemyAccelScalesWithSpeed(t *testing.T) {
	tests := []struct {
		kind EnemyKind
		dist float64
	}{
		{EnemyNormal, 200},
		{EnemyDasher, 200},
		{EnemyTank, 200},
		{EnemyShooter, 300},
		{EnemyShooter, 80},
	}
	for _, tt := range tests {
		for _, mul := range []float64{0.5, 1, 1.5} {
			m, _ := newTestMatch(t, nil)
			quiet(m)
			m.enemies = []Enemy{newEnemy(tt.kind, center(m).Add(core.V(tt.dist, 0)), mul)}

			m.updateEnemies(2)

			want := -tt.kind.spec().accel * mul * EnemyFriction
			if got := m.enemies[0].Vel.X; !approx(got, want) {
				t.Errorf("%v at %v x%v: vel.X = %v, expected %v", tt.kind, tt.dist, mul, got, want)
			}
		}
	}
}

func TestShooterBehavior(t *testing.T) {
	tests := []struct {
		name        string
		dist        float64
		timer       float64
		wantShot    bool
		wantBraking bool
	}{
		{"in range and loaded", 150, 1, true, true},
		{"in range reloading", 150, 50, false, true},
		{"too close", 80, 1, false, false},
		{"too far", 220, 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMatch(t, nil)
			quiet(m)
			e := newEnemy(EnemyShooter, center(m).Add(core.V(tt.dist, 0)), 1)
			e.Vel = core.V(-1, 0)
			e.ShootTimer = tt.timer
			m.enemies = []Enemy{e}

			m.updateEnemies(1)

			got := m.enemies[0]
			shots := 0
			for _, b := range m.bullets {
				if b.Hostile {
					shots++
					if !approx(b.Vel.Mag(), HostileBulletSpeed) || b.Vel.X >= 0 {
						t.Errorf("hostile bullet vel %v, expected speed %v toward the player", b.Vel, HostileBulletSpeed)
					}
				}
			}
			if (shots == 1) != tt.wantShot {
				t.Errorf("shots = %d, expected shot %v", shots, tt.wantShot)
			}
			if tt.wantShot && got.ShootTimer != ShooterReload {
				t.Errorf("ShootTimer = %v, expected %v", got.ShootTimer, ShooterReload)
			}
			wantVX := -1 * ShooterBrake * EnemyFriction
			if braked := approx(got.Vel.X, wantVX); braked != tt.wantBraking {
				t.Errorf("vel.X = %v, braking %v expected %v", got.Vel.X, braked, tt.wantBraking)
			}
		})
	}
}

func TestBulletsLeaveArena(t *testing.T) {
	m, _ := newTestMatch(t, nil)
	quiet(m)
	edge := center(m).Add(core.V(m.arena.Radius-5, 0))
	m.bullets = []Bullet{
		newBullet(edge, core.V(BulletSpeed, 0), false),
		newBullet(center(m), core.V(0, BulletSpeed), false),
	}

	m.updateBullets(1)

	if len(m.bullets) != 1 || m.bullets[0].Vel.Y != BulletSpeed {
		t.Errorf("bullets = %+v, expected only the inner one", m.bullets)
	}
}
