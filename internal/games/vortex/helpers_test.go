package vortex

import (
	"testing"
	"time"

	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/core"
)

// Test arena: center (400, 300), radius 240.
var testSurface = FixedSurface{W: 800, H: 600}

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// newTestMatch starts a match on the test surface with a fixed seed and
// clock. mutate may adjust the config before the match is built.
func newTestMatch(t *testing.T, mutate func(*config.Config)) (*Match, *fakeClock) {
	t.Helper()
	cfg := config.Default()
	cfg.Options.SoundEnabled = false
	cfg.Cheats.PowerUpChance = 0
	if mutate != nil {
		mutate(&cfg)
	}
	clock := newFakeClock()
	m, err := NewMatch(testSurface, WithConfig(cfg), WithSeed(42), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewMatch() error: %v", err)
	}
	m.StartGame()
	return m, clock
}

// quiet stops the spawner so tests control every enemy.
func quiet(m *Match) {
	m.spawnTimer = 1e9
}

func center(m *Match) core.Vec2 {
	return m.arena.Center
}

func approx(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}

func hasKind(p Player, k PowerUpKind) bool {
	_, ok := p.PowerUps[k]
	return ok
}
