package vortex

import (
	"testing"
	"time"

	"github.com/vovakirdan/neon-vortex/internal/config"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score, want int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{1999, 2},
		{4300, 5},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, expected %d", tt.score, got, tt.want)
		}
	}
}

func TestDeathsPerMinute(t *testing.T) {
	tests := []struct {
		deaths  int
		elapsed time.Duration
		want    float64
	}{
		{3, 90 * time.Second, 2.0},
		{0, time.Minute, 0},
		{5, 0, 0},
		{1, 7 * time.Second, 8.6},
		{31, time.Minute, 31},
		{2, -time.Second, 0},
	}
	for _, tt := range tests {
		if got := DeathsPerMinute(tt.deaths, tt.elapsed); got != tt.want {
			t.Errorf("DeathsPerMinute(%d, %v) = %v, expected %v", tt.deaths, tt.elapsed, got, tt.want)
		}
	}
}

func TestGraceEnemies(t *testing.T) {
	tests := []struct {
		threshold, want int
	}{
		{30, 4},
		{7, 18},
		{120, 1},
		{1, 120},
		{0, 120},
		{-5, 120},
	}
	for _, tt := range tests {
		if got := GraceEnemies(tt.threshold); got != tt.want {
			t.Errorf("GraceEnemies(%d) = %d, expected %d", tt.threshold, got, tt.want)
		}
	}
}

func TestSurvivalExceeded(t *testing.T) {
	tests := []struct {
		name      string
		spawned   int
		threshold int
		dpm       float64
		want      bool
	}{
		{"before grace", 3, 30, 100, false},
		{"at grace above threshold", 4, 30, 31, true},
		{"exactly at threshold", 4, 30, 30, false},
		{"well past grace below threshold", 50, 30, 12.5, false},
		{"zero threshold clamps grace", 119, 0, 5, false},
		{"zero threshold after grace", 120, 0, 0.1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SurvivalExceeded(tt.spawned, tt.threshold, tt.dpm); got != tt.want {
				t.Errorf("SurvivalExceeded(%d, %d, %v) = %v, expected %v", tt.spawned, tt.threshold, tt.dpm, got, tt.want)
			}
		})
	}
}

func TestSurvivalTermination(t *testing.T) {
	tests := []struct {
		name     string
		spawned  int
		deaths   int
		override *int
		wantOver bool
	}{
		{"grace not reached", 3, 100, nil, false},
		{"above threshold", 4, 31, nil, true},
		{"at threshold", 4, 30, nil, false},
		{"override lowers threshold", 12, 11, intPtr(10), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, clock := newTestMatch(t, func(c *config.Config) {
				c.Options.GameMode = config.ModeSurvival
				c.Options.SurvivalThreshold = 30
				c.Cheats.SurvivalThresholdOverride = tt.override
			})
			quiet(m)
			m.totalSpawned = tt.spawned
			m.deaths = tt.deaths
			clock.Advance(time.Minute)

			m.Advance(1, Input{})

			s := m.Summary()
			if got := s.State == StateGameOver; got != tt.wantOver {
				t.Errorf("game over = %v, expected %v (dpm %v)", got, tt.wantOver, s.DPM)
			}
			if tt.wantOver && s.EndReason != EndSurvivalThreshold {
				t.Errorf("EndReason = %q, expected %q", s.EndReason, EndSurvivalThreshold)
			}
		})
	}
}

func TestInfiniteNeverTerminatesOnDPM(t *testing.T) {
	m, clock := newTestMatch(t, func(c *config.Config) {
		c.Options.GameMode = config.ModeInfinite
	})
	quiet(m)
	m.totalSpawned = 500
	m.deaths = 500
	clock.Advance(time.Minute)

	m.Advance(1, Input{})
	if s := m.Summary(); s.State != StatePlaying || s.DPM != 500 {
		t.Errorf("INFINITE state = %v dpm = %v, expected PLAYING with dpm 500", s.State, s.DPM)
	}
}

func TestRespawnUpdatesDPM(t *testing.T) {
	m, clock := newTestMatch(t, func(c *config.Config) {
		c.Options.GameMode = config.ModeInfinite
	})
	quiet(m)
	m.deaths = 2
	clock.Advance(90 * time.Second)

	m.enemies = append(m.enemies, newEnemy(EnemyNormal, center(m), 1))
	m.resolveCollisions()

	s := m.Summary()
	if s.Deaths != 3 || s.DPM != 2.0 {
		t.Errorf("deaths = %d dpm = %v, expected 3 and 2.0", s.Deaths, s.DPM)
	}
}

func intPtr(v int) *int { return &v }
