package vortex

import (
	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/core"
)

// Snapshot is a copy of the match state for renderers, autopilots and the
// spectator feed. It uses primitive fields only.
type Snapshot struct {
	Frame     uint64          `json:"frame"`
	State     State           `json:"state"`
	Mode      config.GameMode `json:"mode"`
	EndReason EndReason       `json:"endReason,omitempty"`

	Score               int     `json:"score"`
	Level               int     `json:"level"`
	Deaths              int     `json:"deaths"`
	DPM                 float64 `json:"dpm"`
	TotalEnemiesSpawned int     `json:"totalEnemiesSpawned"`
	GraceEnemies        int     `json:"graceEnemies"`
	Threshold           int     `json:"threshold"`
	ElapsedSeconds      float64 `json:"elapsedSeconds"`
	GodMode             bool    `json:"godMode"`

	ArenaX      float64 `json:"arenaX"`
	ArenaY      float64 `json:"arenaY"`
	ArenaRadius float64 `json:"arenaRadius"`
	Shake       float64 `json:"shake"`

	Player    PlayerView      `json:"player"`
	AimX      float64         `json:"aimX"`
	AimY      float64         `json:"aimY"`
	PowerUps  []ActivePowerUp `json:"powerUps"`
	Enemies   []EnemyView     `json:"enemies"`
	Bullets   []BulletView    `json:"bullets"`
	Pickups   []PickupView    `json:"pickups"`
	Particles []ParticleView  `json:"particles"`
}

// PlayerView is the player part of a Snapshot.
type PlayerView struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Radius   float64 `json:"radius"`
	Rotation float64 `json:"rotation"`
	Cooldown float64 `json:"cooldown"`
}

// ActivePowerUp is an active power-up and its remaining ticks.
type ActivePowerUp struct {
	Kind      string  `json:"kind"`
	Remaining float64 `json:"remaining"`
}

// EnemyView is one enemy in a Snapshot.
type EnemyView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Kind   string  `json:"kind"`
	HP     int     `json:"hp"`
}

// BulletView is one bullet in a Snapshot.
type BulletView struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Hostile bool    `json:"hostile"`
}

// PickupView is one uncollected power-up in a Snapshot.
type PickupView struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Kind string  `json:"kind"`
	Life float64 `json:"life"`
}

// ParticleView is one particle in a Snapshot. Fade runs from 1 to 0.
type ParticleView struct {
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Color core.Color `json:"color"`
	Fade  float64    `json:"fade"`
}

// Snapshot returns the current match state.
func (m *Match) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	threshold := m.cfg.SurvivalThreshold()
	s := Snapshot{
		Frame:               m.frame,
		State:               m.state,
		Mode:                m.cfg.Options.GameMode,
		EndReason:           m.endReason,
		Score:               m.score,
		Level:               m.level(),
		Deaths:              m.deaths,
		DPM:                 m.dpm,
		TotalEnemiesSpawned: m.totalSpawned,
		GraceEnemies:        GraceEnemies(threshold),
		Threshold:           threshold,
		GodMode:             m.cfg.Cheats.GodMode,
		ArenaX:              m.arena.Center.X,
		ArenaY:              m.arena.Center.Y,
		ArenaRadius:         m.arena.Radius,
		Shake:               m.shake,
		Player: PlayerView{
			X:        m.player.Pos.X,
			Y:        m.player.Pos.Y,
			VX:       m.player.Vel.X,
			VY:       m.player.Vel.Y,
			Radius:   m.player.Radius,
			Rotation: m.player.Rotation,
			Cooldown: m.player.Cooldown,
		},
		AimX: m.aim.X,
		AimY: m.aim.Y,
	}
	if !m.startTime.IsZero() {
		s.ElapsedSeconds = m.now().Sub(m.startTime).Seconds()
	}

	for k := PowerUpKind(0); k < powerUpKindCount; k++ {
		if left, ok := m.player.PowerUps[k]; ok {
			s.PowerUps = append(s.PowerUps, ActivePowerUp{Kind: k.String(), Remaining: left})
		}
	}
	s.Enemies = make([]EnemyView, 0, len(m.enemies))
	for _, e := range m.enemies {
		s.Enemies = append(s.Enemies, EnemyView{X: e.Pos.X, Y: e.Pos.Y, Radius: e.Radius, Kind: e.Kind.String(), HP: e.HP})
	}
	s.Bullets = make([]BulletView, 0, len(m.bullets))
	for _, b := range m.bullets {
		s.Bullets = append(s.Bullets, BulletView{X: b.Pos.X, Y: b.Pos.Y, Hostile: b.Hostile})
	}
	s.Pickups = make([]PickupView, 0, len(m.powerUps))
	for _, p := range m.powerUps {
		s.Pickups = append(s.Pickups, PickupView{X: p.Pos.X, Y: p.Pos.Y, Kind: p.Kind.String(), Life: p.Life})
	}
	s.Particles = make([]ParticleView, 0, len(m.particles))
	for _, p := range m.particles {
		fade := 0.0
		if p.MaxLife > 0 {
			fade = p.Life / p.MaxLife
		}
		s.Particles = append(s.Particles, ParticleView{X: p.Pos.X, Y: p.Pos.Y, Color: p.Color, Fade: fade})
	}
	return s
}
