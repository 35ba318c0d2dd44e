package vortex

import (
	"math"

	"github.com/vovakirdan/neon-vortex/internal/core"
)

// Camera shake strengths.
const (
	ShakeExplosion = 5.0
	ShakeDeath     = 15.0
	ShakeShield    = 25.0
	ShakeWall      = 3.0
	ShakeDecay     = 0.9
)

// Particle counts per effect.
const (
	ExplosionParticles = 12
	HitParticles       = 5
	ShieldParticles    = 24
)

// cue queues an audio cue, when sound is enabled, for delivery once the
// lock is released.
func (m *Match) cue(c Cue) {
	if !m.cfg.Options.SoundEnabled {
		return
	}
	m.cues = append(m.cues, c)
}

func (m *Match) addShake(v float64) {
	m.shake = math.Max(m.shake, v)
}

// burst spawns n particles flying out of pos. Particles draw from their own
// RNG so cosmetics never shift gameplay rolls.
func (m *Match) burst(pos core.Vec2, n int, color core.Color) {
	for range n {
		vel := core.FromAngle(m.fx.Float64() * 2 * math.Pi).Mul(m.fx.Range(1, 4))
		life := m.fx.Range(20, 40)
		m.particles = append(m.particles, Particle{
			Body:    Body{Pos: pos, Vel: vel, Radius: 1, Color: color},
			Life:    life,
			MaxLife: life,
		})
	}
}

// updateParticles ages particles and decays the camera shake.
func (m *Match) updateParticles(dt float64) {
	kept := m.particles[:0]
	for _, p := range m.particles {
		integrate(&p.Body, dt)
		p.Vel = p.Vel.Mul(ParticleFriction)
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		kept = append(kept, p)
	}
	m.particles = kept

	m.shake *= ShakeDecay
	if m.shake < 0.1 {
		m.shake = 0
	}
}
