package vortex

import (
	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/core"
)

// Keys is a set of held keys.
type Keys uint8

const (
	KeyUp Keys = 1 << iota
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
)

// Has reports whether every key in k is held.
func (h Keys) Has(k Keys) bool { return h&k == k }

// Input is the sampled input for one frame. Only the latest values matter;
// nothing is queued between frames.
type Input struct {
	Aim    core.Vec2 // pointer position in world units
	HasAim bool      // false keeps the previous aim point
	Fire   bool      // single fire pulse
	Held   Keys
}

// applyInput turns the frame's input into rotation, thrust and shots.
func (m *Match) applyInput(dt float64, in Input) {
	if in.HasAim {
		m.aim = in.Aim
	}
	if d := m.aim.Sub(m.player.Pos); d != (core.Vec2{}) {
		m.player.Rotation = d.Angle()
	}

	if m.cfg.Options.MovementMode == config.MovementWASD {
		var thrust core.Vec2
		if in.Held.Has(KeyUp) {
			thrust.Y--
		}
		if in.Held.Has(KeyDown) {
			thrust.Y++
		}
		if in.Held.Has(KeyLeft) {
			thrust.X--
		}
		if in.Held.Has(KeyRight) {
			thrust.X++
		}
		m.player.Vel = m.player.Vel.Add(thrust.Mul(WASDAcceleration * dt))
	}

	if in.Fire || in.Held.Has(KeyFire) || m.cfg.Options.AutoFire {
		m.shoot()
	}
}

// shoot fires one bullet, or three with SPREAD, if the cooldown allows.
func (m *Match) shoot() {
	p := &m.player
	if p.Cooldown > 0 {
		return
	}

	angles := []float64{p.Rotation}
	if _, ok := p.PowerUps[PowerUpSpread]; ok {
		angles = []float64{p.Rotation - SpreadAngle, p.Rotation, p.Rotation + SpreadAngle}
	}
	for _, a := range angles {
		dir := core.FromAngle(a)
		m.bullets = append(m.bullets, newBullet(p.Pos.Add(dir.Mul(BulletOffset)), dir.Mul(BulletSpeed), false))
	}

	if m.cfg.Options.MovementMode == config.MovementRecoil {
		p.Vel = p.Vel.Sub(core.FromAngle(p.Rotation).Mul(RecoilImpulse))
	}

	p.Cooldown = FireCooldown
	if _, ok := p.PowerUps[PowerUpRapidFire]; ok {
		p.Cooldown = RapidFireCooldown
	}
	m.cue(CueShoot)
}

// updatePlayer integrates the player, applies friction and ticks timers.
func (m *Match) updatePlayer(dt float64) {
	p := &m.player
	integrate(&p.Body, dt)
	if m.cfg.Options.MovementMode == config.MovementWASD {
		p.Vel = p.Vel.Mul(PlayerFrictionWASD)
	} else {
		p.Vel = p.Vel.Mul(PlayerFriction)
	}
	p.Cooldown = max(0, p.Cooldown-dt)

	expired := false
	for k, left := range p.PowerUps {
		left -= dt
		if left <= 0 {
			delete(p.PowerUps, k)
			expired = true
			continue
		}
		p.PowerUps[k] = left
	}
	if expired {
		m.notify()
	}
}

// checkWall handles the player touching the arena edge.
func (m *Match) checkWall() {
	if !m.arena.Breached(m.player.Body) {
		return
	}
	if m.cfg.Options.WallMode == config.WallBounce {
		m.arena.Bounce(&m.player.Body)
		m.addShake(ShakeWall)
		return
	}
	m.die("wall")
}
