package vortex

// updateEnemies steers every enemy toward the player, integrates it and
// lets SHOOTERs fire.
func (m *Match) updateEnemies(dt float64) {
	target := m.player.Pos
	for i := range m.enemies {
		e := &m.enemies[i]
		toPlayer := target.Sub(e.Pos)
		dist := toPlayer.Mag()
		dir := toPlayer.Norm()

		inRange := e.Kind == EnemyShooter && dist > ShooterMinRange && dist < ShooterMaxRange
		if inRange {
			// Stand and shoot.
			e.Vel = e.Vel.Mul(ShooterBrake)
		} else {
			// Steering and friction are per frame, like the brake.
			e.Vel = e.Vel.Add(dir.Mul(e.Kind.spec().accel * e.SpeedMultiplier))
		}
		e.Vel = e.Vel.Mul(EnemyFriction)
		integrate(&e.Body, dt)

		if e.Kind != EnemyShooter {
			continue
		}
		e.ShootTimer -= dt
		if e.ShootTimer <= 0 && inRange {
			m.bullets = append(m.bullets, newBullet(e.Pos, dir.Mul(HostileBulletSpeed), true))
			e.ShootTimer = ShooterReload
			m.cue(CueShoot)
		}
	}
}

// updateBullets moves bullets and drops the ones that left the arena.
func (m *Match) updateBullets(dt float64) {
	kept := m.bullets[:0]
	for _, b := range m.bullets {
		integrate(&b.Body, dt)
		if m.arena.Escaped(b.Pos) {
			continue
		}
		kept = append(kept, b)
	}
	m.bullets = kept
}

// clearThreats removes every enemy and hostile bullet. Player bullets and
// pickups stay.
func (m *Match) clearThreats() {
	m.enemies = m.enemies[:0]
	kept := m.bullets[:0]
	for _, b := range m.bullets {
		if !b.Hostile {
			kept = append(kept, b)
		}
	}
	m.bullets = kept
}

