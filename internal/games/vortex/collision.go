package vortex

// resolveCollisions runs the interaction passes in order. Entities consumed
// in one pass are marked dead and skipped by later passes.
func (m *Match) resolveCollisions() {
	m.shootPowerUps()
	m.shootEnemies()
	m.touchPowerUps()
	m.compact()

	// Contact with enemies, then hostile bullets. A death that respawns
	// clears both collections, which ends these loops.
	for i := 0; i < len(m.enemies); i++ {
		if m.player.Overlaps(m.enemies[i].Body) {
			m.die("enemy")
			if m.state != StatePlaying {
				return
			}
		}
	}
	for i := 0; i < len(m.bullets); i++ {
		b := m.bullets[i]
		if b.Hostile && m.player.Overlaps(b.Body) {
			m.die("hostile bullet")
			if m.state != StatePlaying {
				return
			}
		}
	}
}

// shootPowerUps lets player bullets collect pickups, with the pickup's
// radius widened for the test.
func (m *Match) shootPowerUps() {
	for bi := range m.bullets {
		b := &m.bullets[bi]
		if b.Hostile || b.dead {
			continue
		}
		for pi := range m.powerUps {
			p := &m.powerUps[pi]
			if p.dead {
				continue
			}
			if b.Pos.Dist(p.Pos) < b.Radius+p.Radius+PickupWidening {
				p.dead = true
				b.dead = true
				m.collect(p.Kind)
				break
			}
		}
	}
}

// shootEnemies applies player bullets to enemies. A bullet damages at most
// one enemy, the first overlapping one in collection order.
func (m *Match) shootEnemies() {
	for bi := range m.bullets {
		b := &m.bullets[bi]
		if b.Hostile || b.dead {
			continue
		}
		for ei := range m.enemies {
			e := &m.enemies[ei]
			if e.dead || !b.Overlaps(e.Body) {
				continue
			}
			b.dead = true
			e.HP--
			if e.HP > 0 {
				m.cue(CueHit)
				m.burst(b.Pos, HitParticles, e.Color)
				break
			}
			e.dead = true
			m.score += e.Kind.Points()
			m.cue(CueExplosion)
			m.addShake(ShakeExplosion)
			m.burst(e.Pos, ExplosionParticles, e.Color)
			m.maybeDropPowerUp(*e)
			m.notify()
			break
		}
	}
}

// touchPowerUps collects pickups the player flies over.
func (m *Match) touchPowerUps() {
	for pi := range m.powerUps {
		p := &m.powerUps[pi]
		if p.dead || !m.player.Overlaps(p.Body) {
			continue
		}
		p.dead = true
		m.collect(p.Kind)
	}
}

// compact drops dead entities from every collection.
func (m *Match) compact() {
	m.bullets = compactDead(m.bullets, func(b *Bullet) bool { return b.dead })
	m.enemies = compactDead(m.enemies, func(e *Enemy) bool { return e.dead })
	m.powerUps = compactDead(m.powerUps, func(p *PowerUp) bool { return p.dead })
}

func compactDead[T any](items []T, dead func(*T) bool) []T {
	kept := items[:0]
	for i := range items {
		if !dead(&items[i]) {
			kept = append(kept, items[i])
		}
	}
	return kept
}
