package vortex

import "github.com/vovakirdan/neon-vortex/internal/core"

// Autopilot distances.
const (
	autopilotPanic  = 70.0 // flee enemies closer than this
	autopilotMargin = 0.6  // stay within this fraction of the arena radius
)

// Autopilot is an InputSource that aims at the nearest enemy, keeps firing
// and steers away from danger with WASD thrust. It is used by headless
// simulations and the spectator demo match.
func Autopilot(s Snapshot) Input {
	in := Input{Fire: true}
	player := core.V(s.Player.X, s.Player.Y)
	center := core.V(s.ArenaX, s.ArenaY)

	if i := nearestEnemy(s.Enemies, player); i >= 0 {
		target := core.V(s.Enemies[i].X, s.Enemies[i].Y)
		in.Aim, in.HasAim = target, true

		if player.Dist(target) < autopilotPanic {
			in.Held |= thrustKeys(player.Sub(target))
			return in
		}
	}

	if player.Dist(center) > s.ArenaRadius*autopilotMargin {
		in.Held |= thrustKeys(center.Sub(player))
	}
	return in
}

// thrustKeys returns the movement keys pushing along dir.
func thrustKeys(dir core.Vec2) Keys {
	var k Keys
	const dead = 0.3
	n := dir.Norm()
	if n.X > dead {
		k |= KeyRight
	} else if n.X < -dead {
		k |= KeyLeft
	}
	if n.Y > dead {
		k |= KeyDown
	} else if n.Y < -dead {
		k |= KeyUp
	}
	return k
}

// nearestEnemy returns the index of the enemy closest to p, or -1.
func nearestEnemy(enemies []EnemyView, p core.Vec2) int {
	best, bestDist := -1, 0.0
	for i, e := range enemies {
		d := core.V(e.X, e.Y).Dist(p)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
