package vortex

import (
	"math"
	"time"

	"github.com/vovakirdan/neon-vortex/internal/core"
)

// Frame timing.
const (
	NominalFrame = 16670 * time.Microsecond
	MaxDelta     = 2.0
)

// ArenaScale is the arena radius as a fraction of the smaller surface side.
const ArenaScale = 0.4

// FrameDelta converts elapsed wall time into a frame delta, in multiples
// of the nominal frame, clamped to MaxDelta to absorb hitches.
func FrameDelta(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return math.Min(float64(elapsed)/float64(NominalFrame), MaxDelta)
}

// Arena is the circular playfield.
type Arena struct {
	Center core.Vec2
	Radius float64
}

// NewArena returns the arena centered on a surface of the given size.
func NewArena(width, height float64) Arena {
	return Arena{
		Center: core.V(width/2, height/2),
		Radius: math.Min(width, height) * ArenaScale,
	}
}

// Breached reports whether a body pokes past the arena wall.
func (a Arena) Breached(b Body) bool {
	return b.Pos.Dist(a.Center)+b.Radius > a.Radius
}

// Escaped reports whether a point has left the arena circle.
func (a Arena) Escaped(p core.Vec2) bool {
	return p.Dist(a.Center) > a.Radius
}

// Bounce reflects b's velocity about the outward wall normal and nudges it
// one unit back toward the center.
func (a Arena) Bounce(b *Body) {
	n := b.Pos.Sub(a.Center).Norm()
	if n == (core.Vec2{}) {
		return
	}
	b.Vel = b.Vel.Sub(n.Mul(2 * b.Vel.Dot(n)))
	b.Pos = b.Pos.Sub(n)
}

// PointOnRim returns the point on the wall at angle a.
func (a Arena) PointOnRim(angle float64) core.Vec2 {
	return a.Center.Add(core.FromAngle(angle).Mul(a.Radius))
}

// integrate advances position by velocity over dt.
func integrate(b *Body, dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))
}

// SimpleRNG is a deterministic pseudo-random number generator.
// Uses a simple LCG (Linear Congruential Generator).
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	// Top 53 bits keep the result strictly below 1.
	return float64(r.Next()>>11) / float64(1<<53)
}

// Range returns a random float64 in [lo, hi).
func (r *SimpleRNG) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
