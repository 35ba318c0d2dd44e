package vortex

import "github.com/vovakirdan/neon-vortex/internal/core"

// Player tuning.
const (
	PlayerRadius       = 10.0
	PlayerFriction     = 0.95 // RECOIL movement
	PlayerFrictionWASD = 0.92
	WASDAcceleration   = 0.5
	FireCooldown       = 10.0
	RapidFireCooldown  = 5.0
	BulletSpeed        = 10.0
	BulletOffset       = 20.0 // spawn distance ahead of the player
	RecoilImpulse      = 5.0
	SpreadAngle        = 0.2
)

// Bullet, pickup and particle tuning.
const (
	BulletRadius        = 3.0
	HostileBulletRadius = 4.0
	HostileBulletSpeed  = 6.0
	PowerUpRadius       = 8.0
	PowerUpLife         = 600.0
	PickupWidening      = 10.0 // extra radius for bullet pickups only
	EnemyFriction       = 0.98
	ParticleFriction    = 0.95
)

// SHOOTER behavior.
const (
	ShooterMinRange = 100.0
	ShooterMaxRange = 200.0
	ShooterBrake    = 0.9
	ShooterReload   = 120.0
)

// Body is the shape shared by every entity.
type Body struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
	Color  core.Color

	dead bool // consumed this frame, dropped on the next compaction
}

// Overlaps reports whether two bodies collide: |a-b| < ra+rb.
func (b Body) Overlaps(o Body) bool {
	return b.Pos.Dist(o.Pos) < b.Radius+o.Radius
}

// EnemyKind is the behavioral variant of an enemy.
type EnemyKind int

const (
	EnemyNormal EnemyKind = iota
	EnemyDasher
	EnemyShooter
	EnemyTank
)

// String returns the kind name.
func (k EnemyKind) String() string {
	switch k {
	case EnemyNormal:
		return "NORMAL"
	case EnemyDasher:
		return "DASHER"
	case EnemyShooter:
		return "SHOOTER"
	case EnemyTank:
		return "TANK"
	default:
		return "UNKNOWN"
	}
}

type enemySpec struct {
	radius float64
	hp     int
	accel  float64
	points int
	color  core.Color
	glyph  rune
}

var enemySpecs = [...]enemySpec{
	EnemyNormal:  {radius: 12, hp: 1, accel: 0.2, points: 100, color: core.ColorRed, glyph: 'o'},
	EnemyDasher:  {radius: 10, hp: 1, accel: 0.4, points: 100, color: core.ColorYellow, glyph: 'd'},
	EnemyShooter: {radius: 12, hp: 1, accel: 0.15, points: 100, color: core.ColorGreen, glyph: 'Y'},
	EnemyTank:    {radius: 18, hp: 3, accel: 0.1, points: 300, color: core.ColorMagenta, glyph: 'O'},
}

func (k EnemyKind) spec() enemySpec {
	if k < 0 || int(k) >= len(enemySpecs) {
		return enemySpecs[EnemyNormal]
	}
	return enemySpecs[k]
}

// Points returns the score awarded for destroying an enemy of this kind.
func (k EnemyKind) Points() int { return k.spec().points }

// MaxHP returns the starting hit points of this kind.
func (k EnemyKind) MaxHP() int { return k.spec().hp }

// Player is the single player-controlled ship.
type Player struct {
	Body
	Rotation float64
	Cooldown float64
	PowerUps map[PowerUpKind]float64 // kind -> remaining ticks
}

func newPlayer(pos core.Vec2) Player {
	return Player{
		Body:     Body{Pos: pos, Radius: PlayerRadius, Color: core.ColorBrightCyan},
		PowerUps: make(map[PowerUpKind]float64),
	}
}

// Enemy is an adversary chasing the player.
type Enemy struct {
	Body
	Kind            EnemyKind
	HP              int
	SpeedMultiplier float64
	ShootTimer      float64 // SHOOTER only
}

func newEnemy(kind EnemyKind, pos core.Vec2, speedMul float64) Enemy {
	s := kind.spec()
	e := Enemy{
		Body:            Body{Pos: pos, Radius: s.radius, Color: s.color},
		Kind:            kind,
		HP:              s.hp,
		SpeedMultiplier: speedMul,
	}
	if kind == EnemyShooter {
		e.ShootTimer = ShooterReload
	}
	return e
}

// Bullet is a projectile. Hostile bullets hurt only the player.
type Bullet struct {
	Body
	Hostile bool
}

func newBullet(pos, vel core.Vec2, hostile bool) Bullet {
	b := Bullet{Body: Body{Pos: pos, Vel: vel, Radius: BulletRadius, Color: core.ColorBrightYellow}}
	if hostile {
		b.Hostile = true
		b.Radius = HostileBulletRadius
		b.Color = core.ColorBrightRed
	}
	return b
}

// PowerUpKind is the kind of a collectible power-up.
type PowerUpKind int

const (
	PowerUpRapidFire PowerUpKind = iota
	PowerUpSpread
	PowerUpShield
	powerUpKindCount
)

// String returns the kind name.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpRapidFire:
		return "RAPID_FIRE"
	case PowerUpSpread:
		return "SPREAD"
	case PowerUpShield:
		return "SHIELD"
	default:
		return "UNKNOWN"
	}
}

// Glyph returns the display character for the kind.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerUpRapidFire:
		return 'R'
	case PowerUpSpread:
		return 'V'
	case PowerUpShield:
		return 'H'
	default:
		return '?'
	}
}

// Color returns the display color for the kind.
func (k PowerUpKind) Color() core.Color {
	switch k {
	case PowerUpRapidFire:
		return core.ColorOrange
	case PowerUpSpread:
		return core.ColorBrightMagenta
	case PowerUpShield:
		return core.ColorBlue
	default:
		return core.ColorWhite
	}
}

// ParsePowerUpKind returns the kind named s.
func ParsePowerUpKind(s string) (PowerUpKind, bool) {
	for k := PowerUpKind(0); k < powerUpKindCount; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// PowerUp is an uncollected pickup that expires after Life ticks.
type PowerUp struct {
	Body
	Kind PowerUpKind
	Life float64
}

func newPowerUp(kind PowerUpKind, pos core.Vec2) PowerUp {
	return PowerUp{
		Body: Body{Pos: pos, Radius: PowerUpRadius, Color: kind.Color()},
		Kind: kind,
		Life: PowerUpLife,
	}
}

// Particle is cosmetic feedback with no gameplay effect.
type Particle struct {
	Body
	Life    float64
	MaxLife float64
}
