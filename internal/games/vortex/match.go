// Package vortex implements the Neon Vortex arena shooter simulation: a
// circular arena where the player fends off waves of enemies, collecting
// power-ups and surviving under one of three death policies.
//
// A Match owns every entity. An external driver calls Advance once per
// display frame while the match is playing; nothing in the package starts
// goroutines on its own except TickerDriver.
package vortex

import (
	"errors"
	"io"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/core"
)

// ErrSurfaceUnavailable is returned by NewMatch when there is nothing to
// play on.
var ErrSurfaceUnavailable = errors.New("vortex: drawing surface unavailable")

// notifyEvery is the steady-state notification period in frames.
const notifyEvery = 30

// Surface is the area a match is played on, in world units.
type Surface interface {
	Size() (width, height float64)
}

// FixedSurface is a Surface of constant size.
type FixedSurface struct {
	W, H float64
}

// Size returns the surface dimensions.
func (s FixedSurface) Size() (float64, float64) { return s.W, s.H }

// Option configures a Match.
type Option func(*Match)

// WithConfig sets the options and cheats.
func WithConfig(cfg config.Config) Option {
	return func(m *Match) { m.cfg = cfg }
}

// WithSeed seeds the gameplay RNG.
func WithSeed(seed int64) Option {
	return func(m *Match) { m.seed = seed }
}

// WithClock replaces time.Now for the dpm metric.
func WithClock(now func() time.Time) Option {
	return func(m *Match) { m.now = now }
}

// WithCueSink sets where audio cues go.
func WithCueSink(s CueSink) Option {
	return func(m *Match) {
		if s != nil {
			m.sink = s
		}
	}
}

// WithLogger sets the match logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Match) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithObserver subscribes o from construction.
func WithObserver(o Observer) Option {
	return func(m *Match) { m.subscribe(o) }
}

type subscription struct {
	id int
	o  Observer
}

// Match is the simulation controller. It owns the entity collections and
// the MENU/PLAYING/PAUSED/GAMEOVER state machine.
//
// Methods are safe to call from multiple goroutines, but Advance is meant
// to be driven by exactly one driver.
type Match struct {
	mu sync.Mutex

	surface Surface
	arena   Arena
	cfg     config.Config
	sink    CueSink
	logger  *log.Logger
	now     func() time.Time
	seed    int64
	rng     *SimpleRNG
	fx      *SimpleRNG

	subs    []subscription
	nextSub int
	pending []Notification
	cues    []Cue

	state        State
	endReason    EndReason
	score        int
	deaths       int
	totalSpawned int
	dpm          float64
	startTime    time.Time
	frame        uint64
	spawnTimer   float64
	shake        float64
	aim          core.Vec2

	player    Player
	enemies   []Enemy
	bullets   []Bullet
	powerUps  []PowerUp
	particles []Particle

	done      chan struct{}
	destroyed bool
}

// NewMatch creates a match in the MENU state on the given surface.
// It fails with ErrSurfaceUnavailable when surface is nil or has no area.
func NewMatch(surface Surface, opts ...Option) (*Match, error) {
	if surface == nil {
		return nil, ErrSurfaceUnavailable
	}
	if w, h := surface.Size(); w <= 0 || h <= 0 {
		return nil, ErrSurfaceUnavailable
	}

	m := &Match{
		surface: surface,
		cfg:     config.Default(),
		sink:    nopSink{},
		logger:  log.New(io.Discard),
		now:     time.Now,
		state:   StateMenu,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.rng = NewSimpleRNG(m.seed)
	m.fx = NewSimpleRNG(m.seed ^ 0x5eed)
	m.arena = m.currentArena()
	m.player = newPlayer(m.arena.Center)
	m.aim = m.arena.Center.Add(core.V(1, 0))
	return m, nil
}

// locked runs fn under the match lock, then delivers the cues and
// notifications it queued outside the lock.
func (m *Match) locked(fn func()) {
	m.mu.Lock()
	fn()
	notes, cues, sink := m.pending, m.cues, m.sink
	m.pending, m.cues = nil, nil
	subs := slices.Clone(m.subs)
	m.mu.Unlock()

	for _, c := range cues {
		sink.Play(c)
	}
	for _, n := range notes {
		for _, s := range subs {
			s.o.OnStateChange(n)
		}
	}
}

// Subscribe registers o for notifications and returns a function that
// removes it.
func (m *Match) Subscribe(o Observer) (cancel func()) {
	var id int
	m.locked(func() { id = m.subscribe(o) })
	return func() {
		m.locked(func() {
			m.subs = slices.DeleteFunc(m.subs, func(s subscription) bool { return s.id == id })
		})
	}
}

func (m *Match) subscribe(o Observer) int {
	m.nextSub++
	m.subs = append(m.subs, subscription{id: m.nextSub, o: o})
	return m.nextSub
}

// StartGame resets the match and enters PLAYING from any state.
func (m *Match) StartGame() {
	m.locked(m.startGame)
}

// Restart is StartGame.
func (m *Match) Restart() {
	m.StartGame()
}

func (m *Match) startGame() {
	if m.destroyed {
		return
	}
	m.arena = m.currentArena()
	m.score = 0
	m.deaths = 0
	m.totalSpawned = 0
	m.dpm = 0
	m.frame = 0
	m.shake = 0
	m.spawnTimer = 0
	m.endReason = EndNone
	m.startTime = m.now()

	m.player = newPlayer(m.arena.Center)
	m.aim = m.arena.Center.Add(core.V(1, 0))
	m.enemies = nil
	m.bullets = nil
	m.powerUps = nil
	m.particles = nil

	m.state = StatePlaying
	m.logger.Debug("match started", "mode", m.cfg.Options.GameMode, "seed", m.seed)
	m.notify()
}

// Pause moves PLAYING to PAUSED. It does nothing in any other state.
func (m *Match) Pause() {
	m.locked(func() {
		if m.destroyed || m.state != StatePlaying {
			return
		}
		m.state = StatePaused
		m.notify()
	})
}

// Resume moves PAUSED back to PLAYING. It does nothing in any other state.
func (m *Match) Resume() {
	m.locked(func() {
		if m.destroyed || m.state != StatePaused {
			return
		}
		m.state = StatePlaying
		m.notify()
	})
}

// TogglePause pauses a playing match or resumes a paused one.
func (m *Match) TogglePause() {
	m.locked(func() {
		if m.destroyed {
			return
		}
		switch m.state {
		case StatePlaying:
			m.state = StatePaused
		case StatePaused:
			m.state = StatePlaying
		default:
			return
		}
		m.notify()
	})
}

// ExitToMenu abandons the match and enters MENU from any state.
func (m *Match) ExitToMenu() {
	m.locked(func() {
		if m.destroyed {
			return
		}
		if m.state == StatePlaying || m.state == StatePaused {
			m.endReason = EndQuit
		}
		m.state = StateMenu
		m.notify()
	})
}

// Destroy ends the match for good. Drivers return, observers are dropped
// and later calls do nothing. It must not be called from an observer.
func (m *Match) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.subs = nil
	m.pending = nil
	m.cues = nil
	m.sink = nopSink{}
	close(m.done)
}

// Done is closed by Destroy.
func (m *Match) Done() <-chan struct{} {
	return m.done
}

// SetOptions replaces the options. Enemies already spawned keep their speed.
func (m *Match) SetOptions(o config.Options) {
	m.locked(func() { m.cfg.Options = o })
}

// SetCheats replaces the debug overrides.
func (m *Match) SetCheats(c config.Cheats) {
	m.locked(func() { m.cfg.Cheats = c })
}

// Config returns the options and cheats in effect.
func (m *Match) Config() config.Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// State returns the current state.
func (m *Match) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Summary is a small copy of the match counters.
type Summary struct {
	State               State
	Mode                config.GameMode
	EndReason           EndReason
	Score               int
	Level               int
	Deaths              int
	DPM                 float64
	TotalEnemiesSpawned int
	Elapsed             time.Duration
}

// Summary returns the current counters without copying entities.
func (m *Match) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Summary{
		State:               m.state,
		Mode:                m.cfg.Options.GameMode,
		EndReason:           m.endReason,
		Score:               m.score,
		Level:               m.level(),
		Deaths:              m.deaths,
		DPM:                 m.dpm,
		TotalEnemiesSpawned: m.totalSpawned,
	}
	if !m.startTime.IsZero() {
		s.Elapsed = m.now().Sub(m.startTime)
	}
	return s
}

// HasPowerUp reports whether kind is active on the player.
func (m *Match) HasPowerUp(kind PowerUpKind) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.player.PowerUps[kind]
	return ok
}

// Advance runs one frame. dt is the frame delta in nominal frames and is
// clamped to [0, MaxDelta]. It does nothing unless the match is PLAYING.
func (m *Match) Advance(dt float64, in Input) {
	m.locked(func() { m.advance(dt, in) })
}

func (m *Match) advance(dt float64, in Input) {
	if m.destroyed || m.state != StatePlaying {
		return
	}
	dt = core.ClampF(dt, 0, MaxDelta)
	m.frame++
	m.refit()

	// Metrics.
	if m.tracksDeaths() {
		m.dpm = DeathsPerMinute(m.deaths, m.now().Sub(m.startTime))
	}
	if m.frame%notifyEvery == 0 {
		m.notify()
	}

	m.applyInput(dt, in)

	m.updatePlayer(dt)
	m.checkWall()
	if m.state != StatePlaying {
		return
	}
	m.updateBullets(dt)
	m.updateEnemies(dt)
	m.updatePowerUps(dt)
	m.updateParticles(dt)

	m.tickSpawner(dt)

	m.resolveCollisions()
	if m.state != StatePlaying {
		return
	}
	m.checkSurvival()
}

// die applies the death policy: god mode ignores the trigger, a shield
// absorbs it, otherwise the mode decides between game over and respawn.
func (m *Match) die(cause string) {
	if m.cfg.Cheats.GodMode {
		return
	}

	if _, ok := m.player.PowerUps[PowerUpShield]; ok {
		delete(m.player.PowerUps, PowerUpShield)
		m.clearThreats()
		m.cue(CueExplosion)
		m.addShake(ShakeShield)
		m.burst(m.player.Pos, ShieldParticles, PowerUpShield.Color())
		m.logger.Debug("shield absorbed hit", "cause", cause)
		m.notify()
		return
	}

	m.cue(CueExplosion)
	m.addShake(ShakeDeath)
	m.burst(m.player.Pos, ExplosionParticles, m.player.Color)

	if !m.tracksDeaths() {
		m.logger.Debug("player died", "cause", cause, "score", m.score)
		m.end(EndGameOver)
		return
	}

	m.deaths++
	m.player.Pos = m.arena.Center
	m.player.Vel = core.Vec2{}
	m.clearThreats()
	m.dpm = DeathsPerMinute(m.deaths, m.now().Sub(m.startTime))
	m.logger.Debug("player respawned", "cause", cause, "deaths", m.deaths, "dpm", m.dpm)
	m.notify()
}

// checkSurvival ends a SURVIVAL match whose dpm passed the threshold.
func (m *Match) checkSurvival() {
	if m.cfg.Options.GameMode != config.ModeSurvival {
		return
	}
	m.dpm = DeathsPerMinute(m.deaths, m.now().Sub(m.startTime))
	if SurvivalExceeded(m.totalSpawned, m.cfg.SurvivalThreshold(), m.dpm) {
		m.logger.Debug("survival threshold exceeded", "dpm", m.dpm, "threshold", m.cfg.SurvivalThreshold())
		m.end(EndSurvivalThreshold)
	}
}

func (m *Match) end(reason EndReason) {
	m.state = StateGameOver
	m.endReason = reason
	m.notify()
}

// tracksDeaths reports whether the mode respawns and measures dpm.
func (m *Match) tracksDeaths() bool {
	mode := m.cfg.Options.GameMode
	return mode == config.ModeInfinite || mode == config.ModeSurvival
}

func (m *Match) level() int {
	return LevelFor(m.score)
}

// Refit follows a change of the surface size. Every entity keeps its place
// relative to the arena, and the player is pulled inside the new wall.
func (m *Match) Refit() {
	m.locked(m.refit)
}

func (m *Match) refit() {
	old, next := m.arena, m.currentArena()
	if old == next || next.Radius <= 0 {
		return
	}
	m.arena = next
	if old.Radius <= 0 {
		return
	}
	k := next.Radius / old.Radius
	move := func(p core.Vec2) core.Vec2 {
		return next.Center.Add(p.Sub(old.Center).Mul(k))
	}

	m.player.Pos = move(m.player.Pos)
	m.aim = move(m.aim)
	for i := range m.enemies {
		m.enemies[i].Pos = move(m.enemies[i].Pos)
	}
	for i := range m.bullets {
		m.bullets[i].Pos = move(m.bullets[i].Pos)
	}
	for i := range m.powerUps {
		m.powerUps[i].Pos = move(m.powerUps[i].Pos)
	}
	for i := range m.particles {
		m.particles[i].Pos = move(m.particles[i].Pos)
	}

	if next.Breached(m.player.Body) {
		out := m.player.Pos.Sub(next.Center).Norm()
		inside := math.Max(next.Radius-m.player.Radius-1, 0)
		m.player.Pos = next.Center.Add(out.Mul(inside))
	}
}

func (m *Match) currentArena() Arena {
	w, h := m.surface.Size()
	return NewArena(w, h)
}

// notify queues a notification for delivery when the lock is released.
func (m *Match) notify() {
	if len(m.subs) == 0 {
		return
	}
	m.pending = append(m.pending, m.notification())
}

func (m *Match) notification() Notification {
	return Notification{
		State:               m.state,
		Score:               m.score,
		Level:               m.level(),
		DPM:                 m.dpm,
		PowerUps:            m.activeKinds(),
		TotalEnemiesSpawned: m.totalSpawned,
		Deaths:              m.deaths,
	}
}

// activeKinds lists active power-ups in kind order.
func (m *Match) activeKinds() []string {
	kinds := make([]string, 0, len(m.player.PowerUps))
	for k := PowerUpKind(0); k < powerUpKindCount; k++ {
		if _, ok := m.player.PowerUps[k]; ok {
			kinds = append(kinds, k.String())
		}
	}
	return kinds
}
