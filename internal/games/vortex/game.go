package vortex

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/core"
	"github.com/vovakirdan/neon-vortex/internal/registry"
)

// Registry IDs, one per game mode.
const (
	IDNormal   = "vortex"
	IDInfinite = "vortex_infinite"
	IDSurvival = "vortex_survival"
)

// holdTicks is how long a movement key counts as held after a press.
// Terminals report key repeats but never key releases.
const holdTicks = 9

var movementActions = [...]struct {
	action core.Action
	key    Keys
}{
	{core.ActionUp, KeyUp},
	{core.ActionDown, KeyDown},
	{core.ActionLeft, KeyLeft},
	{core.ActionRight, KeyRight},
}

func init() {
	registry.Register(IDNormal, func() registry.Game { return New(config.ModeNormal) })
	registry.Register(IDInfinite, func() registry.Game { return New(config.ModeInfinite) })
	registry.Register(IDSurvival, func() registry.Game { return New(config.ModeSurvival) })
}

// IDForMode returns the registry ID that plays mode.
func IDForMode(mode config.GameMode) string {
	switch mode {
	case config.ModeInfinite:
		return IDInfinite
	case config.ModeSurvival:
		return IDSurvival
	default:
		return IDNormal
	}
}

// Game adapts a Match to the registry.Game interface for the terminal
// platform: it turns input frames into Input and draws the arena.
type Game struct {
	mode      config.GameMode
	cfg       config.Config
	sink      CueSink
	logger    *log.Logger
	observers []Observer
	best      int

	runtime  core.RuntimeConfig
	surface  *CellSurface
	match    *Match
	tooSmall bool

	held   [len(movementActions)]int
	aim    core.Vec2
	hasAim bool
}

// New creates a game that plays mode.
func New(mode config.GameMode) *Game {
	return &Game{mode: mode, cfg: config.Default()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return IDForMode(g.mode)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.mode {
	case config.ModeInfinite:
		return "Neon Vortex (Infinite)"
	case config.ModeSurvival:
		return "Neon Vortex (Survival)"
	default:
		return "Neon Vortex"
	}
}

// Mode returns the game mode this game plays.
func (g *Game) Mode() config.GameMode {
	return g.mode
}

// Configure sets options and cheats for the next Reset. The game mode
// always comes from the registry entry.
func (g *Game) Configure(cfg config.Config) {
	g.cfg = cfg
	if g.match != nil {
		cfg.Options.GameMode = g.mode
		g.match.SetOptions(cfg.Options)
		g.match.SetCheats(cfg.Cheats)
	}
}

// SetCueSink sets where audio cues go from the next Reset on.
func (g *Game) SetCueSink(s CueSink) { g.sink = s }

// SetLogger sets the match logger from the next Reset on.
func (g *Game) SetLogger(l *log.Logger) { g.logger = l }

// Observe adds an observer to every match this game creates.
func (g *Game) Observe(o Observer) {
	g.observers = append(g.observers, o)
	if g.match != nil {
		g.match.Subscribe(o)
	}
}

// SetBest sets the best score shown in the HUD.
func (g *Game) SetBest(score int) { g.best = score }

// Match returns the running match, or nil when the screen is unusable.
func (g *Game) Match() *Match { return g.match }

// Reset starts a fresh match sized to the screen.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	if g.match != nil {
		g.match.Destroy()
		g.match = nil
	}
	surface := ArenaSurface(rc.ScreenW, rc.ScreenH)
	g.surface = &surface
	g.tooSmall = !rc.Fits(MinScreenW, MinScreenH)
	g.held = [len(movementActions)]int{}
	g.hasAim = false

	cfg := g.cfg
	cfg.Options.GameMode = g.mode
	opts := []Option{
		WithConfig(cfg),
		WithSeed(rc.Seed),
		WithCueSink(g.sink),
		WithLogger(g.logger),
	}
	for _, o := range g.observers {
		opts = append(opts, WithObserver(o))
	}

	m, err := NewMatch(g.surface, opts...)
	if err != nil {
		g.tooSmall = true
		return
	}
	g.match = m
	m.StartGame()
}

// Resize adapts the arena to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	if g.match == nil {
		g.Reset(g.runtime)
		return
	}
	*g.surface = ArenaSurface(w, h)
	g.tooSmall = !g.runtime.Fits(MinScreenW, MinScreenH)
	if !g.tooSmall {
		g.match.Refit()
	}
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.match == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}
	m := g.match

	switch state := m.State(); {
	case in.Has(core.ActionRestart) && (state == StateGameOver || state == StateMenu):
		m.StartGame()
		g.held = [len(movementActions)]int{}
		return core.StepResult{State: g.State()}
	case in.Has(core.ActionPause):
		m.TogglePause()
	case in.Has(core.ActionBack):
		m.ExitToMenu()
	}

	frame := g.input(in)
	if m.State() == StatePlaying {
		dt := 1.0
		if in.Elapsed > 0 {
			dt = FrameDelta(in.Elapsed)
		}
		m.Advance(dt, frame)
	}
	return core.StepResult{State: g.State()}
}

// input converts a platform input frame into simulation input.
func (g *Game) input(in core.InputFrame) Input {
	var out Input
	for i, ma := range movementActions {
		if in.Has(ma.action) {
			g.held[i] = holdTicks
		} else if g.held[i] > 0 {
			g.held[i]--
		}
		if g.held[i] > 0 {
			out.Held |= ma.key
		}
	}

	if in.HasPointer {
		g.aim, g.hasAim = CellToWorld(in.PointerX, in.PointerY), true
	}
	var nudge core.Vec2
	if in.Has(core.ActionAimUp) {
		nudge.Y -= CellHeight
	}
	if in.Has(core.ActionAimDown) {
		nudge.Y += CellHeight
	}
	if in.Has(core.ActionAimLeft) {
		nudge.X -= CellWidth
	}
	if in.Has(core.ActionAimRight) {
		nudge.X += CellWidth
	}
	if nudge != (core.Vec2{}) {
		if !g.hasAim {
			s := g.match.Snapshot()
			g.aim = core.V(s.AimX, s.AimY)
		}
		g.aim, g.hasAim = g.aim.Add(nudge), true
	}

	out.Aim, out.HasAim = g.aim, g.hasAim
	out.Fire = in.Has(core.ActionFire)
	return out
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.match == nil {
		dst.Clear()
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	Render(dst, g.match.Snapshot(), HUD{Title: g.Title(), Best: g.best, Hints: true})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.match == nil {
		return core.GameState{Level: 1}
	}
	s := g.match.Summary()
	return core.GameState{
		Score:    s.Score,
		Level:    s.Level,
		GameOver: s.State == StateGameOver,
		Paused:   s.State == StatePaused,
		InMenu:   s.State == StateMenu,
	}
}
