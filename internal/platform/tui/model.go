package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/core"
	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
	"github.com/vovakirdan/neon-vortex/internal/registry"
	"github.com/vovakirdan/neon-vortex/internal/storage"
)

// Deps is what a game model needs besides the game itself.
type Deps struct {
	Store  *storage.Store
	Config config.Config
	Sink   vortex.CueSink
	Logger *log.Logger
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

// matchHolder is implemented by games backed by a vortex match.
type matchHolder interface {
	Match() *vortex.Match
}

// bestSetter is implemented by games that show the best score.
type bestSetter interface {
	SetBest(score int)
}

// GameModel is the Bubble Tea model that drives one game: every tick it
// steps the simulation with the input gathered since the previous tick.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	rec        *Recorder
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keys       *KeyMapper
	gameState  core.GameState
	lastTick   time.Time
	quitting   bool
	backToMenu bool
	embedded   bool // runs inside a SessionModel
}

// NewGameModel creates a model for game. Vortex games get the options,
// cue sink, logger and best score from deps.
func NewGameModel(game registry.Game, deps Deps, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := deps.logger()
	rec := NewRecorder(scoreStore(deps.Store), game.ID(), logger)
	if g, ok := game.(*vortex.Game); ok {
		opts := deps.Config
		if opts == (config.Config{}) {
			opts = config.Default()
		}
		g.Configure(opts)
		g.SetCueSink(deps.Sink)
		g.SetLogger(logger)
		g.SetBest(rec.Best())
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		rec:        rec,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickInterval())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keys.MapMouse(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	// B on the menu or game over screen leaves the game; while playing it
	// only takes the match back to its menu.
	if action == core.ActionBack && (m.gameState.InMenu || m.gameState.GameOver) {
		m.finish()
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	m.keys.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleResize follows the terminal size.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if !m.lastTick.IsZero() {
		m.inputFrame.Elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.track()

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickInterval())
}

// track hands the match counters to the recorder. The HUD best score is
// refreshed when a new match starts so a record shows on game over.
func (m *GameModel) track() {
	h, ok := m.game.(matchHolder)
	if !ok || h.Match() == nil {
		return
	}
	if m.rec.Track(h.Match().Summary()) == TrackStarted {
		if b, ok := m.game.(bestSetter); ok {
			b.SetBest(m.rec.Best())
		}
	}
}

// finish records a running match before the model is left.
func (m *GameModel) finish() {
	h, ok := m.game.(matchHolder)
	if !ok || h.Match() == nil {
		return
	}
	match := h.Match()
	m.rec.Abort(match.Summary())
	match.Destroy()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".vortex", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the terminal until the player quits or leaves it.
// It returns true when the player asked to go back to the menu.
func Run(game registry.Game, deps Deps, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, deps, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	gm, ok := final.(GameModel)
	return ok && gm.BackToMenu(), nil
}
