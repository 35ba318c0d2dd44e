package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/neon-vortex/internal/core"
	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
	"github.com/vovakirdan/neon-vortex/internal/registry"
	"github.com/vovakirdan/neon-vortex/internal/spectate"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.vortex/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the frame rate of remote sessions.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultTickRate,
	}
}

// SSHServer serves Neon Vortex sessions over SSH. Every remote match is
// published on the spectator hub when one is given.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	deps   Deps
	hub    *spectate.Hub
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. Sessions share deps.Store and
// play with deps.Config; audio is never played for remote sessions.
func NewSSHServer(cfg SSHServerConfig, deps Deps, hub *spectate.Hub) (*SSHServer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "vortex-ssh",
		})
	}
	deps.Sink = nil
	deps.Logger = logger

	srv := &SSHServer{
		config: cfg,
		deps:   deps,
		hub:    hub,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ssh: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".vortex", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("ssh: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	// Matches left running by a dropped connection are ended with it.
	var (
		mu      sync.Mutex
		matches []*vortex.Match
	)
	publish := func(m *vortex.Match) {
		mu.Lock()
		matches = append(matches, m)
		mu.Unlock()
		if s.hub != nil {
			s.hub.Publish(sess.User(), m)
		}
	}
	go func() {
		<-sess.Context().Done()
		mu.Lock()
		defer mu.Unlock()
		for _, m := range matches {
			m.Destroy()
		}
	}()

	model := NewSessionModel(s.deps, cfg, sess.User(), publish)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// Serve runs the SSH server until ctx is done, then shuts it down.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
	screenOptions
)

// SessionModel manages the full session flow inside one program:
// menu -> game, scoreboard or options -> menu. Sub-models quit their own
// programs when done; here those quits become screen switches.
type SessionModel struct {
	deps     Deps
	config   core.RuntimeConfig
	username string
	publish  func(*vortex.Match)

	screen  sessionScreen
	menu    MenuModel
	scores  ScoreboardModel
	options OptionsModel
	game    *GameModel

	quitting bool
}

// NewSessionModel creates a new session model. publish, when not nil, is
// called with every match the session starts.
func NewSessionModel(deps Deps, cfg core.RuntimeConfig, username string, publish func(*vortex.Match)) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	return SessionModel{
		deps:     deps,
		config:   cfg,
		username: username,
		publish:  publish,
		menu:     NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenOptions:
		return m.updateOptions(msg)
	default:
		return m.updateMenu(msg)
	}
}

// toMenu shows a fresh menu.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.game = nil
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.deps.Store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()

	case m.menu.WantsOptions():
		m.screen = screenOptions
		m.options = NewOptionsModel(m.deps.Config, "", m.config.ScreenW, m.config.ScreenH)
		m.options.readOnly = true
		return m, m.options.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			m.deps.Logger.Error("cannot create game", "err", err)
			return m.toMenu()
		}
		m.config.Seed = time.Now().UnixNano()

		gm := NewGameModel(game, m.deps, m.config)
		gm.embedded = true
		m.game = &gm
		m.screen = screenGame
		cmd := m.game.Init()

		if h, ok := game.(matchHolder); ok && h.Match() != nil && m.publish != nil {
			m.publish(h.Match())
		}
		m.deps.Logger.Info("match started", "user", m.username, "game", game.ID())
		return m, cmd
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// updateOptions handles updates when the options editor is shown. Edits
// apply to the rest of the session.
func (m SessionModel) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.options.Update(msg)
	if om, ok := newModel.(OptionsModel); ok {
		m.options = om
	}

	if m.options.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.options.IsDone() {
		m.deps.Config = m.options.Config()
		return m.toMenu()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenOptions:
		return m.options.View()
	default:
		return m.menu.View()
	}
}
