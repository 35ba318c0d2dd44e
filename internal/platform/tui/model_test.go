package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/core"
	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
	"github.com/vovakirdan/neon-vortex/internal/storage"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Options.SoundEnabled = false
	cfg.Cheats.SpawnRate = 600
	return cfg
}

func newTestGameModel(t *testing.T, store *storage.Store) (GameModel, *vortex.Game) {
	t.Helper()
	game := vortex.New(config.ModeInfinite)
	m := NewGameModel(game, Deps{Store: store, Config: testConfig()}, core.RuntimeConfig{
		ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7,
	})
	m.Init()
	t.Cleanup(func() {
		if game.Match() != nil {
			game.Match().Destroy()
		}
	})
	return m, game
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func send(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return gm, cmd
}

// tick sends n ticks one nominal frame apart.
func tick(t *testing.T, m GameModel, n int) GameModel {
	t.Helper()
	for range n {
		next := t0
		if !m.lastTick.IsZero() {
			next = m.lastTick.Add(vortex.NominalFrame)
		}
		m, _ = send(t, m, TickMsg(next))
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestGameModelTicksAdvanceMatch(t *testing.T) {
	m, game := newTestGameModel(t, nil)

	m = tick(t, m, 10)
	s := game.Match().Snapshot()
	if s.State != vortex.StatePlaying || s.Frame != 10 {
		t.Fatalf("after 10 ticks state %v frame %d, expected PLAYING frame 10", s.State, s.Frame)
	}

	m, _ = send(t, m, runeKey("p"))
	m = tick(t, m, 3)
	if !m.gameState.Paused {
		t.Fatal("p did not pause the match")
	}
	if f := game.Match().Snapshot().Frame; f != 10 {
		t.Errorf("paused match advanced to frame %d", f)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = tick(t, m, 1)
	if m.gameState.Paused {
		t.Error("esc did not resume the match")
	}
}

func TestGameModelMouseAims(t *testing.T) {
	m, game := newTestGameModel(t, nil)
	m = tick(t, m, 1)

	m, _ = send(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})
	tick(t, m, 1)

	want := vortex.CellToWorld(10, 5)
	if s := game.Match().Snapshot(); s.AimX != want.X || s.AimY != want.Y {
		t.Errorf("aim = (%v, %v), expected (%v, %v)", s.AimX, s.AimY, want.X, want.Y)
	}
}

func TestGameModelBackRecordsAndLeaves(t *testing.T) {
	store := openStore(t)
	m, game := newTestGameModel(t, store)
	m = tick(t, m, 5)
	match := game.Match()

	// First B takes the match to its menu and records it as quit.
	m, cmd := send(t, m, runeKey("b"))
	if isQuit(cmd) || m.BackToMenu() {
		t.Fatal("B while playing should not leave the game")
	}
	m = tick(t, m, 1)
	if !m.gameState.InMenu {
		t.Fatal("B while playing did not return to the match menu")
	}

	recs, err := store.RecentMatches("vortex_infinite", 10)
	if err != nil {
		t.Fatalf("RecentMatches() error: %v", err)
	}
	if len(recs) != 1 || recs[0].EndReason != "quit" {
		t.Fatalf("recorded matches = %+v, expected one quit", recs)
	}

	// Second B leaves the game.
	m, cmd = send(t, m, runeKey("b"))
	if !m.BackToMenu() || !isQuit(cmd) {
		t.Errorf("B on the menu: back %v quit %v, expected both", m.BackToMenu(), isQuit(cmd))
	}
	select {
	case <-match.Done():
	default:
		t.Error("leaving the game did not destroy the match")
	}
	if _, cmd := send(t, m, TickMsg(t0)); cmd != nil {
		t.Error("left game keeps ticking")
	}
}

func TestGameModelQuitRecordsRunningMatch(t *testing.T) {
	store := openStore(t)
	m, _ := newTestGameModel(t, store)
	m = tick(t, m, 3)

	m, cmd := send(t, m, runeKey("q"))
	if !m.IsQuitting() || !isQuit(cmd) {
		t.Fatal("q did not quit")
	}
	if m.View() != "" {
		t.Error("quitting model still renders")
	}
	recs, _ := store.RecentMatches("vortex_infinite", 10)
	if len(recs) != 1 || recs[0].EndReason != "quit" {
		t.Errorf("recorded matches = %+v, expected one quit", recs)
	}
}

func TestGameModelEmbeddedBackKeepsProgram(t *testing.T) {
	m, _ := newTestGameModel(t, nil)
	m.embedded = true
	m = tick(t, m, 1)

	m, _ = send(t, m, runeKey("b"))
	m = tick(t, m, 1)
	m, cmd := send(t, m, runeKey("b"))
	if !m.BackToMenu() || cmd != nil {
		t.Errorf("embedded back: back %v cmd %v, expected true and nil", m.BackToMenu(), cmd)
	}
}

func TestGameModelResizeKeepsMatch(t *testing.T) {
	m, game := newTestGameModel(t, nil)
	m = tick(t, m, 2)
	match := game.Match()

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if game.Match() != match {
		t.Error("resize replaced the match")
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 120x40", m.screen.Width(), m.screen.Height())
	}
	if view := m.View(); view == "" {
		t.Error("View() empty after resize")
	}
}

func TestGameModelConfiguresGame(t *testing.T) {
	game := vortex.New(config.ModeSurvival)
	cfg := testConfig()
	cfg.Cheats.GodMode = true
	m := NewGameModel(game, Deps{Config: cfg}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()
	defer game.Match().Destroy()

	got := game.Match().Config()
	if !got.Cheats.GodMode || got.Options.GameMode != config.ModeSurvival {
		t.Errorf("match config = %+v, expected god mode in SURVIVAL", got)
	}
}
