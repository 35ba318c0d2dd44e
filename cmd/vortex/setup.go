package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/neon-vortex/internal/audio"
	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/core"
	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
	"github.com/vovakirdan/neon-vortex/internal/platform/tui"
	"github.com/vovakirdan/neon-vortex/internal/storage"
)

// loadOptions reads the options file and applies the command line
// overrides on top of it.
func loadOptions() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagMode != "" {
		mode, ok := parseMode(flagMode)
		if !ok {
			return cfg, fmt.Errorf("unknown mode %q (use normal, infinite or survival)", flagMode)
		}
		cfg.Options.GameMode = mode
	}
	if flagWall != "" {
		wall, ok := config.Parse(strings.ToUpper(flagWall), config.WallModes)
		if !ok {
			return cfg, fmt.Errorf("unknown wall mode %q (use die or bounce)", flagWall)
		}
		cfg.Options.WallMode = wall
	}
	if flagDifficulty != "" {
		d, ok := config.Parse(strings.ToUpper(flagDifficulty), config.Difficulties)
		if !ok {
			return cfg, fmt.Errorf("unknown difficulty %q (use easy, normal or hard)", flagDifficulty)
		}
		cfg.Options.Difficulty = d
	}
	if flagGod {
		cfg.Cheats.GodMode = true
	}
	return config.Normalize(cfg), nil
}

// parseMode accepts a mode name or a registry ID.
func parseMode(s string) (config.GameMode, bool) {
	if mode, ok := config.Parse(strings.ToUpper(s), config.GameModes); ok {
		return mode, true
	}
	for _, mode := range config.GameModes {
		if vortex.IDForMode(mode) == s {
			return mode, true
		}
	}
	return "", false
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func logLevel() log.Level {
	if flagDebug {
		return log.DebugLevel
	}
	return log.InfoLevel
}

// newLogger returns a logger for commands that keep the terminal.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
		Level:           logLevel(),
	})
}

// localSession holds what the terminal UI needs for a local player.
type localSession struct {
	deps    tui.Deps
	sink    audio.Sink
	logFile io.Closer
}

// openLocalSession opens the score store, the log file and the speaker.
// Storage and log failures are reported and the game goes on without them.
func openLocalSession(cfg config.Config) *localSession {
	s := &localSession{}

	out := io.Discard
	if f, err := openLogFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
	} else {
		out = f
		s.logFile = f
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "vortex",
		Level:           logLevel(),
	})

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		store = nil
	}

	s.sink = audio.Open(cfg.Options.SoundEnabled, logger)
	s.deps = tui.Deps{
		Store:  store,
		Config: cfg,
		Sink:   s.sink,
		Logger: logger,
	}
	return s
}

// setConfig applies edited options, reopening the speaker when sound was
// switched.
func (s *localSession) setConfig(cfg config.Config) {
	if cfg.Options.SoundEnabled != s.deps.Config.Options.SoundEnabled {
		s.sink.Close()
		s.sink = audio.Open(cfg.Options.SoundEnabled, s.deps.Logger)
		s.deps.Sink = s.sink
	}
	s.deps.Config = cfg
}

func (s *localSession) Close() {
	s.sink.Close()
	if s.deps.Store != nil {
		s.deps.Store.Close()
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// openLogFile opens --log, or ~/.vortex/vortex.log, for appending.
func openLogFile() (*os.File, error) {
	path := flagLogFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".vortex", "vortex.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}
