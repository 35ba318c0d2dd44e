package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/neon-vortex/internal/config"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want config.GameMode
		ok   bool
	}{
		{"normal", config.ModeNormal, true},
		{"SURVIVAL", config.ModeSurvival, true},
		{"vortex_infinite", config.ModeInfinite, true},
		{"vortex", config.ModeNormal, true},
		{"arcade", "", false},
	}
	for _, tt := range tests {
		got, ok := parseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseMode(%q) = %q, %v; expected %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// withFlags resets the option flags after the test.
func withFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		flagConfig, flagMode, flagWall, flagDifficulty = "", "", "", ""
		flagGod = false
	})
}

func TestLoadOptionsOverrides(t *testing.T) {
	withFlags(t)
	path := filepath.Join(t.TempDir(), "vortex.yaml")
	if err := config.Save(path, config.Default()); err != nil {
		t.Fatal(err)
	}

	flagConfig = path
	flagMode = "survival"
	flagWall = "bounce"
	flagDifficulty = "hard"
	flagGod = true

	cfg, err := loadOptions()
	if err != nil {
		t.Fatalf("loadOptions: %v", err)
	}
	if cfg.Options.GameMode != config.ModeSurvival {
		t.Errorf("mode = %s", cfg.Options.GameMode)
	}
	if cfg.Options.WallMode != config.WallBounce {
		t.Errorf("wall = %s", cfg.Options.WallMode)
	}
	if cfg.Options.Difficulty != config.DifficultyHard {
		t.Errorf("difficulty = %s", cfg.Options.Difficulty)
	}
	if !cfg.Cheats.GodMode {
		t.Error("god mode not set")
	}
}

func TestLoadOptionsRejectsUnknownValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vortex.yaml")
	if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
		t.Fatal(err)
	}

	for name, set := range map[string]func(){
		"mode":       func() { flagMode = "tetris" },
		"wall":       func() { flagWall = "wrap" },
		"difficulty": func() { flagDifficulty = "insane" },
	} {
		t.Run(name, func(t *testing.T) {
			withFlags(t)
			flagConfig = path
			set()
			if _, err := loadOptions(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPortOf(t *testing.T) {
	for addr, want := range map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"localhost:8080": "8080",
		"nonsense":       "nonsense",
	} {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, expected %q", addr, got, want)
		}
	}
}
