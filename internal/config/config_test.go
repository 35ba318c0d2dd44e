package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse(embedded) error: %v", err)
	}
	def := Default()
	if cfg.Options != def.Options {
		t.Errorf("embedded options = %+v, expected %+v", cfg.Options, def.Options)
	}
	if cfg.Cheats.SpawnRate != def.Cheats.SpawnRate ||
		cfg.Cheats.PowerUpChance != def.Cheats.PowerUpChance ||
		cfg.Cheats.EnemySpeedMultiplier != def.Cheats.EnemySpeedMultiplier ||
		cfg.Cheats.GodMode != def.Cheats.GodMode {
		t.Errorf("embedded cheats = %+v, expected %+v", cfg.Cheats, def.Cheats)
	}
	if cfg.Cheats.SurvivalThresholdOverride != nil {
		t.Errorf("embedded override = %v, expected nil", *cfg.Cheats.SurvivalThresholdOverride)
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("options:\n  game_mode: SURVIVAL\n  survival_threshold: 12\ncheats:\n  god_mode: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Options.GameMode != ModeSurvival {
		t.Errorf("GameMode = %v, expected SURVIVAL", cfg.Options.GameMode)
	}
	if cfg.Options.SurvivalThreshold != 12 {
		t.Errorf("SurvivalThreshold = %d, expected 12", cfg.Options.SurvivalThreshold)
	}
	if !cfg.Cheats.GodMode {
		t.Error("GodMode should be true")
	}
	// Keys absent from the file keep defaults.
	if cfg.Options.WallMode != WallBounce {
		t.Errorf("WallMode = %v, expected default BOUNCE", cfg.Options.WallMode)
	}
	if cfg.Cheats.SpawnRate != 60 {
		t.Errorf("SpawnRate = %v, expected default 60", cfg.Cheats.SpawnRate)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("options: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "vortex.yaml")
	cfg := Default()
	cfg.Options.WallMode = WallDie
	cfg.Options.Difficulty = DifficultyHard
	override := 5
	cfg.Cheats.SurvivalThresholdOverride = &override

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Options != cfg.Options {
		t.Errorf("options = %+v, expected %+v", got.Options, cfg.Options)
	}
	if got.SurvivalThreshold() != 5 {
		t.Errorf("SurvivalThreshold() = %d, expected 5", got.SurvivalThreshold())
	}
}

func TestSurvivalThresholdOverride(t *testing.T) {
	cfg := Default()
	if got := cfg.SurvivalThreshold(); got != 30 {
		t.Errorf("SurvivalThreshold() = %d, expected 30", got)
	}
	v := 8
	cfg.Cheats.SurvivalThresholdOverride = &v
	if got := cfg.SurvivalThreshold(); got != 8 {
		t.Errorf("SurvivalThreshold() with override = %d, expected 8", got)
	}
}

func TestNormalize(t *testing.T) {
	cfg := Config{
		Options: Options{
			WallMode:          "SIDEWAYS",
			GameMode:          ModeSurvival,
			EnemySpeed:        "",
			MovementMode:      MovementRecoil,
			Difficulty:        "NIGHTMARE",
			SurvivalThreshold: 0,
		},
		Cheats: Cheats{
			SpawnRate:            -4,
			PowerUpChance:        3,
			EnemySpeedMultiplier: 0,
		},
	}
	got := Normalize(cfg)

	if got.Options.WallMode != WallBounce {
		t.Errorf("WallMode = %v, expected BOUNCE", got.Options.WallMode)
	}
	if got.Options.GameMode != ModeSurvival {
		t.Errorf("GameMode = %v, expected SURVIVAL", got.Options.GameMode)
	}
	if got.Options.EnemySpeed != SpeedSlow {
		t.Errorf("EnemySpeed = %v, expected SLOW", got.Options.EnemySpeed)
	}
	if got.Options.Difficulty != DifficultyNormal {
		t.Errorf("Difficulty = %v, expected NORMAL", got.Options.Difficulty)
	}
	if got.Options.SurvivalThreshold != MinSurvivalThreshold {
		t.Errorf("SurvivalThreshold = %d, expected %d", got.Options.SurvivalThreshold, MinSurvivalThreshold)
	}
	if got.Cheats.SpawnRate != 60 {
		t.Errorf("SpawnRate = %v, expected 60", got.Cheats.SpawnRate)
	}
	if got.Cheats.PowerUpChance != 1 {
		t.Errorf("PowerUpChance = %v, expected 1", got.Cheats.PowerUpChance)
	}
	if got.Cheats.EnemySpeedMultiplier != 1 {
		t.Errorf("EnemySpeedMultiplier = %v, expected 1", got.Cheats.EnemySpeedMultiplier)
	}
}

func TestDifficultyTables(t *testing.T) {
	durations := []struct {
		d    Difficulty
		want float64
	}{
		{DifficultyEasy, 900},
		{DifficultyNormal, 600},
		{DifficultyHard, 300},
	}
	for _, tt := range durations {
		if got := PowerUpDuration(tt.d); got != tt.want {
			t.Errorf("PowerUpDuration(%s) = %v, expected %v", tt.d, got, tt.want)
		}
	}

	speeds := []struct {
		s    EnemySpeed
		want float64
	}{
		{SpeedSlow, 0.5},
		{SpeedNormal, 1.0},
		{SpeedFast, 1.5},
	}
	for _, tt := range speeds {
		if got := SpeedMultiplier(tt.s); got != tt.want {
			t.Errorf("SpeedMultiplier(%s) = %v, expected %v", tt.s, got, tt.want)
		}
	}
}

func TestCycleAndParse(t *testing.T) {
	if got := Cycle(ModeSurvival, GameModes); got != ModeNormal {
		t.Errorf("Cycle(SURVIVAL) = %v, expected NORMAL", got)
	}
	if got := Cycle(WallDie, WallModes); got != WallBounce {
		t.Errorf("Cycle(DIE) = %v, expected BOUNCE", got)
	}
	if got := Cycle(Difficulty("??"), Difficulties); got != DifficultyEasy {
		t.Errorf("Cycle(unknown) = %v, expected EASY", got)
	}

	if v, ok := Parse("HARD", Difficulties); !ok || v != DifficultyHard {
		t.Errorf("Parse(HARD) = %v, %v", v, ok)
	}
	if _, ok := Parse("hard", Difficulties); ok {
		t.Error("Parse should be case-sensitive")
	}
}
