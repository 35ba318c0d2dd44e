// Package config provides YAML-based match configuration loading and
// difficulty tables for the vortex platform.
package config

// WallMode selects what happens when the player touches the arena edge.
type WallMode string

const (
	WallDie    WallMode = "DIE"
	WallBounce WallMode = "BOUNCE"
)

// GameMode governs death handling, metrics and the termination rule.
type GameMode string

const (
	ModeNormal   GameMode = "NORMAL"
	ModeInfinite GameMode = "INFINITE"
	ModeSurvival GameMode = "SURVIVAL"
)

// EnemySpeed is the enemy speed option.
type EnemySpeed string

const (
	SpeedSlow   EnemySpeed = "SLOW"
	SpeedNormal EnemySpeed = "NORMAL"
	SpeedFast   EnemySpeed = "FAST"
)

// MovementMode selects between recoil-driven and WASD movement.
type MovementMode string

const (
	MovementRecoil MovementMode = "RECOIL"
	MovementWASD   MovementMode = "WASD"
)

// Difficulty scales power-up durations.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyNormal Difficulty = "NORMAL"
	DifficultyHard   Difficulty = "HARD"
)

// Options are the player-facing match options.
type Options struct {
	WallMode          WallMode     `yaml:"wall_mode"`
	GameMode          GameMode     `yaml:"game_mode"`
	EnemySpeed        EnemySpeed   `yaml:"enemy_speed"`
	MovementMode      MovementMode `yaml:"movement_mode"`
	SoundEnabled      bool         `yaml:"sound_enabled"`
	AutoFire          bool         `yaml:"auto_fire"`
	Difficulty        Difficulty   `yaml:"difficulty"`
	SurvivalThreshold int          `yaml:"survival_threshold"`
}

// Cheats are debug overrides layered on top of Options.
type Cheats struct {
	SpawnRate            float64 `yaml:"spawn_rate"`
	PowerUpChance        float64 `yaml:"power_up_chance"`
	EnemySpeedMultiplier float64 `yaml:"enemy_speed_multiplier"`
	GodMode              bool    `yaml:"god_mode"`

	// nil defers to Options.SurvivalThreshold.
	SurvivalThresholdOverride *int `yaml:"survival_threshold_override"`
}

// Config is the on-disk shape of vortex.yaml.
type Config struct {
	Options Options `yaml:"options"`
	Cheats  Cheats  `yaml:"cheats"`
}

// SurvivalThreshold returns the dpm ceiling in effect: the cheat override
// when set, otherwise the configured option.
func (c Config) SurvivalThreshold() int {
	if c.Cheats.SurvivalThresholdOverride != nil {
		return *c.Cheats.SurvivalThresholdOverride
	}
	return c.Options.SurvivalThreshold
}
