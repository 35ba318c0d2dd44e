package config

import "math"

// Value lists in display order, used by flag validation and the options screen.
var (
	WallModes     = []WallMode{WallDie, WallBounce}
	GameModes     = []GameMode{ModeNormal, ModeInfinite, ModeSurvival}
	EnemySpeeds   = []EnemySpeed{SpeedSlow, SpeedNormal, SpeedFast}
	MovementModes = []MovementMode{MovementRecoil, MovementWASD}
	Difficulties  = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}
)

// Bounds applied by Normalize.
const (
	MinSurvivalThreshold = 1
	MaxSurvivalThreshold = 600
	MinSpawnRate         = 1
	MaxSpawnRate         = 600
	MaxSpeedMultiplier   = 10
)

// PowerUpDuration returns how many ticks a collected power-up lasts.
func PowerUpDuration(d Difficulty) float64 {
	switch d {
	case DifficultyEasy:
		return 900
	case DifficultyHard:
		return 300
	default:
		return 600
	}
}

// SpeedMultiplier returns the enemy speed multiplier for the option.
func SpeedMultiplier(s EnemySpeed) float64 {
	switch s {
	case SpeedSlow:
		return 0.5
	case SpeedFast:
		return 1.5
	default:
		return 1.0
	}
}

// Normalize maps unknown enum values to defaults and clamps numeric fields
// into ranges the simulation accepts.
func Normalize(cfg Config) Config {
	def := Default()
	o := &cfg.Options
	o.WallMode = pick(o.WallMode, WallModes, def.Options.WallMode)
	o.GameMode = pick(o.GameMode, GameModes, def.Options.GameMode)
	o.EnemySpeed = pick(o.EnemySpeed, EnemySpeeds, def.Options.EnemySpeed)
	o.MovementMode = pick(o.MovementMode, MovementModes, def.Options.MovementMode)
	o.Difficulty = pick(o.Difficulty, Difficulties, def.Options.Difficulty)
	o.SurvivalThreshold = clampI(o.SurvivalThreshold, MinSurvivalThreshold, MaxSurvivalThreshold)

	c := &cfg.Cheats
	if c.SpawnRate <= 0 || math.IsNaN(c.SpawnRate) {
		c.SpawnRate = def.Cheats.SpawnRate
	}
	c.SpawnRate = clampF(c.SpawnRate, MinSpawnRate, MaxSpawnRate)
	if math.IsNaN(c.PowerUpChance) {
		c.PowerUpChance = def.Cheats.PowerUpChance
	}
	c.PowerUpChance = clampF(c.PowerUpChance, 0, 1)
	if c.EnemySpeedMultiplier <= 0 || math.IsNaN(c.EnemySpeedMultiplier) {
		c.EnemySpeedMultiplier = def.Cheats.EnemySpeedMultiplier
	}
	c.EnemySpeedMultiplier = clampF(c.EnemySpeedMultiplier, 0, MaxSpeedMultiplier)
	if c.SurvivalThresholdOverride != nil {
		v := clampI(*c.SurvivalThresholdOverride, MinSurvivalThreshold, MaxSurvivalThreshold)
		c.SurvivalThresholdOverride = &v
	}
	return cfg
}

// Cycle returns the value after cur in values, wrapping around.
// Unknown values cycle to the first entry.
func Cycle[T comparable](cur T, values []T) T {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

// Parse returns the value in values matching s, or false.
func Parse[T ~string](s string, values []T) (T, bool) {
	for _, v := range values {
		if string(v) == s {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func pick[T comparable](v T, values []T, def T) T {
	for _, ok := range values {
		if v == ok {
			return v
		}
	}
	return def
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

func clampI(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
