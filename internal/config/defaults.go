package config

import (
	_ "embed"
)

//go:embed defaults/vortex.yaml
var defaultVortexYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Options: Options{
			WallMode:          WallBounce,
			GameMode:          ModeInfinite,
			EnemySpeed:        SpeedSlow,
			MovementMode:      MovementWASD,
			SoundEnabled:      true,
			AutoFire:          false,
			Difficulty:        DifficultyNormal,
			SurvivalThreshold: 30,
		},
		Cheats: DefaultCheats(),
	}
}

// DefaultCheats returns cheats with every override disabled.
func DefaultCheats() Cheats {
	return Cheats{
		SpawnRate:            60,
		PowerUpChance:        0.3,
		EnemySpeedMultiplier: 1.0,
		GodMode:              false,
	}
}

// DefaultYAML returns the embedded default vortex.yaml.
func DefaultYAML() []byte {
	return defaultVortexYAML
}
