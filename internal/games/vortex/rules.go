package vortex

import (
	"math"
	"time"
)

// LevelFor returns the level reached at score.
func LevelFor(score int) int {
	return 1 + score/1000
}

// DeathsPerMinute returns deaths per elapsed minute rounded to one decimal.
// It is 0 while no time has elapsed.
func DeathsPerMinute(deaths int, elapsed time.Duration) float64 {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	return math.Round(float64(deaths)/minutes*10) / 10
}

// GraceEnemies returns how many enemies must spawn before the survival
// threshold is enforced.
func GraceEnemies(threshold int) int {
	return int(math.Ceil(120 / float64(max(threshold, 1))))
}

// SurvivalExceeded reports whether a survival match must end. The dpm check
// is strict and only runs once the grace count has been reached.
func SurvivalExceeded(spawned, threshold int, dpm float64) bool {
	if spawned < GraceEnemies(threshold) {
		return false
	}
	return dpm > float64(threshold)
}
