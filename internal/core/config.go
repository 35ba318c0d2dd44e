package core

import "time"

// DefaultTickRate is the tick rate used when none is configured.
const DefaultTickRate = 60

// RuntimeConfig is what the platform tells a game about where it runs.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns
	ScreenH  int   // terminal rows
	TickRate int   // ticks per second, 0 for DefaultTickRate
	Seed     int64 // 0 asks the platform for a time-based seed
}

// TickInterval returns the time between two ticks.
func (c RuntimeConfig) TickInterval() time.Duration {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}

// Fits reports whether the screen has at least w columns and h rows.
func (c RuntimeConfig) Fits(w, h int) bool {
	return c.ScreenW >= w && c.ScreenH >= h
}

// GameState is the status a game reports to the platform after each step.
type GameState struct {
	Score    int
	Level    int
	GameOver bool
	Paused   bool
	InMenu   bool // at the game's own title screen
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
