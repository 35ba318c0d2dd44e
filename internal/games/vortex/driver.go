package vortex

import (
	"context"
	"time"
)

// InputSource samples the input for the next frame.
type InputSource func(s Snapshot) Input

// Driver calls Match.Advance once per frame while the match is playing.
type Driver interface {
	Run(ctx context.Context, m *Match, input InputSource) error
}

// TickerDriver drives a match from a time.Ticker. Paused matches are not
// advanced; the frame delta is measured from real time so a resumed match
// picks up with a clamped delta.
type TickerDriver struct {
	Interval time.Duration // defaults to NominalFrame

	// StopOnGameOver makes Run return once the match reaches GAMEOVER.
	StopOnGameOver bool
}

// Run drives m until ctx is done or m is destroyed. It returns ctx.Err()
// on cancellation and nil otherwise.
func (d TickerDriver) Run(ctx context.Context, m *Match, input InputSource) error {
	interval := d.Interval
	if interval <= 0 {
		interval = NominalFrame
	}
	if input == nil {
		input = func(Snapshot) Input { return Input{} }
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.Done():
			return nil
		case now := <-ticker.C:
			dt := FrameDelta(now.Sub(last))
			last = now

			switch m.State() {
			case StatePlaying:
				m.Advance(dt, input(m.Snapshot()))
			case StateGameOver:
				if d.StopOnGameOver {
					return nil
				}
			}
		}
	}
}
