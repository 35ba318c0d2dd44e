package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-vortex/internal/config"
	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
	"github.com/vovakirdan/neon-vortex/internal/platform/tui"
	"github.com/vovakirdan/neon-vortex/internal/storage"
)

var (
	flagSimFrames   int
	flagSimRealtime bool
	flagSimDuration time.Duration
	flagSimRecord   bool
	flagSimWidth    float64
	flagSimHeight   float64
)

var simCmd = &cobra.Command{
	Use:   "sim [mode]",
	Short: "Run a headless autopilot match",
	Long: `Play a match with the autopilot and no screen, then print the result.

By default frames are stepped back to back with a simulated clock, so a
long match finishes in moments. With --realtime the match runs on a
ticker at --fps until it ends, --duration passes or Ctrl+C.

Examples:
  vortex sim
  vortex sim survival --frames 36000 --seed 42
  vortex sim infinite --realtime --duration 30s
  vortex sim normal --record`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	f := simCmd.Flags()
	f.IntVar(&flagSimFrames, "frames", 36000, "Frames to simulate (stepped mode)")
	f.BoolVar(&flagSimRealtime, "realtime", false, "Run on a real-time ticker")
	f.DurationVar(&flagSimDuration, "duration", time.Minute, "Time limit in real-time mode")
	f.BoolVar(&flagSimRecord, "record", false, "Save the match to the database")
	f.Float64Var(&flagSimWidth, "width", 800, "Arena surface width")
	f.Float64Var(&flagSimHeight, "height", 600, "Arena surface height")
}

func runSim(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		mode, ok := parseMode(args[0])
		if !ok {
			return fmt.Errorf("unknown mode %q, run 'vortex list' to see the modes", args[0])
		}
		opts.Options.GameMode = mode
	}
	opts.Options.SoundEnabled = false

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := newLogger("vortex-sim")

	// Stepped runs keep their own clock so deaths per minute follow game
	// time rather than how fast the host is.
	now := time.Now()
	clock := func() time.Time { return now }

	matchOpts := []vortex.Option{
		vortex.WithConfig(opts),
		vortex.WithSeed(seed),
		vortex.WithLogger(logger),
	}
	if !flagSimRealtime {
		matchOpts = append(matchOpts, vortex.WithClock(clock))
	}
	m, err := vortex.NewMatch(vortex.FixedSurface{W: flagSimWidth, H: flagSimHeight}, matchOpts...)
	if err != nil {
		return err
	}
	defer m.Destroy()

	var rec *tui.Recorder
	if flagSimRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()
		rec = tui.NewRecorder(store, vortex.IDForMode(opts.Options.GameMode), logger)
	}

	logger.Info("simulating",
		"mode", opts.Options.GameMode,
		"seed", seed,
		"realtime", flagSimRealtime,
	)
	m.StartGame()
	if rec != nil {
		rec.Track(m.Summary())
	}

	frames := 0
	if flagSimRealtime {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, flagSimDuration)
		defer cancel()

		driver := vortex.TickerDriver{
			Interval:       time.Second / time.Duration(max(flagFPS, 1)),
			StopOnGameOver: true,
		}
		err := driver.Run(ctx, m, vortex.Autopilot)
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			return err
		}
	} else {
		for ; frames < flagSimFrames && m.State() == vortex.StatePlaying; frames++ {
			m.Advance(1, vortex.Autopilot(m.Snapshot()))
			now = now.Add(vortex.NominalFrame)
		}
	}

	sum := m.Summary()
	if rec != nil {
		if sum.State == vortex.StateGameOver {
			rec.Track(sum)
		} else {
			rec.Abort(sum)
		}
	}
	printSummary(sum, frames, opts)
	if rec != nil {
		fmt.Printf("  %-16s %s\n", "Match ID", rec.MatchID())
	}
	return nil
}

func printSummary(s vortex.Summary, frames int, opts config.Config) {
	fmt.Printf("Simulated %s match\n", s.Mode)
	fmt.Println()
	if frames > 0 {
		fmt.Printf("  %-16s %d\n", "Frames", frames)
	}
	fmt.Printf("  %-16s %s\n", "State", s.State)
	if s.EndReason != vortex.EndNone {
		fmt.Printf("  %-16s %s\n", "Ended by", s.EndReason)
	}
	fmt.Printf("  %-16s %d\n", "Score", s.Score)
	fmt.Printf("  %-16s %d\n", "Level", s.Level)
	if s.Mode != config.ModeNormal {
		fmt.Printf("  %-16s %d\n", "Deaths", s.Deaths)
		fmt.Printf("  %-16s %.2f\n", "Deaths/min", s.DPM)
	}
	if s.Mode == config.ModeSurvival {
		fmt.Printf("  %-16s %d\n", "Threshold", opts.SurvivalThreshold())
	}
	fmt.Printf("  %-16s %d\n", "Enemies spawned", s.TotalEnemiesSpawned)
	fmt.Printf("  %-16s %s\n", "Game time", s.Elapsed.Round(time.Second))
}
