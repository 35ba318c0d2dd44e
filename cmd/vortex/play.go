package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-vortex/internal/core"
	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
	"github.com/vovakirdan/neon-vortex/internal/platform/tui"
	"github.com/vovakirdan/neon-vortex/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a match",
	Long: `Start a match in the given mode, or the default mode from the options.

Controls:
  W/A/S/D      - Thrust
  Arrows/Mouse - Aim
  Space/Click  - Fire
  Enter        - Start
  P/Esc        - Pause
  R            - Restart
  B            - Back to the menu (from the title or game over screen)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  vortex play
  vortex play survival
  vortex play normal --wall bounce
  vortex play --config ./my-vortex.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
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

	sess := openLocalSession(opts)
	defer sess.Close()

	game, err := registry.Create(vortex.IDForMode(opts.Options.GameMode))
	if err != nil {
		return err
	}

	cfg := runtimeConfig()
	back, err := tui.Run(game, sess.deps, cfg)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	if back {
		return menuLoop(sess, cfg)
	}
	return nil
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick modes, options and scores interactively",
	Long: `Start Neon Vortex in interactive menu mode.
After a match you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  O            - Options and cheats
  Tab          - Scoreboard
  Q            - Quit

Examples:
  vortex menu
  vortex menu --fps 30
  vortex menu --db ./vortex.db`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}
		sess := openLocalSession(opts)
		defer sess.Close()
		return menuLoop(sess, runtimeConfig())
	},
}

// menuLoop shows the menu until the player quits.
func menuLoop(sess *localSession, cfg core.RuntimeConfig) error {
	logger := sess.deps.Logger
	for {
		res, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = res.Config
		logger.Debug("menu closed", "result", res)

		switch {
		case res.Quit:
			return nil

		case res.WantsScoreboard:
			goBack, err := tui.RunScoreboard(sess.deps.Store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case res.WantsOptions:
			opts, goBack, err := tui.RunOptions(sess.deps.Config, flagConfig, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			sess.setConfig(opts)
			if !goBack {
				return nil
			}

		default:
			game, err := registry.Create(res.GameID)
			if err != nil {
				logger.Error("cannot create game", "id", res.GameID, "err", err)
				continue
			}
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			back, err := tui.Run(game, sess.deps, cfg)
			if err != nil {
				return fmt.Errorf("running game: %w", err)
			}
			if !back {
				return nil
			}
		}
	}
}
