// vortex is Neon Vortex, a neon arena shooter for the terminal.
//
// Usage:
//
//	vortex list              - List game modes
//	vortex play [mode]       - Play a mode (normal, infinite, survival)
//	vortex menu              - Pick modes, options and scores interactively
//	vortex options           - Edit and save options and cheats
//	vortex scores <mode>     - Show high scores for a mode
//	vortex stats <mode>      - Show match statistics for a mode
//	vortex sim               - Run a headless autopilot match
//	vortex serve             - Serve SSH play and the spectator feed
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.vortex/vortex.db)
//	--config <path>      - Read options from this YAML file
//	--mode, --wall, --difficulty, --god - Override options for this run
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the game modes.
	_ "github.com/vovakirdan/neon-vortex/internal/games/vortex"
	"github.com/vovakirdan/neon-vortex/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagMode       string
	flagWall       string
	flagDifficulty string
	flagGod        bool
	flagLogFile    string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vortex",
	Short: "Neon Vortex - a neon arena shooter in your terminal",
	Long: `Neon Vortex puts you in a circular arena with waves of enemies.
Shoot them, grab power-ups and keep away from the rim.

Modes:
  normal    - one life
  infinite  - respawn forever, deaths are counted
  survival  - respawn, but the match ends when deaths per minute
              exceed the survival threshold

Examples:
  vortex play
  vortex play survival --difficulty hard
  vortex menu
  vortex sim --mode survival --frames 20000
  vortex serve --ssh :23234 --http :8080 --demo`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom options YAML")
	pf.StringVar(&flagMode, "mode", "", "Game mode override: normal, infinite, survival")
	pf.StringVar(&flagWall, "wall", "", "Wall mode override: die, bounce")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty override: easy, normal, hard")
	pf.BoolVar(&flagGod, "god", false, "Enable god mode")
	pf.StringVar(&flagLogFile, "log", "", "Write logs to this file while the TUI runs")
	pf.BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}
