package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-vortex/internal/games/vortex"
	"github.com/vovakirdan/neon-vortex/internal/registry"
	"github.com/vovakirdan/neon-vortex/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores for the given mode,
or for the default mode from the options.

Examples:
  vortex scores
  vortex scores survival`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

// gameIDFromArgs resolves the optional mode argument to a registry ID.
func gameIDFromArgs(args []string) (string, error) {
	if len(args) == 0 {
		opts, err := loadOptions()
		if err != nil {
			return "", err
		}
		return vortex.IDForMode(opts.Options.GameMode), nil
	}
	mode, ok := parseMode(args[0])
	if !ok {
		return "", fmt.Errorf("unknown mode %q, run 'vortex list' to see the modes", args[0])
	}
	return vortex.IDForMode(mode), nil
}

func runScores(_ *cobra.Command, args []string) error {
	gameID, err := gameIDFromArgs(args)
	if err != nil {
		return err
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play a match to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
