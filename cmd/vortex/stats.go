package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-vortex/internal/registry"
	"github.com/vovakirdan/neon-vortex/internal/storage"
)

var (
	flagRecent  int
	flagMatchID string
)

var statsCmd = &cobra.Command{
	Use:   "stats [mode]",
	Short: "Show match statistics for a mode",
	Long: `Show totals over every recorded match of a mode and the most recent matches.
With --match, show a single match by its ID.

Examples:
  vortex stats
  vortex stats survival --recent 20
  vortex stats --match 2f1c6a9e-5d0b-4a43-9f4e-8a8b3e2b7c11`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent matches to list")
	statsCmd.Flags().StringVar(&flagMatchID, "match", "", "Show one match by ID")
}

func runStats(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagMatchID != "" {
		return showMatch(store, flagMatchID)
	}

	gameID, err := gameIDFromArgs(args)
	if err != nil {
		return err
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}

	fmt.Printf("Statistics - %s\n", game.Title())
	fmt.Println()
	if stats.Matches == 0 && stats.GamesCount == 0 {
		fmt.Println("No matches recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s %d\n", "Matches", stats.Matches)
	fmt.Printf("  %-16s %d\n", "High score", stats.HighScore)
	fmt.Printf("  %-16s %.1f\n", "Average score", stats.AvgScore)
	fmt.Printf("  %-16s %d (avg %.1f)\n", "Deaths", stats.TotalDeaths, stats.AvgDeaths)
	fmt.Printf("  %-16s %.2f (max %.2f)\n", "Deaths/min", stats.AvgDPM, stats.MaxDPM)
	fmt.Printf("  %-16s %d\n", "Enemies spawned", stats.TotalSpawned)
	fmt.Printf("  %-16s %s\n", "Time played", stats.TotalDuration.Round(time.Second))
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  %-16s %s\n", "Last played", stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	reasons := make([]string, 0, len(stats.EndReasons))
	for r := range stats.EndReasons {
		reasons = append(reasons, r)
	}
	slices.Sort(reasons)
	for _, r := range reasons {
		fmt.Printf("  %-16s %d\n", "Ended by "+r, stats.EndReasons[r])
	}

	recent, err := store.RecentMatches(gameID, flagRecent)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent matches:")
	fmt.Printf("  %-8s  %-6s  %-6s  %-6s  %-8s  %-18s  %s\n", "Match", "Score", "Level", "Deaths", "DPM", "Ended", "Date")
	for _, r := range recent {
		fmt.Printf("  %-8s  %-6d  %-6d  %-6d  %-8.2f  %-18s  %s\n",
			shortID(r.MatchID), r.Score, r.Level, r.Deaths, r.DPM, r.EndReason,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// showMatch prints one recorded match.
func showMatch(store *storage.Store, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid match ID %q: %w", id, err)
	}
	r, err := store.MatchByID(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no match with ID %s", id)
	}

	fmt.Printf("Match %s\n", r.MatchID)
	fmt.Println()
	fmt.Printf("  %-16s %s\n", "Mode", r.GameID)
	fmt.Printf("  %-16s %d\n", "Score", r.Score)
	fmt.Printf("  %-16s %d\n", "Level", r.Level)
	fmt.Printf("  %-16s %d\n", "Deaths", r.Deaths)
	fmt.Printf("  %-16s %.2f\n", "Deaths/min", r.DPM)
	fmt.Printf("  %-16s %d\n", "Enemies spawned", r.EnemiesSpawned)
	fmt.Printf("  %-16s %s\n", "Ended by", r.EndReason)
	fmt.Printf("  %-16s %s\n", "Duration", r.Duration.Round(time.Second))
	fmt.Printf("  %-16s %s\n", "Played", r.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
