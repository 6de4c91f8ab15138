package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/concrete-annihilator/internal/registry"
	"github.com/vovakirdan/concrete-annihilator/internal/storage"
)

var (
	flagScoresLimit int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show best waves and recent runs",
	Long: `Display the best waves and the most recent runs of a mode
(default: annihilator).

Examples:
  annihilator scores
  annihilator scores annihilator_levels --limit 20
  annihilator scores annihilator --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries per table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run of the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	id := "annihilator"
	if len(args) == 1 {
		id = args[0]
	}
	if err := checkMode(id); err != nil {
		return err
	}
	game, err := registry.Create(id)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagClear {
		if err := store.ClearScores(id); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared every run of %s.\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(id, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Best waves - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'annihilator play %s' to set the first one!\n", id)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %s\n", "Rank", "Wave", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %s\n", "----", "----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-6d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	runs, err := store.RecentRuns(id, flagScoresLimit)
	if err != nil {
		return err
	}
	if len(runs) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Recent runs")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  %-6s  %-6s  %-4s  %-5s  %-20s  %s\n", "Wave", "Damage", "Size", "Balls", "Seed", "Date")
		for _, r := range runs {
			fmt.Fprintf(out, "  %-6d  %-6d  %-4d  %-5d  %-20d  %s\n",
				r.Wave, r.Damage, r.BallSize, r.MaxBalls, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	if stats, err := store.GetGameStats(id); err == nil && stats.GamesCount > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: wave %d over %d runs (average %.1f)\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}
