package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <course>",
	Short: "Show the best runs on a course",
	Long: `Display the best runs on the specified course, ranked by score and
then by time left, along with your own progress.

Examples:
  platformer scores 1-1
  platformer scores 1-2 --limit 25
  platformer scores 1-1 --player luigi
  platformer scores 1-3 --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every run recorded on the course")
}

func runScores(_ *cobra.Command, args []string) {
	id, err := resolveCourse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(id); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all runs on %s.\n", game.Title())
		return
	}

	runs, err := store.TopRuns(id, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'platformer play %s' to set the first record!\n", courseName(id))
		return
	}

	fmt.Printf("  %-4s  %-12s  %-6s  %-5s  %-4s  %-9s  %s\n", "Rank", "Player", "Score", "Coins", "Time", "Result", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-5s  %-4s  %-9s  %s\n", "----", "------", "-----", "-----", "----", "------", "----")

	for i, r := range runs {
		result := "game over"
		if r.Cleared {
			result = "clear"
		}
		fmt.Printf("  %-4d  %-12s  %06d  %-5d  %03d   %-9s  %s\n",
			i+1, r.Player, r.Score, r.Coins, r.TimeLeft, result, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	progress, err := store.Progress(flagPlayer, id)
	if err == nil && progress != nil {
		fmt.Println()
		fmt.Printf("%s: %d clears, best score %06d, best time left %03d\n",
			progress.Player, progress.Clears, progress.BestScore, progress.BestTimeLeft)
	}
}
