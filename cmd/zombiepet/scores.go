package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Mygameindie/Zombiepet/internal/platform/tui"
	"github.com/Mygameindie/Zombiepet/internal/registry"
	"github.com/Mygameindie/Zombiepet/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Without a mode, opens the interactive scoreboard. With a mode, prints its
top 10 scores.

Scores are only recorded when the pet runs with --db.

Examples:
  zombiepet scores --db ./scores.db
  zombiepet scores game --db ./scores.db
  zombiepet scores game --db ./scores.db --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the mode's scores")
}

func runScores(_ *cobra.Command, args []string) error {
	if flagDBPath == "" {
		return errors.New("no scores database: pass --db <path>")
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, registry.Default, width, height)
	}

	modeID := args[0]
	d, err := registry.Default.Get(modeID)
	if err != nil {
		return fmt.Errorf("%w (run 'zombiepet modes' to see them)", err)
	}

	if flagClear {
		if err := store.ClearScores(modeID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", d.Label)
		return nil
	}

	scores, err := store.TopScores(modeID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", d.Label)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestScore(modeID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
