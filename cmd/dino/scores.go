package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lcd-dino/internal/platform/tui"
	"github.com/vovakirdan/lcd-dino/internal/storage"
)

var (
	flagScoresDevice string
	flagScoresLimit  int
	flagRecent       bool
	flagInteractive  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history of a device",
	Long: `Display the best runs of a device and its stored best score.

Examples:
  dino scores
  dino scores --device alice --recent
  dino scores -i              # Browse every device interactively`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresDevice, "device", "", "Device name (default from config)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the history in a full-screen table")
}

func runScores(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}
	device := cfg.Storage.Device
	if flagScoresDevice != "" {
		device = flagScoresDevice
	}

	store, err := openStore(cfg)
	if err != nil {
		fail("opening database: %v", err)
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		runErr := tui.RunScoreboard(store, device, width, height)
		store.Close()
		if runErr != nil {
			fail("%v", runErr)
		}
		return
	}

	var runs []storage.RunEntry
	if flagRecent {
		runs, err = store.RecentRuns(device, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(device, flagScoresLimit)
	}
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}
	defer store.Close()

	if flagRecent {
		fmt.Printf("Recent Runs - %s\n", device)
	} else {
		fmt.Printf("Top Runs - %s\n", device)
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dino play' to set the first record!")
	} else {
		fmt.Printf("  %-4s  %-6s  %-6s  %s\n", "Rank", "Score", "Best", "Date")
		fmt.Printf("  %-4s  %-6s  %-6s  %s\n", "----", "-----", "----", "----")
		for i, r := range runs {
			fmt.Printf("  %-4d  %-6d  %-6d  %s\n", i+1, r.Score, r.Best, r.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	fmt.Println()
	if best, err := store.Cell(device).ReadBestScore(); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	if stats, err := store.Stats(device); err == nil && stats.Runs > 0 {
		fmt.Printf("Runs: %d, average %.1f\n", stats.Runs, stats.AvgScore)
	}
}
