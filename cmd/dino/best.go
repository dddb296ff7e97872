package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagBestDevice string
	flagReset      bool
	flagClearRuns  bool
)

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show or reset the stored best score",
	Long: `Print the best score held in a device's non-volatile cell.

With --reset the cell is written back to zero, as on a factory-fresh device.
The run history is kept unless --clear-runs is also given.

Examples:
  dino best
  dino best --device alice
  dino best --reset --clear-runs`,
	Args: cobra.NoArgs,
	Run:  runBest,
}

func init() {
	bestCmd.Flags().StringVar(&flagBestDevice, "device", "", "Device name (default from config)")
	bestCmd.Flags().BoolVar(&flagReset, "reset", false, "Write zero to the best-score cell")
	bestCmd.Flags().BoolVar(&flagClearRuns, "clear-runs", false, "With --reset, also delete the run history")
}

func runBest(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fail("%v", err)
	}
	device := cfg.Storage.Device
	if flagBestDevice != "" {
		device = flagBestDevice
	}

	store, err := openStore(cfg)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	cell := store.Cell(device)

	if flagReset {
		if err := cell.WriteBestScore(0); err != nil {
			store.Close()
			fail("resetting best score: %v", err)
		}
		if flagClearRuns {
			if err := store.ClearRuns(device); err != nil {
				store.Close()
				fail("clearing runs: %v", err)
			}
		}
		fmt.Printf("Best score of %s reset.\n", device)
		return
	}

	best, err := cell.ReadBestScore()
	if err != nil {
		store.Close()
		fail("reading best score: %v", err)
	}
	fmt.Printf("%s: %d\n", device, best)
}
