package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lcd-dino/internal/registry"
)

var renderersCmd = &cobra.Command{
	Use:   "renderers",
	Short: "List all available renderers",
	Long:  `Shows every registered renderer with the terminal area it needs.`,
	Args:  cobra.NoArgs,
	Run:   runRenderers,
}

func runRenderers(cmd *cobra.Command, args []string) {
	renderers := registry.List()

	if len(renderers) == 0 {
		fmt.Println("No renderers available.")
		return
	}

	fmt.Println("Available renderers:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, r := range renderers {
		if len(r.ID) > maxIDLen {
			maxIDLen = len(r.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Size", "Title")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "----", "-----")

	for _, r := range renderers {
		size := fmt.Sprintf("%dx%d", r.Width, r.Height)
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, r.ID, size, r.Title)
	}

	fmt.Println()
	fmt.Println("Run 'dino play --renderer <id>' to use one; 'auto' picks the largest that fits.")
}
