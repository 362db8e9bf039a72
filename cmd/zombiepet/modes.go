package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mygameindie/Zombiepet/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all modes",
	Long:  `Shows every mode the pet has, with the hotkey that switches to it.`,
	Run:   runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	modes := registry.Default.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, d := range modes {
		maxIDLen = max(maxIDLen, len(d.ID))
	}

	fmt.Printf("  %-3s  %-*s  %s\n", "Key", maxIDLen, "ID", "Label")
	fmt.Printf("  %-3s  %-*s  %s\n", "---", maxIDLen, "--", "-----")
	for _, d := range modes {
		fmt.Printf("  %-3s  %-*s  %s\n", d.Key, maxIDLen, d.ID, d.Label)
	}

	fmt.Println()
	fmt.Println("Press a mode's key while the pet runs to switch to it.")
}
