// zombiepet is a virtual pet that lives in the terminal.
//
// Usage:
//
//	zombiepet                - Run the pet
//	zombiepet modes          - List the pet's modes
//	zombiepet serve          - Start SSH server so others can visit the pet
//	zombiepet scores [mode]  - Show high scores
//
// Global flags:
//
//	--fps <rate>      - Set frame rate (default: config tick_rate)
//	--config <path>   - Use a custom config YAML
//	--mute            - Disable sound
//	--db <path>       - Keep high scores in this database (off by default)
//	--log <path>      - Log file (default: ~/.zombiepet/pet.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagConfig  string
	flagMute    bool
	flagDBPath  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zombiepet",
	Short: "Zombie Pet - a virtual pet in your terminal",
	Long: `Zombie Pet is a terminal virtual pet with nine modes: drag it around,
feed it, fly it through poles, play tic-tac-toe, give it a shower, put it to
bed, sing karaoke together, push it on a swing or pester it with a hammer.

Available commands:
  modes    - Show all modes and their hotkeys
  serve    - Start SSH server for remote visits
  scores   - View high scores

Examples:
  zombiepet
  zombiepet --mute --fps 30
  zombiepet --db ~/.zombiepet/scores.db
  zombiepet serve --ssh :2222
  zombiepet scores game`,
	Args: cobra.NoArgs,
	RunE: runPet,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frames per second (0 = config tick_rate)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (empty = no persistence)")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.zombiepet/pet.log", "Path to log file")

	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
