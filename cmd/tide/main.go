// tide is a terminal flood-defence puzzle: slide barriers so their shadows
// keep the rising tide off every shelter.
//
// Usage:
//
//	tide play               - Play the campaign (level picker first)
//	tide levels             - List levels
//	tide simulate <level>   - Run a level headless and print the result
//	tide results            - Show attempt history
//	tide serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.tide/tide.db)
//	--log-level <level>   - debug, info, warn or error
//	--config <file>       - Custom tide.yaml
//	--levels <dir>        - Load levels from a directory instead of the campaign
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagLevelsDir  string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tide",
	Short: "Stem the Tide - hold back the flood in your terminal",
	Long: `Stem the Tide is a terminal puzzle game. A tide pours down the board one
row at a time; barriers cast a shadow beneath them that the water cannot
enter. Slide the barriers so every shelter stays dry, then release the tide.

Available commands:
  play      - Play the campaign
  levels    - Show all levels
  simulate  - Run a level without a terminal
  results   - View attempt history
  serve     - Start SSH server for remote play

Examples:
  tide play
  tide play --level 2 --difficulty hard
  tide simulate 01-basic-diversion --move 0:14,25
  tide serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.StringVar(&flagDBPath, "db", "~/.tide/tide.db", "Path to results database")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagConfig, "config", "", "Path to custom tide.yaml")
	pf.StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in campaign)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
}
