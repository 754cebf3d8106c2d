package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stem-the-tide/internal/platform/tui"
	"github.com/vovakirdan/stem-the-tide/internal/storage"
)

var (
	flagPlain bool
	flagClear string
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show attempt history",
	Long: `Display per-level statistics: attempts, clears, clear rate and the
fewest moves that kept every shelter dry. Interactive by default; --plain
prints a table instead.

Examples:
  tide results
  tide results --plain
  tide results --clear 01-basic-diversion`,
	Args: cobra.NoArgs,
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text table")
	resultsCmd.Flags().StringVar(&flagClear, "clear", "", "Delete the history of a level")
}

func runResults(cmd *cobra.Command, _ []string) error {
	s, err := loadSetup()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if flagClear != "" {
		if err := store.ClearResults(flagClear); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared history of %s\n", flagClear)
		return nil
	}

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printResults(cmd, store, s)
	}

	width, height := terminalSize()
	return tui.RunResults(store, s.levels, width, height)
}

func printResults(cmd *cobra.Command, store *storage.Store, s setup) error {
	stats, err := store.AllLevelStats()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(stats) == 0 {
		fmt.Fprintln(out, "No attempts recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'tide play' to start the campaign!")
		return nil
	}

	rows := tui.ByLevelRows(stats, s.levels)
	fmt.Fprintf(out, "  %-24s  %-5s  %-6s  %-5s  %-5s  %s\n", "Level", "Tries", "Clears", "Rate", "Best", "Last played")
	fmt.Fprintf(out, "  %-24s  %-5s  %-6s  %-5s  %-5s  %s\n", "-----", "-----", "------", "----", "----", "-----------")
	for _, r := range rows {
		fmt.Fprintf(out, "  %-24s  %-5s  %-6s  %-5s  %-5s  %s\n", r[0], r[1], r[2], r[3], r[4], r[5])
	}
	return nil
}
