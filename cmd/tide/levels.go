package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stem-the-tide/internal/engine"
	"github.com/vovakirdan/stem-the-tide/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long: `Shows the levels a run would play, in order, with their shelters and
barriers. Use --levels to inspect a directory of level files.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	s, err := loadSetup()
	if err != nil {
		return err
	}

	if flagLevelsDir == "" {
		for _, p := range levels.Packs() {
			fmt.Printf("Pack %s: %s\n", p.ID, p.Title)
		}
	} else {
		fmt.Printf("Levels in %s\n", flagLevelsDir)
	}
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, lvl := range s.levels {
		maxIDLen = max(maxIDLen, len(lvl.ID))
	}

	fmt.Printf("  %-3s  %-*s  %-6s  %-8s  %s\n", "#", maxIDLen, "ID", "Zones", "Barriers", "Name")
	fmt.Printf("  %-3s  %-*s  %-6s  %-8s  %s\n", "-", maxIDLen, "--", "-----", "--------", "----")
	for i, lvl := range s.levels {
		fmt.Printf("  %-3d  %-*s  %-6d  %-8s  %s\n",
			i+1, maxIDLen, lvl.ID, len(lvl.Zones), barrierSummary(lvl.Barriers), lvl.Name)
	}

	fmt.Println()
	fmt.Println("Run 'tide play --level <#>' to start at a level.")
	return nil
}

// barrierSummary counts barriers by strength, e.g. "2s 1w".
func barrierSummary(bs []engine.Barrier) string {
	var strong, weak int
	for _, b := range bs {
		if b.Strength == engine.StrengthWeak {
			weak++
		} else {
			strong++
		}
	}
	return fmt.Sprintf("%ds %dw", strong, weak)
}
