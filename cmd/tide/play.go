package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stem-the-tide/internal/config"
	"github.com/vovakirdan/stem-the-tide/internal/core"
	"github.com/vovakirdan/stem-the-tide/internal/game"
	"github.com/vovakirdan/stem-the-tide/internal/platform/tui"
)

var flagStartLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Play Stem the Tide. Without --level a picker asks where the run starts.

Controls:
  Tab / click       - Select a barrier (click again to deselect)
  Arrows / WASD     - Move the selected barrier
  Space             - Release the tide
  R                 - Reset the level
  V                 - Show or hide barrier shadows
  P                 - Pause
  Esc / Q / Ctrl+C  - Quit
  Ctrl+S            - Save a text screenshot

Difficulty options:
  easy   - Slow tide, speeds up gently across the campaign
  normal - Default pace and progression
  hard   - Fast tide from the first level
  fixed  - No progression, the config's pace throughout

Examples:
  tide play
  tide play --level 3
  tide play --difficulty hard
  tide play --levels ./my-levels --config ./tide.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "level", 0, "Start at this level number (0 = pick interactively)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := loadSetup()
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()

	start := flagStartLevel - 1
	if flagStartLevel == 0 {
		var stats tui.StatsSource
		if store != nil {
			stats = store
		}
		start, err = tui.RunLevelPicker(s.levels, stats, width, height)
		if err != nil {
			return fmt.Errorf("level picker: %w", err)
		}
		if start < 0 {
			return nil
		}
	} else if start < 0 || start >= len(s.levels) {
		return fmt.Errorf("level %d out of range 1..%d", flagStartLevel, len(s.levels))
	}

	opts := s.gameOptions(logger)
	opts.StartLevel = start
	g, err := game.New(opts)
	if err != nil {
		return err
	}

	mopts := tui.ModelOptions{
		Config: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
		},
		Logger:   logger,
		ShowHelp: s.cfg.Display.ShowHelp,
	}
	if store != nil {
		mopts.Store = store
	}
	if dir := config.UserDir(); dir != "" {
		mopts.ScreenshotDir = filepath.Join(dir, "screenshots")
	}

	logger.Info("starting", "levels", len(s.levels), "start", start+1, "fps", flagFPS)
	if err := tui.Run(g, mopts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
