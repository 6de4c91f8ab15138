package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/concrete-annihilator/internal/platform/tui"
	"github.com/vovakirdan/concrete-annihilator/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play in the terminal",
	Long: `Start playing the given mode, or pick one from the menu.

Controls:
  Left/Right, A/D  - Aim
  Space            - Launch a volley
  Enter            - Start / retry
  P/Esc            - Pause and resume
  B                - Give up (while paused)
  Ctrl+S           - Dump the current state to ~/.annihilator/dumps
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at the lowest difficulty, waves get denser
  normal - Start at 20% difficulty
  hard   - Start at 60% difficulty
  fixed  - No progression, stays at the config's initial level

Examples:
  annihilator play
  annihilator play annihilator --difficulty hard
  annihilator play annihilator_levels --levels ./levels
  annihilator play annihilator --seed 42 --config ./my.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the mode picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a mode, Tab for scores.
Press B on the title or loss screen of a game to come back here.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runMenuLoop()
	},
}

func runPlay(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runMenuLoop()
	}
	if err := checkMode(args[0]); err != nil {
		return err
	}

	logger, closer := newLogger(true)
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	return playOne(args[0], store, logger, false)
}

// playOne runs a single mode in the terminal until the player leaves it.
func playOne(id string, store *storage.Store, logger *log.Logger, backToMenu bool) error {
	game, cleanup, err := newGame(id, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := []tui.Option{tui.WithLogger(logger.With("game", id))}
	if backToMenu {
		opts = append(opts, tui.WithBackToMenu())
	}

	logger.Info("playing", "game", id, "seed", flagSeed)
	return tui.Run(game, store, runtimeConfig(), opts...)
}

// runMenuLoop alternates between the picker, the scoreboard and games until
// the player quits.
func runMenuLoop() error {
	logger, closer := newLogger(true)
	defer closer.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		case result.GameID != "":
			if err := playOne(result.GameID, store, logger, true); err != nil {
				logger.Error("game ended with an error", "game", result.GameID, "err", err)
				return err
			}
		}
	}
}
