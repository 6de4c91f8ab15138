package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/concrete-annihilator/internal/core"
	"github.com/vovakirdan/concrete-annihilator/internal/platform/window"
)

var windowCmd = &cobra.Command{
	Use:   "window [mode]",
	Short: "Play in a desktop window",
	Long: `Open a 600x700 window and play the given mode (default: annihilator).

Click the buttons, or use the keyboard:
  Left/Right, A/D  - Aim
  Space            - Launch a volley
  Enter            - Start / retry
  P/Esc            - Pause and resume
  B                - Give up (while paused)
  Q                - Quit

Examples:
  annihilator window
  annihilator window annihilator_levels --sound`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func runWindow(_ *cobra.Command, args []string) error {
	id := "annihilator"
	if len(args) == 1 {
		id = args[0]
	}

	logger, closer := newLogger(false)
	defer closer.Close()

	game, cleanup, err := newGame(id, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	sim, ok := game.(window.Sim)
	if !ok {
		return fmt.Errorf("mode %q cannot run in a window", id)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	runtime := core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed}
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}

	logger.Info("opening window", "game", id, "seed", runtime.Seed)
	return window.Run(sim, runtime,
		window.WithLogger(logger.WithPrefix("window")),
		window.WithStore(store),
	)
}
