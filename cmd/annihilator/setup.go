package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/concrete-annihilator/internal/audio"
	"github.com/vovakirdan/concrete-annihilator/internal/config"
	"github.com/vovakirdan/concrete-annihilator/internal/core"
	"github.com/vovakirdan/concrete-annihilator/internal/games/annihilator"
	"github.com/vovakirdan/concrete-annihilator/internal/registry"
	"github.com/vovakirdan/concrete-annihilator/internal/storage"
)

// ErrUnknownMode is returned for a mode ID nobody registered.
var ErrUnknownMode = errors.New("unknown mode")

// applySettings hands the global flags to the game package. A custom config
// that cannot be used stops the program before any UI starts.
func applySettings() error {
	if flagConfig != "" {
		if _, err := config.LoadAnnihilator(flagConfig); err != nil {
			return err
		}
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	annihilator.SetConfigPath(flagConfig)
	annihilator.SetDifficultyPreset(flagDifficulty)
	annihilator.SetLevelsDir(expandHome(flagLevels))
	return nil
}

// checkMode returns ErrUnknownMode, wrapped with the ID, when id is not
// registered.
func checkMode(id string) error {
	if !registry.Exists(id) {
		return fmt.Errorf("%w %q, run 'annihilator list' to see the modes", ErrUnknownMode, id)
	}
	return nil
}

// newGame creates a mode and, with --sound, wires a speaker to its events.
// The returned cleanup must be called once the game is done.
func newGame(id string, logger *log.Logger) (registry.Game, func(), error) {
	if err := checkMode(id); err != nil {
		return nil, nil, err
	}
	game, err := registry.Create(id)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	if g, ok := game.(*annihilator.Game); ok && flagSound {
		player := audio.NewPlayer(logger.WithPrefix("audio"), flagVolume)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			g.Listen(player)
			cleanup = player.Close
		}
	}
	return game, cleanup, nil
}

// runtimeConfig builds the runtime config for a terminal of the current size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. Playing works without one, so a
// failure is only logged.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// newLogger returns a logger to stderr, or to the log file while the
// terminal UI owns the screen. The returned closer releases the file.
func newLogger(tui bool) (*log.Logger, io.Closer) {
	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	if tui {
		w = io.Discard
		if path := expandHome(flagLogFile); path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
				if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
					w, closer = f, f
				}
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "annihilator",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
