// Package registry maps mode IDs to game factories.
// Game packages register their modes in init(); the frontends and the CLI
// look them up by ID.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/concrete-annihilator/internal/core"
)

// Game is what a frontend drives: a fixed-step simulation that renders into
// a character screen. Implementations hold no UI dependencies.
type Game interface {
	// ID is the mode key, e.g. "annihilator" or "annihilator_levels".
	// Scores are stored under it.
	ID() string

	// Title is the name shown in the picker and the score tables.
	Title() string

	// Reset starts a fresh run sized for cfg. Frontends call it on start
	// and after a loss; the RNG seed comes from cfg.
	Reset(cfg core.RuntimeConfig)

	// Step runs one tick with the actions collected since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the caller has cleared.
	Render(dst *core.Screen)

	// State reports wave, loss and pause.
	State() core.GameState
}

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("unknown game")

// GameInfo names a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a new game in its menu state.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register binds id to f. A second registration of the same id panics.
// The title is read once from a throwaway instance.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := factories[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns the registered modes ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	infos := make([]GameInfo, 0, len(factories))
	for id := range factories {
		infos = append(infos, GameInfo{ID: id, Title: titles[id]})
	}
	slices.SortFunc(infos, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return infos
}

// Create builds a fresh game for id, or fails with ErrUnknownGame.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownGame, id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}
