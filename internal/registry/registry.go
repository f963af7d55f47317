// Package registry is the catalog of playable courses. Course packages
// register a factory per course in init(), so the CLI, the menu and the SSH
// server can list and start courses without importing them directly.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Game is what the platform drives every tick.
// Implementations hold pure simulation state and never touch the terminal.
type Game interface {
	// ID returns a unique identifier, also used as the score table key.
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset starts the game from scratch for the given screen and tick rate.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into a cleared screen buffer.
	Render(dst *core.Screen)

	// State returns score, clock and end-of-run flags.
	State() core.GameState
}

// Resizer is implemented by games that follow terminal resizes
// without a full Reset.
type Resizer interface {
	Resize(w, h int)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory under id.
// Panics if the id is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	return ListPrefix("")
}

// ListPrefix returns the registered games whose ID starts with prefix,
// sorted by ID.
func ListPrefix(prefix string) []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
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
