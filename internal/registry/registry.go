// Package registry maps game IDs to factories. Each mode registers itself
// from an init function, so the platform and the CLI can list and create
// modes without importing them by name.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/neon-vortex/internal/core"
)

// Game is a playable mode as seen by the platform. Implementations hold
// no terminal state; the platform maps input, paces ticks and draws.
type Game interface {
	// ID is the stable identifier used on the command line and as the
	// storage key for scores, e.g. "vortex_survival".
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts over with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the input gathered since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the caller has cleared.
	Render(dst *core.Screen)

	State() core.GameState
}

// Resizer is implemented by games that can follow a terminal resize
// without restarting.
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

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under id. The title is read from one instance.
// It panics on an empty or duplicate id.
func Register(id string, f Factory) {
	if id == "" || f == nil {
		panic("registry: Register needs an id and a factory")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Lookup returns the description of id.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.info, ok
}

// Create returns a new instance of id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
