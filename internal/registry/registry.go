// Package registry holds the selectable modes. Modes register themselves in
// init() functions, so the switchboard and the CLI discover them without
// hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Mygameindie/Zombiepet/internal/mode"
)

// Registry is a set of mode descriptors keyed by ID.
type Registry struct {
	mu    sync.RWMutex
	modes map[string]mode.Descriptor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{modes: make(map[string]mode.Descriptor)}
}

// Default is the registry modes add themselves to.
var Default = New()

// Register adds a mode to the default registry.
// Typically called from a mode's init() function.
func Register(d mode.Descriptor) {
	Default.Register(d)
}

// Register adds a descriptor.
// Panics if the ID or hotkey is empty or already taken, or Factory is nil.
func (r *Registry) Register(d mode.Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == "" || d.Factory == nil {
		panic(fmt.Sprintf("registry: mode %q needs an id and a factory", d.ID))
	}
	if _, exists := r.modes[d.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", d.ID))
	}
	for _, other := range r.modes {
		if d.Key != "" && other.Key == d.Key {
			panic(fmt.Sprintf("registry: key %q of mode %q already used by %q", d.Key, d.ID, other.ID))
		}
	}
	if d.Label == "" {
		d.Label = d.ID
	}
	r.modes[d.ID] = d
}

// List returns all descriptors ordered by hotkey, then ID.
func (r *Registry) List() []mode.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]mode.Descriptor, 0, len(r.modes))
	for _, d := range r.modes {
		result = append(result, d)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Key != result[j].Key {
			return result[i].Key < result[j].Key
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the descriptor with the given ID.
// Returns an error if the ID is not registered.
func (r *Registry) Get(id string) (mode.Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.modes[id]
	if !ok {
		return mode.Descriptor{}, fmt.Errorf("registry: unknown mode %q", id)
	}
	return d, nil
}

// ByKey returns the descriptor triggered by key.
func (r *Registry) ByKey(key string) (mode.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.modes {
		if d.Key != "" && d.Key == key {
			return d, true
		}
	}
	return mode.Descriptor{}, false
}

// Exists checks if a mode with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.modes[id]
	return ok
}

// Len returns the number of registered modes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.modes)
}
