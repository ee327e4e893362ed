package commands

import (
	"fmt"
	"slices"
	"sync"
)

// Registry holds registered commands in registration order.
type Registry struct {
	mu     sync.RWMutex
	cmds   []Command
	byName map[string]Command // names and aliases
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds a command to the registry.
// Returns an error if the name or any alias is already taken.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for _, name := range names {
		if _, exists := r.byName[name]; exists {
			return fmt.Errorf("command name already registered: %s", name)
		}
	}

	for _, name := range names {
		r.byName[name] = c
	}
	r.cmds = append(r.cmds, c)
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.byName[name]
	return cmd, ok
}

// All returns the registered commands sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := slices.Clone(r.cmds)
	slices.SortFunc(all, func(a, b Command) int {
		switch {
		case a.Name() < b.Name():
			return -1
		case a.Name() > b.Name():
			return 1
		}
		return 0
	})
	return all
}

// DefaultRegistry is the global command registry.
var DefaultRegistry = NewRegistry()

// Register adds a command to the default registry.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
