// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultRegistry holds every utility shipped with coreutils. Each utility
// file adds itself from init().
var DefaultRegistry = NewRegistry()

// Registry is a name-indexed set of utilities shared by the CLI and the
// virtual shell. All methods may be called concurrently.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Command
}

// NewRegistry returns a Registry with no utilities.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Command)}
}

// Register adds utilities to the registry. A utility without a name, or one
// whose name is taken, is a programming error and panics.
func (r *Registry) Register(cmds ...Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cmd := range cmds {
		name := cmd.Name()
		switch {
		case name == "":
			panic("builtin: utility registered without a name")
		case r.byName[name] != nil:
			panic(fmt.Sprintf("builtin: utility %q registered twice", name))
		}
		r.byName[name] = cmd
	}
}

// Lookup returns the utility registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.byName[name]
	return cmd, ok
}

// Names lists the registered utility names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.byName))
}

// Commands returns the registered utilities ordered by name.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]Command, 0, len(r.byName))
	for _, name := range slices.Sorted(maps.Keys(r.byName)) {
		cmds = append(cmds, r.byName[name])
	}
	return cmds
}

// Run dispatches args to the utility called name. args[0] is the name the
// utility was invoked as, as in os.Args.
func (r *Registry) Run(ctx context.Context, name string, args []string) error {
	cmd, ok := r.Lookup(name)
	if !ok {
		return &UnknownCommandError{Name: name}
	}
	return cmd.Run(ctx, args)
}

// RegisterDefault adds cmd to DefaultRegistry.
func RegisterDefault(cmd Command) {
	DefaultRegistry.Register(cmd)
}
