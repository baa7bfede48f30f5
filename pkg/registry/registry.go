// Package registry resolves named page actions declared in onboarding content.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/waypoint/pkg/domain"
)

// ActionFunc is the implementation behind a named action.
// It receives the arguments declared next to the action name in the content.
type ActionFunc func(ctx context.Context, args map[string]any) error

// ErrorHandler receives failures of bound actions, which cannot return errors
// through domain.Action.
type ErrorHandler func(name string, err error)

// Registry manages the available actions.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]ActionFunc
	onError ErrorHandler
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]ActionFunc),
	}
}

// OnError sets the handler for failing bound actions.
func (r *Registry) OnError(h ErrorHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = h
}

// Register adds an action to the registry.
// If an action with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn ActionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = fn
}

// Names returns the registered action names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bind looks up an action by name and returns a domain.Action that runs it
// with ctx and args. Returns an error if the action is not found.
func (r *Registry) Bind(ctx context.Context, name string, args map[string]any) (domain.Action, error) {
	r.mu.RLock()
	fn, ok := r.actions[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("action not found: %s", name)
	}

	return domain.ActionFunc(func() {
		if err := fn(ctx, args); err != nil {
			r.mu.RLock()
			h := r.onError
			r.mu.RUnlock()
			if h != nil {
				h(name, err)
			}
		}
	}), nil
}
